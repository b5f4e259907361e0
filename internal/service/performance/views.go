package performance

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/timeutil"
	"github.com/shopspring/decimal"
)

// TodaySummary holds the dashboard header figures for asOf's calendar day.
type TodaySummary struct {
	Revenue          float64
	ServiceHours     float64
	ActiveStaffCount int
}

func (e *Engine) TodaySummary(records []record.ServiceRecord, shifts []shift.Shift, asOf time.Time) TodaySummary {
	asOf = e.Local(asOf)
	var sum TodaySummary
	var minutes int
	for _, r := range records {
		today, err := timeutil.IsToday(r.ServiceStartTime, asOf)
		if err != nil || !today {
			continue
		}
		sum.Revenue += r.ServicePrice
		minutes += r.ActualDuration
	}
	sum.ServiceHours = float64(minutes) / 60

	active := make(map[string]struct{})
	for _, sh := range shifts {
		if sh.IsActive() {
			active[sh.ID] = struct{}{}
		}
	}
	sum.ActiveStaffCount = len(active)
	return sum
}

// DailyRevenue buckets one staff member's revenue by calendar day for the
// TrendDays days ending on asOf's day. Days without records are zero.
func (e *Engine) DailyRevenue(staffID string, records []record.ServiceRecord, asOf time.Time) []performance.DailyRevenuePoint {
	asOf = e.Local(asOf)
	days := e.policy.TrendDays
	points := make([]performance.DailyRevenuePoint, days)
	index := make(map[string]int, days)
	today := timeutil.StartOfDay(asOf)
	for i := 0; i < days; i++ {
		key := timeutil.DateKey(today.AddDate(0, 0, i-(days-1)))
		points[i] = performance.DailyRevenuePoint{Date: key}
		index[key] = i
	}

	for _, r := range records {
		if r.StaffID != staffID {
			continue
		}
		start, err := timeutil.ParseTimestamp(r.ServiceStartTime, e.loc)
		if err != nil {
			continue
		}
		if i, ok := index[timeutil.DateKey(start.In(e.loc))]; ok {
			points[i].Revenue += r.ServicePrice
		}
	}
	return points
}

// ServiceHistory lists a staff member's records newest first and flags
// services that ran longer than SlowServiceFactor times their standard duration.
func (e *Engine) ServiceHistory(staffID string, records []record.ServiceRecord, services []catalog.Service) []performance.HistoryItem {
	standard := make(map[string]int, len(services))
	for _, s := range services {
		standard[s.ID] = s.StandardDuration
	}

	type entry struct {
		rec    record.ServiceRecord
		start  time.Time
		parsed bool
	}
	entries := make([]entry, 0)
	for _, r := range records {
		if r.StaffID != staffID {
			continue
		}
		t, err := timeutil.ParseTimestamp(r.ServiceStartTime, e.loc)
		entries = append(entries, entry{rec: r, start: t, parsed: err == nil})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.parsed != b.parsed {
			return a.parsed
		}
		if a.parsed && !a.start.Equal(b.start) {
			return a.start.After(b.start)
		}
		return a.rec.ID < b.rec.ID
	})

	items := make([]performance.HistoryItem, 0, len(entries))
	for _, en := range entries {
		std, ok := standard[en.rec.ServiceID]
		if !ok || std <= 0 {
			std = e.policy.DefaultStandardDuration
		}
		item := performance.HistoryItem{
			Record:           record.ToResponse(en.rec),
			StandardDuration: std,
		}
		if float64(en.rec.ActualDuration) > float64(std)*e.policy.SlowServiceFactor {
			item.IsSlow = true
			item.SlowByMinutes = en.rec.ActualDuration - std
		}
		items = append(items, item)
	}
	return items
}

// EstimateSalary adds the salary-type commission on weekly revenue to the base salary.
func (e *Engine) EstimateSalary(m performance.StaffMetrics) performance.SalaryEstimateResponse {
	rate := decimal.NewFromFloat(e.policy.CommissionRate(m.Staff.SalaryType))
	revenue := decimal.NewFromFloat(m.TotalRevenue)
	base := decimal.NewFromFloat(m.Staff.BaseSalary)
	commission := revenue.Mul(rate).Round(2)
	total := base.Add(commission)

	return performance.SalaryEstimateResponse{
		Staff:          toStaffResponse(m),
		KPIScore:       m.KPIScore,
		Classification: m.Classification,
		TotalRevenue:   revenue,
		BaseSalary:     base,
		CommissionRate: rate,
		Commission:     commission,
		EstimatedTotal: total,
		ExceedsRevenue: total.GreaterThan(revenue),
	}
}
