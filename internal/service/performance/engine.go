package performance

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/timeutil"
	"golang.org/x/sync/errgroup"
)

// Engine turns records and shifts into scorecards. It holds no mutable state
// and never modifies its inputs, so one Engine may be shared across goroutines.
//
// Stored timestamps without an offset are read in the engine's location, and
// every asOf is converted to it, so the same instant always gives the same result.
type Engine struct {
	policy performance.Policy
	loc    *time.Location
}

func NewEngine(policy performance.Policy) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if policy.Concurrency <= 0 {
		policy.Concurrency = 1
	}
	return &Engine{policy: policy, loc: time.Local}, nil
}

// WithLocation returns a copy of the engine that reads timestamps in loc.
func (e *Engine) WithLocation(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{policy: e.policy, loc: loc}
}

func (e *Engine) Policy() performance.Policy {
	return e.policy
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

// Local converts t to the engine's location.
func (e *Engine) Local(t time.Time) time.Time {
	return t.In(e.loc)
}

// WindowStart returns the inclusive lower bound of the metrics window ending at asOf.
func (e *Engine) WindowStart(asOf time.Time) time.Time {
	return e.Local(asOf).AddDate(0, 0, -e.policy.WindowDays)
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// ComputeMetrics aggregates one staff member's records and shifts inside the
// window ending at asOf. KPI and classification are left to ScoreAndClassify.
func (e *Engine) ComputeMetrics(s staff.Staff, records []record.ServiceRecord, shifts []shift.Shift, asOf time.Time) performance.StaffMetrics {
	asOf = e.Local(asOf)
	loc := e.loc
	windowStart := e.WindowStart(asOf)
	m := performance.StaffMetrics{Staff: s}

	for _, r := range records {
		if r.StaffID != s.ID {
			continue
		}
		start, err := timeutil.ParseTimestamp(r.ServiceStartTime, loc)
		if err != nil {
			m.SkippedRecords++
			continue
		}
		if !inWindow(start, windowStart, asOf) {
			continue
		}
		m.TotalRevenue += r.ServicePrice
		m.WorkedMinutes += r.ActualDuration
	}

	for _, sh := range shifts {
		if sh.StaffID != s.ID {
			continue
		}
		minutes, counted, err := scheduledMinutes(sh, windowStart, asOf, loc)
		if err != nil {
			m.SkippedShifts++
			continue
		}
		if counted {
			m.ScheduledMinutes += minutes
		}
	}

	if m.ScheduledMinutes > 0 {
		m.UtilizationRate = float64(m.WorkedMinutes) / float64(m.ScheduledMinutes) * 100
	}

	m.LaborCost = s.BaseSalary * float64(m.ScheduledMinutes) / e.policy.StandardMonthlyMinutes
	if m.TotalRevenue != 0 {
		m.ProfitMargin = (m.TotalRevenue - m.LaborCost) / m.TotalRevenue * 100
	}

	return m
}

// scheduledMinutes returns the elapsed minutes of a shift that started inside
// the window. An active shift is measured up to asOf.
func scheduledMinutes(sh shift.Shift, windowStart, asOf time.Time, loc *time.Location) (int, bool, error) {
	checkIn, err := timeutil.ParseTimestamp(sh.CheckInTime, loc)
	if err != nil {
		return 0, false, err
	}
	if !inWindow(checkIn, windowStart, asOf) {
		return 0, false, nil
	}

	end := asOf
	if !sh.IsActive() {
		if sh.CheckOutTime == nil {
			return 0, false, &timeutil.ParseError{Field: "check_out_time", Err: fmt.Errorf("closed shift %s has no check-out", sh.ID)}
		}
		end, err = timeutil.ParseTimestamp(*sh.CheckOutTime, loc)
		if err != nil {
			return 0, false, err
		}
	}
	return timeutil.MinutesBetween(checkIn, end), true, nil
}

// ScoreAndClassify computes the KPI score and its tier. revenueBaseline is the
// peer mean revenue; it only matters when the revenue weight is non-zero.
func (e *Engine) ScoreAndClassify(m performance.StaffMetrics, revenueBaseline float64) (float64, performance.Tier) {
	w := e.policy.Weights
	score := w.Utilization*m.UtilizationRate + w.Margin*m.ProfitMargin
	if w.Revenue != 0 && revenueBaseline > 0 {
		score += w.Revenue * (m.TotalRevenue / revenueBaseline * 100)
	}
	return score, e.policy.Classify(score)
}

func (e *Engine) applyScore(m *performance.StaffMetrics, revenueBaseline float64) {
	score, tier := e.ScoreAndClassify(*m, revenueBaseline)
	m.KPIScore = score
	m.Classification = tier.Label
	m.ClassificationAccent = tier.Accent
}

// Scorecard runs the aggregate and score steps for a single staff member.
func (e *Engine) Scorecard(s staff.Staff, records []record.ServiceRecord, shifts []shift.Shift, asOf time.Time, revenueBaseline float64) performance.StaffMetrics {
	m := e.ComputeMetrics(s, records, shifts, asOf)
	e.applyScore(&m, revenueBaseline)
	return m
}

// DetectWarnings returns the triggered causes, utilization first. Comparisons
// against NaN are false, so undefined values never trigger.
func (e *Engine) DetectWarnings(m performance.StaffMetrics) []performance.WarningCause {
	causes := make([]performance.WarningCause, 0, 2)
	if m.UtilizationRate < e.policy.UnderUtilizedBelow {
		causes = append(causes, performance.CauseUnderUtilized)
	}
	if m.ProfitMargin < e.policy.LowMarginBelow {
		causes = append(causes, performance.CauseLowMargin)
	}
	return causes
}

// ComputeAll scores the whole roster concurrently and returns the scorecards
// in leaderboard order.
func (e *Engine) ComputeAll(ctx context.Context, roster []staff.Staff, records []record.ServiceRecord, shifts []shift.Shift, asOf time.Time) ([]performance.StaffMetrics, error) {
	recordsByStaff := make(map[string][]record.ServiceRecord, len(roster))
	for _, r := range records {
		recordsByStaff[r.StaffID] = append(recordsByStaff[r.StaffID], r)
	}
	shiftsByStaff := make(map[string][]shift.Shift, len(roster))
	for _, sh := range shifts {
		shiftsByStaff[sh.StaffID] = append(shiftsByStaff[sh.StaffID], sh)
	}

	results := make([]performance.StaffMetrics, len(roster))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.policy.Concurrency)
	for i, s := range roster {
		i, s := i, s
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = e.ComputeMetrics(s, recordsByStaff[s.ID], shiftsByStaff[s.ID], asOf)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	baseline := revenueBaseline(results)
	for i := range results {
		e.applyScore(&results[i], baseline)
	}
	SortLeaderboard(results)
	return results, nil
}

func revenueBaseline(cards []performance.StaffMetrics) float64 {
	if len(cards) == 0 {
		return 0
	}
	var total float64
	for _, c := range cards {
		total += c.TotalRevenue
	}
	return total / float64(len(cards))
}

// SortLeaderboard orders scorecards by KPI descending, then staff ID ascending.
// NaN scores sort after every real score.
func SortLeaderboard(cards []performance.StaffMetrics) {
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i].KPIScore, cards[j].KPIScore
		aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
		if aNaN != bNaN {
			return bNaN
		}
		if !aNaN && a != b {
			return a > b
		}
		return cards[i].Staff.ID < cards[j].Staff.ID
	})
}
