package performance

import (
	"testing"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/staff"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodaySummary(t *testing.T) {
	e := newTestEngine(t)
	records := []record.ServiceRecord{
		serviceRecord("r-1", "a", "2024-05-08T09:00:00", 150_000, 60),
		serviceRecord("r-2", "b", "2024-05-08T10:00:00", 50_000, 30),
		serviceRecord("r-3", "a", "2024-05-07T10:00:00", 999_000, 90),
		serviceRecord("r-4", "a", "broken", 1, 1),
	}
	shifts := []shift.Shift{
		{ID: "sh-1", StaffID: "a", Status: shift.StatusActive, CheckInTime: "2024-05-08T08:00:00"},
		{ID: "sh-2", StaffID: "b", Status: shift.StatusActive, CheckInTime: "2024-05-08T08:30:00"},
		closedShift("sh-3", "c", "2024-05-08T07:00:00", "2024-05-08T12:00:00"),
	}

	sum := e.TodaySummary(records, shifts, testAsOf)

	assert.Equal(t, 200_000.0, sum.Revenue)
	assert.InDelta(t, 1.5, sum.ServiceHours, 1e-9)
	assert.Equal(t, 2, sum.ActiveStaffCount)
}

func TestDailyRevenue_ZeroFilled(t *testing.T) {
	e := newTestEngine(t)
	records := []record.ServiceRecord{
		serviceRecord("r-1", "a", "2024-05-08T09:00:00", 100, 60),
		serviceRecord("r-2", "a", "2024-05-08T11:00:00", 50, 60),
		serviceRecord("r-3", "a", "2024-05-02T09:00:00", 10, 60),
		serviceRecord("r-4", "a", "2024-05-01T09:00:00", 1000, 60),
		serviceRecord("r-5", "b", "2024-05-08T09:00:00", 7, 60),
	}

	points := e.DailyRevenue("a", records, testAsOf)

	require.Len(t, points, 7)
	assert.Equal(t, "2024-05-02", points[0].Date)
	assert.Equal(t, 10.0, points[0].Revenue)
	assert.Equal(t, "2024-05-08", points[6].Date)
	assert.Equal(t, 150.0, points[6].Revenue)
	for _, p := range points[1:6] {
		assert.Zero(t, p.Revenue, p.Date)
	}
}

func TestServiceHistory_SlowFlagAndOrder(t *testing.T) {
	e := newTestEngine(t)
	services := []catalog.Service{
		{ID: "svc-massage", Name: "Massage", StandardDuration: 60},
		{ID: "svc-nails", Name: "Nails", StandardDuration: 0},
	}
	records := []record.ServiceRecord{
		{ID: "r-1", StaffID: "a", ServiceID: "svc-massage", ServiceStartTime: "2024-05-06T09:00:00", ActualDuration: 72},
		{ID: "r-2", StaffID: "a", ServiceID: "svc-massage", ServiceStartTime: "2024-05-07T09:00:00", ActualDuration: 73},
		{ID: "r-3", StaffID: "a", ServiceID: "svc-unknown", ServiceStartTime: "2024-05-08T09:00:00", ActualDuration: 90},
		{ID: "r-4", StaffID: "a", ServiceID: "svc-nails", ServiceStartTime: "bad", ActualDuration: 30},
		{ID: "r-5", StaffID: "b", ServiceID: "svc-massage", ServiceStartTime: "2024-05-08T09:00:00", ActualDuration: 300},
	}

	items := e.ServiceHistory("a", records, services)

	require.Len(t, items, 4)
	ids := []string{items[0].Record.ID, items[1].Record.ID, items[2].Record.ID, items[3].Record.ID}
	assert.Equal(t, []string{"r-3", "r-2", "r-1", "r-4"}, ids)

	assert.True(t, items[0].IsSlow)
	assert.Equal(t, 60, items[0].StandardDuration)
	assert.Equal(t, 30, items[0].SlowByMinutes)

	assert.True(t, items[1].IsSlow)
	assert.Equal(t, 13, items[1].SlowByMinutes)

	// 72 is exactly 1.2 x 60 and is not slow.
	assert.False(t, items[2].IsSlow)
	assert.Zero(t, items[2].SlowByMinutes)

	assert.Equal(t, 60, items[3].StandardDuration)
	assert.False(t, items[3].IsSlow)
}

func TestEstimateSalary(t *testing.T) {
	e := newTestEngine(t)

	t.Run("commission staff exceeding revenue", func(t *testing.T) {
		m := performance.StaffMetrics{
			Staff:        staff.Staff{ID: "a", BaseSalary: 2_000_000, SalaryType: staff.SalaryTypeCommission, Status: staff.StatusActive},
			TotalRevenue: 1_000_000,
			KPIScore:     72.5,
		}

		est := e.EstimateSalary(m)

		assert.True(t, decimal.RequireFromString("0.3").Equal(est.CommissionRate))
		assert.True(t, decimal.NewFromInt(300_000).Equal(est.Commission))
		assert.True(t, decimal.NewFromInt(2_300_000).Equal(est.EstimatedTotal))
		assert.True(t, est.ExceedsRevenue)
		assert.Equal(t, "a", est.Staff.ID)
		assert.Equal(t, 72.5, est.KPIScore)
	})

	t.Run("fixed staff within revenue", func(t *testing.T) {
		m := performance.StaffMetrics{
			Staff:        staff.Staff{ID: "b", BaseSalary: 1_000_000, SalaryType: staff.SalaryTypeFixed},
			TotalRevenue: 4_000_000,
		}

		est := e.EstimateSalary(m)

		assert.True(t, decimal.NewFromInt(200_000).Equal(est.Commission))
		assert.True(t, decimal.NewFromInt(1_200_000).Equal(est.EstimatedTotal))
		assert.False(t, est.ExceedsRevenue)
	})

	t.Run("unknown salary type uses default rate", func(t *testing.T) {
		m := performance.StaffMetrics{
			Staff:        staff.Staff{ID: "c", SalaryType: staff.SalaryType("hourly")},
			TotalRevenue: 100.01,
		}

		est := e.EstimateSalary(m)

		assert.Equal(t, "5", est.Commission.String())
	})
}
