package performance

import (
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/staff"
)

// StaffMetrics is the scorecard for one staff member over the metrics window.
// It is recomputed on every call and has no identity of its own.
//
// UtilizationRate and ProfitMargin are unclamped percentages. Values above 100
// or below 0 mean the records and shifts disagree.
type StaffMetrics struct {
	Staff staff.Staff

	TotalRevenue     float64
	WorkedMinutes    int
	ScheduledMinutes int
	LaborCost        float64
	UtilizationRate  float64
	ProfitMargin     float64

	KPIScore             float64
	Classification       string
	ClassificationAccent string

	// Items dropped because a timestamp could not be parsed.
	SkippedRecords int
	SkippedShifts  int
}

// WarningCause names a policy threshold crossed by a scorecard.
type WarningCause string

const (
	CauseUnderUtilized WarningCause = "under-utilized"
	CauseLowMargin     WarningCause = "low-margin"
)

// Snapshot is a persisted copy of a weekly scorecard.
type Snapshot struct {
	ID               string
	WeekEnd          time.Time
	StaffID          string
	StaffName        string
	TotalRevenue     float64
	WorkedMinutes    int
	ScheduledMinutes int
	UtilizationRate  float64
	ProfitMargin     float64
	KPIScore         float64
	Classification   string
	Warnings         []string
	CreatedAt        time.Time
}
