package performance

import (
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/staff"
	"github.com/shopspring/decimal"
)

type ScorecardResponse struct {
	Rank                 int                 `json:"rank"`
	Staff                staff.StaffResponse `json:"staff"`
	TotalRevenue         float64             `json:"total_revenue"`
	WorkedMinutes        int                 `json:"worked_minutes"`
	ScheduledMinutes     int                 `json:"scheduled_minutes"`
	LaborCost            float64             `json:"labor_cost"`
	UtilizationRate      float64             `json:"utilization_rate"`
	ProfitMargin         float64             `json:"profit_margin"`
	KPIScore             float64             `json:"kpi_score"`
	Classification       string              `json:"classification"`
	ClassificationAccent string              `json:"classification_accent"`
	Warnings             []WarningCause      `json:"warnings"`
}

type WarningItem struct {
	StaffID   string         `json:"staff_id"`
	StaffName string         `json:"staff_name"`
	Causes    []WarningCause `json:"causes"`
}

type DashboardResponse struct {
	AsOf              string              `json:"as_of"`
	WindowStart       string              `json:"window_start"`
	TodayRevenue      float64             `json:"today_revenue"`
	TodayServiceHours float64             `json:"today_service_hours"`
	ActiveStaffCount  int                 `json:"active_staff_count"`
	Leaderboard       []ScorecardResponse `json:"leaderboard"`
	Warnings          []WarningItem       `json:"warnings"`
}

type DailyRevenuePoint struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Revenue float64 `json:"revenue"`
}

type HistoryItem struct {
	Record           record.RecordResponse `json:"record"`
	StandardDuration int                   `json:"standard_duration"`
	IsSlow           bool                  `json:"is_slow"`
	SlowByMinutes    int                   `json:"slow_by_minutes,omitempty"`
}

type StaffDetailResponse struct {
	Scorecard    ScorecardResponse   `json:"scorecard"`
	DailyRevenue []DailyRevenuePoint `json:"daily_revenue"`
	History      []HistoryItem       `json:"history"`
}

type SalaryEstimateResponse struct {
	Staff          staff.StaffResponse `json:"staff"`
	KPIScore       float64             `json:"kpi_score"`
	Classification string              `json:"classification"`
	TotalRevenue   decimal.Decimal     `json:"total_revenue"`
	BaseSalary     decimal.Decimal     `json:"salary_base"`
	CommissionRate decimal.Decimal     `json:"commission_rate"`
	Commission     decimal.Decimal     `json:"commission"`
	EstimatedTotal decimal.Decimal     `json:"estimated_total"`
	ExceedsRevenue bool                `json:"exceeds_revenue"`
}

type SnapshotResponse struct {
	StaffID          string   `json:"staff_id"`
	StaffName        string   `json:"staff_name"`
	TotalRevenue     float64  `json:"total_revenue"`
	WorkedMinutes    int      `json:"worked_minutes"`
	ScheduledMinutes int      `json:"scheduled_minutes"`
	UtilizationRate  float64  `json:"utilization_rate"`
	ProfitMargin     float64  `json:"profit_margin"`
	KPIScore         float64  `json:"kpi_score"`
	Classification   string   `json:"classification"`
	Warnings         []string `json:"warnings"`
}

type SnapshotListResponse struct {
	WeekEnd   string             `json:"week_end"`
	Snapshots []SnapshotResponse `json:"snapshots"`
}
