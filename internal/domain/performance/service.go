package performance

import (
	"context"
	"time"
)

// PerformanceService serves the views built on the metrics engine. Every
// method takes asOf explicitly so results are reproducible.
type PerformanceService interface {
	// Dashboard returns today's summary, the leaderboard and the warnings banner.
	Dashboard(ctx context.Context, asOf time.Time) (DashboardResponse, error)
	Leaderboard(ctx context.Context, asOf time.Time) ([]ScorecardResponse, error)
	Warnings(ctx context.Context, asOf time.Time) ([]WarningItem, error)
	StaffDetail(ctx context.Context, staffID string, asOf time.Time) (StaffDetailResponse, error)
	SalaryEstimates(ctx context.Context, asOf time.Time) ([]SalaryEstimateResponse, error)

	// Scorecards returns the sorted roster scorecards; used by reports and snapshots.
	Scorecards(ctx context.Context, asOf time.Time) ([]StaffMetrics, error)
	TakeSnapshot(ctx context.Context, asOf time.Time) ([]Snapshot, error)
	Snapshots(ctx context.Context, weekEnd *time.Time) (SnapshotListResponse, error)
}
