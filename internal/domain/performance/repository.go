package performance

import (
	"context"
	"time"
)

type SnapshotRepository interface {
	// Upsert stores snapshots and drops every earlier row for the week ends
	// they cover, so staff missing from a re-run leave no stale rows.
	Upsert(ctx context.Context, snapshots []Snapshot) error
	ListByWeekEnd(ctx context.Context, weekEnd time.Time) ([]Snapshot, error)
	LatestWeekEnd(ctx context.Context) (time.Time, error)
}
