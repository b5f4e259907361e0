package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/database"
)

type snapshotRepositoryImpl struct {
	db *database.DB
}

func NewSnapshotRepository(db *database.DB) performance.SnapshotRepository {
	return &snapshotRepositoryImpl{db: db}
}

// Upsert implements performance.SnapshotRepository. The covered weeks are
// cleared and rewritten in one transaction.
func (r *snapshotRepositoryImpl) Upsert(ctx context.Context, snapshots []performance.Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	query := `
		INSERT INTO performance_snapshots (id, week_end, staff_id, staff_name, total_revenue,
			worked_minutes, scheduled_minutes, utilization_rate, profit_margin, kpi_score,
			classification, warnings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (week_end, staff_id) DO UPDATE SET
			staff_name = EXCLUDED.staff_name,
			total_revenue = EXCLUDED.total_revenue,
			worked_minutes = EXCLUDED.worked_minutes,
			scheduled_minutes = EXCLUDED.scheduled_minutes,
			utilization_rate = EXCLUDED.utilization_rate,
			profit_margin = EXCLUDED.profit_margin,
			kpi_score = EXCLUDED.kpi_score,
			classification = EXCLUDED.classification,
			warnings = EXCLUDED.warnings,
			created_at = EXCLUDED.created_at
	`

	weeks := make([]string, 0, 1)
	seen := make(map[string]struct{}, 1)
	for _, s := range snapshots {
		day := s.WeekEnd.Format("2006-01-02")
		if _, ok := seen[day]; !ok {
			seen[day] = struct{}{}
			weeks = append(weeks, day)
		}
	}

	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)
		if _, err := q.Exec(txCtx, `DELETE FROM performance_snapshots WHERE week_end = ANY($1::date[])`, weeks); err != nil {
			return fmt.Errorf("failed to clear snapshot week: %w", err)
		}
		for _, s := range snapshots {
			_, err := q.Exec(txCtx, query,
				s.ID,
				s.WeekEnd,
				s.StaffID,
				s.StaffName,
				s.TotalRevenue,
				s.WorkedMinutes,
				s.ScheduledMinutes,
				s.UtilizationRate,
				s.ProfitMargin,
				s.KPIScore,
				s.Classification,
				s.Warnings,
				s.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert snapshot for staff %s: %w", s.StaffID, err)
			}
		}
		return nil
	})
}

// ListByWeekEnd implements performance.SnapshotRepository. Rows come back in
// leaderboard order.
func (r *snapshotRepositoryImpl) ListByWeekEnd(ctx context.Context, weekEnd time.Time) ([]performance.Snapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, week_end, staff_id, staff_name, total_revenue, worked_minutes, scheduled_minutes,
			utilization_rate, profit_margin, kpi_score, classification, warnings, created_at
		FROM performance_snapshots
		WHERE week_end = $1
		ORDER BY kpi_score DESC, staff_id ASC
	`

	rows, err := q.Query(ctx, query, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]performance.Snapshot, 0)
	for rows.Next() {
		var s performance.Snapshot
		err := rows.Scan(
			&s.ID,
			&s.WeekEnd,
			&s.StaffID,
			&s.StaffName,
			&s.TotalRevenue,
			&s.WorkedMinutes,
			&s.ScheduledMinutes,
			&s.UtilizationRate,
			&s.ProfitMargin,
			&s.KPIScore,
			&s.Classification,
			&s.Warnings,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return snapshots, nil
}

// LatestWeekEnd implements performance.SnapshotRepository.
func (r *snapshotRepositoryImpl) LatestWeekEnd(ctx context.Context) (time.Time, error) {
	q := GetQuerier(ctx, r.db)

	var latest *time.Time
	if err := q.QueryRow(ctx, `SELECT MAX(week_end) FROM performance_snapshots`).Scan(&latest); err != nil {
		return time.Time{}, fmt.Errorf("failed to get latest snapshot week: %w", err)
	}
	if latest == nil {
		return time.Time{}, performance.ErrSnapshotMissing
	}

	return *latest, nil
}
