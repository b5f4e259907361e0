package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/shift"
	"go.uber.org/zap"
)

const (
	JobCloseStaleShifts = "auto_close_stale_shifts"
	JobWeeklySnapshot   = "weekly_performance_snapshot"
)

// JobsConfig holds the schedules for the staff performance jobs.
type JobsConfig struct {
	StaleShiftSchedule  string
	StaleShiftHours int
	SnapshotSchedule    string
}

// PerformanceJobs contains the shift and snapshot cron jobs
type PerformanceJobs struct {
	shiftService       shift.ShiftService
	performanceService performance.PerformanceService
	cfg                JobsConfig
	logger             *zap.Logger
	now                func() time.Time
}

func NewPerformanceJobs(shiftService shift.ShiftService, performanceService performance.PerformanceService, cfg JobsConfig, logger *zap.Logger) *PerformanceJobs {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PerformanceJobs{
		shiftService:       shiftService,
		performanceService: performanceService,
		cfg:                cfg,
		logger:             logger,
		now:                time.Now,
	}
}

// RegisterJobs registers the jobs on scheduler.
func (j *PerformanceJobs) RegisterJobs(scheduler *Scheduler) error {
	if err := scheduler.AddJob(JobCloseStaleShifts, j.cfg.StaleShiftSchedule, time.Minute, j.CloseStaleShifts); err != nil {
		return err
	}
	return scheduler.AddJob(JobWeeklySnapshot, j.cfg.SnapshotSchedule, 2*time.Minute, j.WeeklySnapshot)
}

// CloseStaleShifts closes shifts left open longer than StaleShiftHours.
func (j *PerformanceJobs) CloseStaleShifts(ctx context.Context) error {
	closed, err := j.shiftService.CloseStale(ctx, j.cfg.StaleShiftHours)
	if err != nil {
		return fmt.Errorf("failed to close stale shifts: %w", err)
	}
	if closed > 0 {
		j.logger.Info("stale shifts closed", zap.Int("count", closed), zap.Int("max_open_hours", j.cfg.StaleShiftHours))
	}
	return nil
}

// WeeklySnapshot persists the scorecards for the week ending now.
func (j *PerformanceJobs) WeeklySnapshot(ctx context.Context) error {
	snapshots, err := j.performanceService.TakeSnapshot(ctx, j.now())
	if err != nil {
		return fmt.Errorf("failed to take performance snapshot: %w", err)
	}

	flagged := 0
	for _, s := range snapshots {
		if len(s.Warnings) == 0 {
			continue
		}
		flagged++
		j.logger.Warn("staff below threshold",
			zap.String("staff_id", s.StaffID),
			zap.String("staff_name", s.StaffName),
			zap.Strings("warnings", s.Warnings),
		)
	}

	j.logger.Info("performance snapshot stored", zap.Int("staff", len(snapshots)), zap.Int("flagged", flagged))
	return nil
}
