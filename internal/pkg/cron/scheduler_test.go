package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeShiftService struct {
	shift.ShiftService
	gotHours int
	closed   int
	err      error
}

func (f *fakeShiftService) CloseStale(ctx context.Context, maxOpenHours int) (int, error) {
	f.gotHours = maxOpenHours
	return f.closed, f.err
}

type fakePerformanceService struct {
	performance.PerformanceService
	gotAsOf   time.Time
	snapshots []performance.Snapshot
}

func (f *fakePerformanceService) TakeSnapshot(ctx context.Context, asOf time.Time) ([]performance.Snapshot, error) {
	f.gotAsOf = asOf
	return f.snapshots, nil
}

// ===== SCHEDULER TESTS =====

func TestScheduler_AddJob(t *testing.T) {
	s := NewScheduler(time.UTC, zap.NewNop())

	require.NoError(t, s.AddJob("hourly", "@hourly", 0, func(ctx context.Context) error { return nil }))
	require.NoError(t, s.AddJob("disabled", "", 0, func(ctx context.Context) error { return nil }))
	assert.Error(t, s.AddJob("broken", "not a schedule", 0, func(ctx context.Context) error { return nil }))

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "hourly", jobs[0].Name)
}

func TestScheduler_RunOnce(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewScheduler(time.UTC, zap.New(core))

	calls := 0
	require.NoError(t, s.AddJob("ok", "@daily", time.Second, func(ctx context.Context) error {
		calls++
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	}))
	require.NoError(t, s.AddJob("fails", "@daily", 0, func(ctx context.Context) error {
		calls++
		return errors.New("boom")
	}))

	s.RunOnce(context.Background())

	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, logs.FilterMessage("cron job failed").Len())
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(nil, nil)
	require.NoError(t, s.AddJob("noop", "@every 1h", 0, func(ctx context.Context) error { return nil }))

	s.Start()
	s.Stop()
}

// ===== PERFORMANCE JOBS TESTS =====

func TestPerformanceJobs_RegisterJobs(t *testing.T) {
	s := NewScheduler(time.UTC, zap.NewNop())
	jobs := NewPerformanceJobs(&fakeShiftService{}, &fakePerformanceService{}, JobsConfig{
		StaleShiftSchedule:  "@hourly",
		StaleShiftHours: 16,
		SnapshotSchedule:    "5 0 * * 1",
	}, zap.NewNop())

	require.NoError(t, jobs.RegisterJobs(s))

	registered := s.Jobs()
	require.Len(t, registered, 2)
	assert.Equal(t, JobCloseStaleShifts, registered[0].Name)
	assert.Equal(t, JobWeeklySnapshot, registered[1].Name)
}

func TestPerformanceJobs_CloseStaleShifts(t *testing.T) {
	shifts := &fakeShiftService{closed: 2}
	jobs := NewPerformanceJobs(shifts, &fakePerformanceService{}, JobsConfig{StaleShiftHours: 16}, zap.NewNop())

	require.NoError(t, jobs.CloseStaleShifts(context.Background()))
	assert.Equal(t, 16, shifts.gotHours)

	shifts.err = errors.New("db down")
	assert.Error(t, jobs.CloseStaleShifts(context.Background()))
}

func TestPerformanceJobs_WeeklySnapshot(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	now := time.Date(2024, 5, 13, 0, 5, 0, 0, time.UTC)
	perf := &fakePerformanceService{snapshots: []performance.Snapshot{
		{StaffID: "a", StaffName: "Ayu"},
		{StaffID: "b", StaffName: "Budi", Warnings: []string{"under-utilized"}},
	}}
	jobs := NewPerformanceJobs(&fakeShiftService{}, perf, JobsConfig{}, zap.New(core))
	jobs.now = func() time.Time { return now }

	require.NoError(t, jobs.WeeklySnapshot(context.Background()))

	assert.Equal(t, now, perf.gotAsOf)
	warned := logs.FilterMessage("staff below threshold").All()
	require.Len(t, warned, 1)
	assert.Equal(t, "b", warned[0].ContextMap()["staff_id"])
}
