package cron

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job represents a scheduled job
type Job struct {
	Name     string
	Schedule string
	Timeout  time.Duration
	Fn       func(ctx context.Context) error
}

// Scheduler runs registered jobs on standard five-field cron expressions.
type Scheduler struct {
	cron   *cron.Cron
	jobs   []Job
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewScheduler creates a new cron scheduler running in loc.
func NewScheduler(loc *time.Location, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		jobs:   make([]Job, 0),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers fn under schedule. An empty schedule disables the job.
func (s *Scheduler) AddJob(name, schedule string, timeout time.Duration, fn func(ctx context.Context) error) error {
	if schedule == "" {
		s.logger.Info("cron job disabled", zap.String("name", name))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job := Job{Name: name, Schedule: schedule, Timeout: timeout, Fn: fn}
	if _, err := s.cron.AddFunc(schedule, func() { s.executeJob(s.ctx, job) }); err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", schedule, name, err)
	}
	s.jobs = append(s.jobs, job)
	s.logger.Info("cron job registered", zap.String("name", name), zap.String("schedule", schedule))
	return nil
}

// Jobs returns the registered jobs.
func (s *Scheduler) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]Job, len(s.jobs))
	copy(jobs, s.jobs)
	return jobs
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("cron scheduler started", zap.Int("job_count", len(s.Jobs())))
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping cron scheduler")
	s.cancel()
	<-s.cron.Stop().Done()
	s.logger.Info("cron scheduler stopped")
}

func (s *Scheduler) executeJob(parent context.Context, job Job) {
	ctx := parent
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, job.Timeout)
		defer cancel()
	}

	start := time.Now()
	s.logger.Debug("cron job starting", zap.String("name", job.Name))

	if err := job.Fn(ctx); err != nil {
		s.logger.Error("cron job failed", zap.String("name", job.Name), zap.Error(err), zap.Duration("duration", time.Since(start)))
		return
	}
	s.logger.Debug("cron job completed", zap.String("name", job.Name), zap.Duration("duration", time.Since(start)))
}

// RunOnce runs all jobs once (useful for testing)
func (s *Scheduler) RunOnce(ctx context.Context) {
	for _, job := range s.Jobs() {
		s.executeJob(ctx, job)
	}
}
