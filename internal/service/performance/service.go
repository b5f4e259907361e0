package performance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/timeutil"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type PerformanceServiceImpl struct {
	staff.StaffRepository
	record.RecordRepository
	shift.ShiftRepository
	catalog.ServiceRepository
	performance.SnapshotRepository
	engine *Engine
	logger *zap.Logger
}

func NewPerformanceService(
	staffRepo staff.StaffRepository,
	recordRepo record.RecordRepository,
	shiftRepo shift.ShiftRepository,
	serviceRepo catalog.ServiceRepository,
	snapshotRepo performance.SnapshotRepository,
	engine *Engine,
	logger *zap.Logger,
) performance.PerformanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PerformanceServiceImpl{
		StaffRepository:    staffRepo,
		RecordRepository:   recordRepo,
		ShiftRepository:    shiftRepo,
		ServiceRepository:  serviceRepo,
		SnapshotRepository: snapshotRepo,
		engine:             engine,
		logger:             logger,
	}
}

// inputs is a read-only snapshot of everything the engine needs for one call.
type inputs struct {
	roster  []staff.Staff
	records []record.ServiceRecord
	shifts  []shift.Shift
}

// load fetches the roster, recent records and recent plus open shifts in parallel.
// The date-prefix lower bound is coarse; the engine applies the exact window.
func (s *PerformanceServiceImpl) load(ctx context.Context, asOf time.Time) (inputs, error) {
	policy := s.engine.Policy()
	lookback := max(policy.WindowDays, policy.TrendDays) + 1
	since := timeutil.DateKey(asOf.AddDate(0, 0, -lookback))

	var (
		in          inputs
		recentShift []shift.Shift
		openShift   []shift.Shift
	)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		roster, err := s.StaffRepository.List(gCtx, staff.StaffFilter{})
		if err != nil {
			return fmt.Errorf("failed to list staff: %w", err)
		}
		in.roster = roster
		return nil
	})

	g.Go(func() error {
		records, err := s.RecordRepository.List(gCtx, record.RecordFilter{StartFrom: &since})
		if err != nil {
			return fmt.Errorf("failed to list service records: %w", err)
		}
		in.records = records
		return nil
	})

	g.Go(func() error {
		shifts, err := s.ShiftRepository.List(gCtx, shift.ShiftFilter{CheckInFrom: &since})
		if err != nil {
			return fmt.Errorf("failed to list shifts: %w", err)
		}
		recentShift = shifts
		return nil
	})

	g.Go(func() error {
		active := shift.StatusActive
		shifts, err := s.ShiftRepository.List(gCtx, shift.ShiftFilter{Status: &active})
		if err != nil {
			return fmt.Errorf("failed to list active shifts: %w", err)
		}
		openShift = shifts
		return nil
	})

	if err := g.Wait(); err != nil {
		return inputs{}, err
	}

	seen := make(map[string]struct{}, len(recentShift)+len(openShift))
	for _, list := range [][]shift.Shift{recentShift, openShift} {
		for _, sh := range list {
			if _, dup := seen[sh.ID]; dup {
				continue
			}
			seen[sh.ID] = struct{}{}
			in.shifts = append(in.shifts, sh)
		}
	}
	return in, nil
}

func (s *PerformanceServiceImpl) score(ctx context.Context, in inputs, asOf time.Time) ([]performance.StaffMetrics, error) {
	cards, err := s.engine.ComputeAll(ctx, in.roster, in.records, in.shifts, asOf)
	if err != nil {
		return nil, err
	}
	for _, c := range cards {
		if c.SkippedRecords > 0 || c.SkippedShifts > 0 {
			s.logger.Warn("skipped malformed entries while scoring",
				zap.String("staff_id", c.Staff.ID),
				zap.Int("skipped_records", c.SkippedRecords),
				zap.Int("skipped_shifts", c.SkippedShifts),
			)
		}
	}
	return cards, nil
}

// Scorecards implements performance.PerformanceService.
func (s *PerformanceServiceImpl) Scorecards(ctx context.Context, asOf time.Time) ([]performance.StaffMetrics, error) {
	asOf = s.engine.Local(asOf)
	in, err := s.load(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return s.score(ctx, in, asOf)
}

// Leaderboard implements performance.PerformanceService.
func (s *PerformanceServiceImpl) Leaderboard(ctx context.Context, asOf time.Time) ([]performance.ScorecardResponse, error) {
	cards, err := s.Scorecards(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return s.toScorecardResponses(cards), nil
}

// Warnings implements performance.PerformanceService.
func (s *PerformanceServiceImpl) Warnings(ctx context.Context, asOf time.Time) ([]performance.WarningItem, error) {
	cards, err := s.Scorecards(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return s.warningItems(cards), nil
}

// Dashboard implements performance.PerformanceService.
func (s *PerformanceServiceImpl) Dashboard(ctx context.Context, asOf time.Time) (performance.DashboardResponse, error) {
	asOf = s.engine.Local(asOf)
	in, err := s.load(ctx, asOf)
	if err != nil {
		return performance.DashboardResponse{}, err
	}
	cards, err := s.score(ctx, in, asOf)
	if err != nil {
		return performance.DashboardResponse{}, err
	}

	today := s.engine.TodaySummary(in.records, in.shifts, asOf)
	return performance.DashboardResponse{
		AsOf:              asOf.Format(time.RFC3339),
		WindowStart:       s.engine.WindowStart(asOf).Format(time.RFC3339),
		TodayRevenue:      today.Revenue,
		TodayServiceHours: today.ServiceHours,
		ActiveStaffCount:  today.ActiveStaffCount,
		Leaderboard:       s.toScorecardResponses(cards),
		Warnings:          s.warningItems(cards),
	}, nil
}

// StaffDetail implements performance.PerformanceService. The scorecard is
// taken from the full roster run so its tier matches the leaderboard.
func (s *PerformanceServiceImpl) StaffDetail(ctx context.Context, staffID string, asOf time.Time) (performance.StaffDetailResponse, error) {
	if _, err := s.StaffRepository.GetByID(ctx, staffID); err != nil {
		return performance.StaffDetailResponse{}, err
	}
	asOf = s.engine.Local(asOf)

	var (
		in       inputs
		services []catalog.Service
		history  []record.ServiceRecord
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		in, err = s.load(gCtx, asOf)
		return err
	})
	g.Go(func() error {
		var err error
		services, err = s.ServiceRepository.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list services: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		history, err = s.RecordRepository.List(gCtx, record.RecordFilter{StaffID: &staffID})
		if err != nil {
			return fmt.Errorf("failed to list staff records: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return performance.StaffDetailResponse{}, err
	}

	cards, err := s.score(ctx, in, asOf)
	if err != nil {
		return performance.StaffDetailResponse{}, err
	}

	rank := -1
	for i, c := range cards {
		if c.Staff.ID == staffID {
			rank = i
			break
		}
	}
	if rank < 0 {
		return performance.StaffDetailResponse{}, staff.ErrStaffNotFound
	}

	return performance.StaffDetailResponse{
		Scorecard:    s.toScorecardResponse(rank+1, cards[rank]),
		DailyRevenue: s.engine.DailyRevenue(staffID, in.records, asOf),
		History:      s.engine.ServiceHistory(staffID, history, services),
	}, nil
}

// SalaryEstimates implements performance.PerformanceService.
func (s *PerformanceServiceImpl) SalaryEstimates(ctx context.Context, asOf time.Time) ([]performance.SalaryEstimateResponse, error) {
	cards, err := s.Scorecards(ctx, asOf)
	if err != nil {
		return nil, err
	}
	estimates := make([]performance.SalaryEstimateResponse, 0, len(cards))
	for _, c := range cards {
		estimates = append(estimates, s.engine.EstimateSalary(c))
	}
	return estimates, nil
}

// TakeSnapshot implements performance.PerformanceService.
func (s *PerformanceServiceImpl) TakeSnapshot(ctx context.Context, asOf time.Time) ([]performance.Snapshot, error) {
	asOf = s.engine.Local(asOf)
	cards, err := s.Scorecards(ctx, asOf)
	if err != nil {
		return nil, err
	}

	weekEnd := timeutil.StartOfDay(asOf)
	snapshots := make([]performance.Snapshot, 0, len(cards))
	for _, c := range cards {
		causes := s.engine.DetectWarnings(c)
		warnings := make([]string, 0, len(causes))
		for _, cause := range causes {
			warnings = append(warnings, string(cause))
		}
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate snapshot id: %w", err)
		}
		snapshots = append(snapshots, performance.Snapshot{
			ID:               id.String(),
			WeekEnd:          weekEnd,
			StaffID:          c.Staff.ID,
			StaffName:        c.Staff.Name,
			TotalRevenue:     c.TotalRevenue,
			WorkedMinutes:    c.WorkedMinutes,
			ScheduledMinutes: c.ScheduledMinutes,
			UtilizationRate:  c.UtilizationRate,
			ProfitMargin:     c.ProfitMargin,
			KPIScore:         c.KPIScore,
			Classification:   c.Classification,
			Warnings:         warnings,
			CreatedAt:        asOf,
		})
	}

	if err := s.SnapshotRepository.Upsert(ctx, snapshots); err != nil {
		return nil, fmt.Errorf("failed to store performance snapshot: %w", err)
	}
	return snapshots, nil
}

// Snapshots implements performance.PerformanceService. A nil weekEnd selects the latest week.
func (s *PerformanceServiceImpl) Snapshots(ctx context.Context, weekEnd *time.Time) (performance.SnapshotListResponse, error) {
	var week time.Time
	if weekEnd != nil {
		week = *weekEnd
	} else {
		latest, err := s.SnapshotRepository.LatestWeekEnd(ctx)
		if err != nil {
			return performance.SnapshotListResponse{}, err
		}
		week = latest
	}

	rows, err := s.SnapshotRepository.ListByWeekEnd(ctx, week)
	if err != nil {
		return performance.SnapshotListResponse{}, err
	}
	if len(rows) == 0 {
		return performance.SnapshotListResponse{}, performance.ErrSnapshotMissing
	}

	resp := performance.SnapshotListResponse{
		WeekEnd:   timeutil.DateKey(week),
		Snapshots: make([]performance.SnapshotResponse, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Snapshots = append(resp.Snapshots, performance.SnapshotResponse{
			StaffID:          r.StaffID,
			StaffName:        r.StaffName,
			TotalRevenue:     r.TotalRevenue,
			WorkedMinutes:    r.WorkedMinutes,
			ScheduledMinutes: r.ScheduledMinutes,
			UtilizationRate:  r.UtilizationRate,
			ProfitMargin:     r.ProfitMargin,
			KPIScore:         r.KPIScore,
			Classification:   r.Classification,
			Warnings:         r.Warnings,
		})
	}
	return resp, nil
}

func (s *PerformanceServiceImpl) warningItems(cards []performance.StaffMetrics) []performance.WarningItem {
	items := make([]performance.WarningItem, 0)
	for _, c := range cards {
		causes := s.engine.DetectWarnings(c)
		if len(causes) == 0 {
			continue
		}
		items = append(items, performance.WarningItem{
			StaffID:   c.Staff.ID,
			StaffName: c.Staff.Name,
			Causes:    causes,
		})
	}
	return items
}

func (s *PerformanceServiceImpl) toScorecardResponses(cards []performance.StaffMetrics) []performance.ScorecardResponse {
	out := make([]performance.ScorecardResponse, 0, len(cards))
	for i, c := range cards {
		out = append(out, s.toScorecardResponse(i+1, c))
	}
	return out
}

func (s *PerformanceServiceImpl) toScorecardResponse(rank int, m performance.StaffMetrics) performance.ScorecardResponse {
	return performance.ScorecardResponse{
		Rank:                 rank,
		Staff:                toStaffResponse(m),
		TotalRevenue:         m.TotalRevenue,
		WorkedMinutes:        m.WorkedMinutes,
		ScheduledMinutes:     m.ScheduledMinutes,
		LaborCost:            m.LaborCost,
		UtilizationRate:      m.UtilizationRate,
		ProfitMargin:         m.ProfitMargin,
		KPIScore:             m.KPIScore,
		Classification:       m.Classification,
		ClassificationAccent: m.ClassificationAccent,
		Warnings:             s.engine.DetectWarnings(m),
	}
}

func toStaffResponse(m performance.StaffMetrics) staff.StaffResponse {
	return staff.ToResponse(m.Staff)
}

// ParseAsOf reads an optional RFC3339 query value; empty means now.
func ParseAsOf(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return now, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.Join(performance.ErrInvalidAsOf, err)
	}
	return t, nil
}
