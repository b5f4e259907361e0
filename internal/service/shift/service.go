package shift

import (
	"context"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/timeutil"
	"go.uber.org/zap"
)

type shiftServiceImpl struct {
	shiftRepo shift.ShiftRepository
	staffRepo staff.StaffRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewShiftService(shiftRepo shift.ShiftRepository, staffRepo staff.StaffRepository, logger *zap.Logger) shift.ShiftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &shiftServiceImpl{
		shiftRepo: shiftRepo,
		staffRepo: staffRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// CheckIn implements shift.ShiftService.
func (s *shiftServiceImpl) CheckIn(ctx context.Context, req shift.CheckInRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if member.Status != staff.StatusActive {
		return shift.ShiftResponse{}, staff.ErrStaffInactive
	}

	created, err := s.shiftRepo.Create(ctx, shift.Shift{
		StaffID:     member.ID,
		Status:      shift.StatusActive,
		CheckInTime: timeutil.FormatLocal(s.now()),
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	s.logger.Info("staff checked in", zap.String("staff_id", member.ID), zap.String("shift_id", created.ID))
	return shift.ToResponse(created), nil
}

// CheckOut implements shift.ShiftService.
func (s *shiftServiceImpl) CheckOut(ctx context.Context, req shift.CheckOutRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	active, err := s.shiftRepo.GetActiveByStaffID(ctx, req.StaffID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	closed, err := s.shiftRepo.Close(ctx, active.ID, timeutil.FormatLocal(s.now()))
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	s.logger.Info("staff checked out", zap.String("staff_id", req.StaffID), zap.String("shift_id", closed.ID))
	return shift.ToResponse(closed), nil
}

// List implements shift.ShiftService.
func (s *shiftServiceImpl) List(ctx context.Context, filter shift.ShiftFilter) ([]shift.ShiftResponse, error) {
	shifts, err := s.shiftRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		resp = append(resp, shift.ToResponse(sh))
	}
	return resp, nil
}

// CloseStale implements shift.ShiftService. A stale shift is closed at
// check-in plus maxOpenHours, not at the time the job runs.
func (s *shiftServiceImpl) CloseStale(ctx context.Context, maxOpenHours int) (int, error) {
	if maxOpenHours <= 0 {
		return 0, nil
	}
	limit := time.Duration(maxOpenHours) * time.Hour
	now := s.now()

	stale, err := s.shiftRepo.ListActiveCheckedInBefore(ctx, timeutil.FormatLocal(now.Add(-limit)))
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, sh := range stale {
		checkIn, err := timeutil.ParseTimestamp(sh.CheckInTime, now.Location())
		if err != nil {
			s.logger.Warn("skipping stale shift with unreadable check-in",
				zap.String("shift_id", sh.ID),
				zap.String("check_in_time", sh.CheckInTime),
				zap.Error(err),
			)
			continue
		}

		if _, err := s.shiftRepo.Close(ctx, sh.ID, timeutil.FormatLocal(checkIn.Add(limit))); err != nil {
			s.logger.Error("failed to auto close shift", zap.String("shift_id", sh.ID), zap.Error(err))
			continue
		}
		closed++
		s.logger.Info("auto closed stale shift", zap.String("shift_id", sh.ID), zap.String("staff_id", sh.StaffID))
	}

	return closed, nil
}
