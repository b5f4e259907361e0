package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/timeutil"
	"go.uber.org/zap"
)

type recordServiceImpl struct {
	recordRepo  record.RecordRepository
	staffRepo   staff.StaffRepository
	serviceRepo catalog.ServiceRepository
	shiftRepo   shift.ShiftRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewRecordService(
	recordRepo record.RecordRepository,
	staffRepo staff.StaffRepository,
	serviceRepo catalog.ServiceRepository,
	shiftRepo shift.ShiftRepository,
	logger *zap.Logger,
) record.RecordService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &recordServiceImpl{
		recordRepo:  recordRepo,
		staffRepo:   staffRepo,
		serviceRepo: serviceRepo,
		shiftRepo:   shiftRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// Create implements record.RecordService.
func (s *recordServiceImpl) Create(ctx context.Context, req record.CreateRecordRequest) (record.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return record.RecordResponse{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		return record.RecordResponse{}, err
	}
	if member.Status != staff.StatusActive {
		return record.RecordResponse{}, staff.ErrStaffInactive
	}

	svc, err := s.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		return record.RecordResponse{}, err
	}

	price := svc.DefaultPrice
	if req.Price != nil {
		price = *req.Price
	}

	start, end := req.StartDateTime(), req.EndDateTime()
	minutes, err := timeutil.ElapsedMinutes(start, end)
	if err != nil {
		return record.RecordResponse{}, errors.Join(record.ErrInvalidDateTime, err)
	}

	var shiftID string
	active, err := s.shiftRepo.GetActiveByStaffID(ctx, member.ID)
	switch {
	case err == nil:
		shiftID = active.ID
	case !errors.Is(err, shift.ErrNotCheckedIn):
		return record.RecordResponse{}, fmt.Errorf("failed to look up active shift: %w", err)
	}

	created, err := s.recordRepo.Create(ctx, record.ServiceRecord{
		ShiftID:          shiftID,
		StaffID:          member.ID,
		ServiceID:        svc.ID,
		ServiceName:      svc.Name,
		ServicePrice:     price,
		ServiceStartTime: start,
		ServiceEndTime:   end,
		ActualDuration:   minutes,
		TimeRecorded:     s.now().Format(time.RFC3339),
	})
	if err != nil {
		return record.RecordResponse{}, err
	}

	s.logger.Info("service recorded",
		zap.String("record_id", created.ID),
		zap.String("staff_id", created.StaffID),
		zap.String("service_id", created.ServiceID),
		zap.Int("actual_duration", created.ActualDuration),
		zap.Bool("in_shift", shiftID != ""),
	)
	return record.ToResponse(created), nil
}

// List implements record.RecordService.
func (s *recordServiceImpl) List(ctx context.Context, filter record.RecordFilter) ([]record.RecordResponse, error) {
	records, err := s.recordRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]record.RecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, record.ToResponse(r))
	}
	return resp, nil
}

// Get implements record.RecordService.
func (s *recordServiceImpl) Get(ctx context.Context, id string) (record.RecordResponse, error) {
	r, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return record.RecordResponse{}, err
	}
	return record.ToResponse(r), nil
}
