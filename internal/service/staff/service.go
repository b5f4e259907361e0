package staff

import (
	"context"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/staff"
	"go.uber.org/zap"
)

type staffServiceImpl struct {
	staffRepo staff.StaffRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewStaffService(staffRepo staff.StaffRepository, logger *zap.Logger) staff.StaffService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &staffServiceImpl{
		staffRepo: staffRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// List implements staff.StaffService.
func (s *staffServiceImpl) List(ctx context.Context, filter staff.StaffFilter) ([]staff.StaffResponse, error) {
	members, err := s.staffRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]staff.StaffResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, staff.ToResponse(m))
	}
	return resp, nil
}

// Get implements staff.StaffService.
func (s *staffServiceImpl) Get(ctx context.Context, id string) (staff.StaffResponse, error) {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	return staff.ToResponse(member), nil
}

// Create implements staff.StaffService. New staff start ACTIVE.
func (s *staffServiceImpl) Create(ctx context.Context, req staff.CreateStaffRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}

	created, err := s.staffRepo.Create(ctx, staff.Staff{
		Name:       req.Name,
		Role:       req.Role,
		Status:     staff.StatusActive,
		Phone:      req.Phone,
		JoinedAt:   req.JoinedDate(s.now()),
		BaseSalary: req.BaseSalary,
		SalaryType: staff.SalaryType(req.SalaryType),
	})
	if err != nil {
		return staff.StaffResponse{}, err
	}

	s.logger.Info("staff created", zap.String("staff_id", created.ID), zap.String("role", created.Role))
	return staff.ToResponse(created), nil
}

// UpdateStatus implements staff.StaffService.
func (s *staffServiceImpl) UpdateStatus(ctx context.Context, req staff.UpdateStatusRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.staffRepo.UpdateStatus(ctx, req.ID, staff.Status(req.Status)); err != nil {
		return err
	}
	s.logger.Info("staff status updated", zap.String("staff_id", req.ID), zap.String("status", req.Status))
	return nil
}

// Delete implements staff.StaffService.
func (s *staffServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.staffRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("staff deleted", zap.String("staff_id", id))
	return nil
}
