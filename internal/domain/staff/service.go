package staff

import "context"

type StaffService interface {
	List(ctx context.Context, filter StaffFilter) ([]StaffResponse, error)
	Get(ctx context.Context, id string) (StaffResponse, error)
	Create(ctx context.Context, req CreateStaffRequest) (StaffResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) error
	Delete(ctx context.Context, id string) error
}
