package staff

import "context"

type StaffRepository interface {
	GetByID(ctx context.Context, id string) (Staff, error)
	List(ctx context.Context, filter StaffFilter) ([]Staff, error)
	Create(ctx context.Context, newStaff Staff) (Staff, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}
