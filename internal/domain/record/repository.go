package record

import "context"

type RecordFilter struct {
	StaffID *string
	// StartFrom is a YYYY-MM-DD lower bound compared against the stored start time prefix.
	StartFrom *string
}

type RecordRepository interface {
	Create(ctx context.Context, newRecord ServiceRecord) (ServiceRecord, error)
	GetByID(ctx context.Context, id string) (ServiceRecord, error)
	List(ctx context.Context, filter RecordFilter) ([]ServiceRecord, error)
	CountByServiceID(ctx context.Context, serviceID string) (int64, error)
}
