package record

import "context"

type RecordService interface {
	// Create validates the order form, computes the actual duration and stores the record.
	Create(ctx context.Context, req CreateRecordRequest) (RecordResponse, error)
	List(ctx context.Context, filter RecordFilter) ([]RecordResponse, error)
	Get(ctx context.Context, id string) (RecordResponse, error)
}
