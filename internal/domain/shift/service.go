package shift

import "context"

type ShiftService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (ShiftResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (ShiftResponse, error)
	List(ctx context.Context, filter ShiftFilter) ([]ShiftResponse, error)
	// CloseStale closes active shifts open longer than maxOpenHours; it returns the number closed.
	CloseStale(ctx context.Context, maxOpenHours int) (int, error)
}
