package shift

import "context"

type ShiftFilter struct {
	StaffID *string
	Status  *Status
	// CheckInFrom is a YYYY-MM-DD lower bound compared against the stored check-in prefix.
	CheckInFrom *string
}

type ShiftRepository interface {
	// Create inserts an active shift; it returns ErrAlreadyCheckedIn when the
	// staff member already has one.
	Create(ctx context.Context, newShift Shift) (Shift, error)
	GetActiveByStaffID(ctx context.Context, staffID string) (Shift, error)
	Close(ctx context.Context, id string, checkOutTime string) (Shift, error)
	List(ctx context.Context, filter ShiftFilter) ([]Shift, error)
	// ListActiveCheckedInBefore returns active shifts whose check-in precedes the given timestamp.
	ListActiveCheckedInBefore(ctx context.Context, before string) ([]Shift, error)
}
