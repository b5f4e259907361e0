package shift

// Shift is an attendance interval bounded by check-in and check-out.
type Shift struct {
	ID           string
	StaffID      string
	Status       Status
	CheckInTime  string
	CheckOutTime *string
}

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

func (s Shift) IsActive() bool {
	return s.Status == StatusActive
}
