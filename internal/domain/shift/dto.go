package shift

import "github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/validator"

type ShiftResponse struct {
	ID           string  `json:"shift_id"`
	StaffID      string  `json:"staff_id"`
	Status       string  `json:"status"`
	CheckInTime  string  `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
}

func ToResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:           s.ID,
		StaffID:      s.StaffID,
		Status:       string(s.Status),
		CheckInTime:  s.CheckInTime,
		CheckOutTime: s.CheckOutTime,
	}
}

type CheckInRequest struct {
	StaffID string `json:"staff_id"`
}

func (r *CheckInRequest) Validate() error {
	if validator.IsEmpty(r.StaffID) {
		return validator.ValidationErrors{{
			Field:   "staff_id",
			Message: "staff_id is required",
		}}
	}
	return nil
}

type CheckOutRequest struct {
	StaffID string `json:"staff_id"`
}

func (r *CheckOutRequest) Validate() error {
	if validator.IsEmpty(r.StaffID) {
		return validator.ValidationErrors{{
			Field:   "staff_id",
			Message: "staff_id is required",
		}}
	}
	return nil
}

// ParseStatus converts a query value into a Status filter; empty means no filter.
func ParseStatus(value string) (*Status, error) {
	if value == "" {
		return nil, nil
	}
	s := Status(value)
	if s != StatusActive && s != StatusClosed {
		return nil, ErrInvalidStatus
	}
	return &s, nil
}
