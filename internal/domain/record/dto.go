package record

import "github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/validator"

type RecordResponse struct {
	ID               string  `json:"record_id"`
	ShiftID          string  `json:"shift_id,omitempty"`
	StaffID          string  `json:"staff_id"`
	ServiceID        string  `json:"service_id"`
	ServiceName      string  `json:"service_name"`
	ServicePrice     float64 `json:"service_price"`
	ServiceStartTime string  `json:"service_start_time"`
	ServiceEndTime   string  `json:"service_end_time"`
	ActualDuration   int     `json:"actual_duration"`
	TimeRecorded     string  `json:"time_recorded"`
}

func ToResponse(r ServiceRecord) RecordResponse {
	return RecordResponse{
		ID:               r.ID,
		ShiftID:          r.ShiftID,
		StaffID:          r.StaffID,
		ServiceID:        r.ServiceID,
		ServiceName:      r.ServiceName,
		ServicePrice:     r.ServicePrice,
		ServiceStartTime: r.ServiceStartTime,
		ServiceEndTime:   r.ServiceEndTime,
		ActualDuration:   r.ActualDuration,
		TimeRecorded:     r.TimeRecorded,
	}
}

// CreateRecordRequest mirrors the order-entry form: one date plus HH:MM start and end.
type CreateRecordRequest struct {
	StaffID   string   `json:"staff_id"`
	ServiceID string   `json:"service_id"`
	Price     *float64 `json:"price,omitempty"`
	Date      string   `json:"date"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
}

func (r *CreateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}
	if validator.IsEmpty(r.ServiceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "service_id",
			Message: "service_id is required",
		})
	}
	if r.Price != nil && *r.Price < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "price",
			Message: ErrNegativePrice.Error(),
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if !validator.IsValidClock(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}
	if !validator.IsValidClock(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	// Same-day HH:MM strings order lexicographically.
	if r.EndTime <= r.StartTime {
		return validator.ValidationErrors{{
			Field:   "end_time",
			Message: ErrEndBeforeStart.Error(),
		}}
	}
	return nil
}

// StartDateTime and EndDateTime build the stored ISO-8601 local timestamps.
func (r *CreateRecordRequest) StartDateTime() string {
	return r.Date + "T" + r.StartTime + ":00"
}

func (r *CreateRecordRequest) EndDateTime() string {
	return r.Date + "T" + r.EndTime + ":00"
}
