package record

import "errors"

var (
	ErrRecordNotFound  = errors.New("service record not found")
	ErrEndBeforeStart  = errors.New("end time must be after start time")
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrInvalidDateTime = errors.New("invalid service date or time")
)
