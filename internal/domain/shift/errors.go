package shift

import "errors"

var (
	ErrAlreadyCheckedIn = errors.New("staff already has an active shift")
	ErrNotCheckedIn     = errors.New("staff has no active shift")
	ErrShiftNotFound    = errors.New("shift not found")
	ErrInvalidStatus    = errors.New("status must be active or closed")
)
