package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidPasscode):
		Unauthorized(w, "Invalid passcode")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Staff domain errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff not found")
	case errors.Is(err, staff.ErrStaffInactive):
		Conflict(w, "Staff is not active")

	// Catalog domain errors
	case errors.Is(err, catalog.ErrServiceNotFound):
		NotFound(w, "Service not found")
	case errors.Is(err, catalog.ErrServiceInUse):
		Conflict(w, "Service is referenced by recorded services")

	// Record domain errors
	case errors.Is(err, record.ErrRecordNotFound):
		NotFound(w, "Service record not found")
	case errors.Is(err, record.ErrInvalidDateTime):
		BadRequest(w, "Invalid service date or time", nil)

	// Shift domain errors
	case errors.Is(err, shift.ErrAlreadyCheckedIn):
		Conflict(w, "Staff is already checked in")
	case errors.Is(err, shift.ErrNotCheckedIn):
		Conflict(w, "Staff is not checked in")
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Performance domain errors
	case errors.Is(err, performance.ErrInvalidAsOf):
		BadRequest(w, performance.ErrInvalidAsOf.Error(), nil)
	case errors.Is(err, performance.ErrInvalidWeekEnd):
		BadRequest(w, performance.ErrInvalidWeekEnd.Error(), nil)
	case errors.Is(err, performance.ErrSnapshotMissing):
		NotFound(w, "No performance snapshot for the requested week")
	case errors.Is(err, performance.ErrReportGenerate):
		InternalServerError(w, "Failed to generate report")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
