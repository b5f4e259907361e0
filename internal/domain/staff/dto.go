package staff

import (
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/validator"
)

type StaffFilter struct {
	Status *Status
}

type StaffResponse struct {
	ID         string  `json:"staff_id"`
	Name       string  `json:"staff_name"`
	Role       string  `json:"role"`
	Status     string  `json:"status"`
	Phone      string  `json:"phone"`
	JoinedAt   string  `json:"joined_at"`
	BaseSalary float64 `json:"salary_base"`
	SalaryType string  `json:"salary_type"`
}

func ToResponse(s Staff) StaffResponse {
	return StaffResponse{
		ID:         s.ID,
		Name:       s.Name,
		Role:       s.Role,
		Status:     string(s.Status),
		Phone:      s.Phone,
		JoinedAt:   s.JoinedAt.Format("2006-01-02"),
		BaseSalary: s.BaseSalary,
		SalaryType: string(s.SalaryType),
	}
}

type CreateStaffRequest struct {
	Name       string  `json:"staff_name"`
	Role       string  `json:"role"`
	Phone      string  `json:"phone"`
	JoinedAt   string  `json:"joined_at"`
	BaseSalary float64 `json:"salary_base"`
	SalaryType string  `json:"salary_type"`
}

func (r *CreateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_name",
			Message: "staff_name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_name",
			Message: "staff_name must not exceed 100 characters",
		})
	}

	if !validator.IsEmpty(r.JoinedAt) {
		if _, ok := validator.IsValidDate(r.JoinedAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "joined_at",
				Message: "joined_at must be in YYYY-MM-DD format",
			})
		}
	}

	if r.BaseSalary < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "salary_base",
			Message: ErrNegativeBaseSalary.Error(),
		})
	}

	if !SalaryType(r.SalaryType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "salary_type",
			Message: ErrInvalidSalaryType.Error(),
		})
	}

	if !validator.IsEmpty(r.Phone) && !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be 9-15 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// JoinedDate returns the parsed join date, or today when none was given.
func (r *CreateStaffRequest) JoinedDate(now time.Time) time.Time {
	if d, ok := validator.IsValidDate(r.JoinedAt); ok {
		return d
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if !Status(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: ErrInvalidStatus.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
