package staff

import "errors"

var (
	ErrStaffNotFound      = errors.New("staff not found")
	ErrStaffInactive      = errors.New("staff is not active")
	ErrInvalidStatus      = errors.New("status must be ACTIVE or INACTIVE")
	ErrInvalidSalaryType  = errors.New("salary_type must be fixed or commission")
	ErrNegativeBaseSalary = errors.New("salary_base must not be negative")
)
