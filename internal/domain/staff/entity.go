package staff

import "time"

type Staff struct {
	ID         string
	Name       string
	Role       string
	Status     Status
	Phone      string
	JoinedAt   time.Time
	BaseSalary float64
	SalaryType SalaryType
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// SalaryType selects the commission rate applied in salary estimates.
type SalaryType string

const (
	SalaryTypeFixed      SalaryType = "fixed"
	SalaryTypeCommission SalaryType = "commission"
)

func (t SalaryType) IsValid() bool {
	return t == SalaryTypeFixed || t == SalaryTypeCommission
}
