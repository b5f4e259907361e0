package catalog

import "github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/validator"

type ServiceResponse struct {
	ID               string  `json:"service_id"`
	Name             string  `json:"service_name"`
	DefaultPrice     float64 `json:"default_price"`
	StandardDuration int     `json:"standard_duration"`
}

func ToResponse(s Service) ServiceResponse {
	return ServiceResponse{
		ID:               s.ID,
		Name:             s.Name,
		DefaultPrice:     s.DefaultPrice,
		StandardDuration: s.StandardDuration,
	}
}

type CreateServiceRequest struct {
	Name             string  `json:"service_name"`
	DefaultPrice     float64 `json:"default_price"`
	StandardDuration int     `json:"standard_duration"`
}

func (r *CreateServiceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "service_name",
			Message: "service_name is required",
		})
	}
	if r.DefaultPrice < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_price",
			Message: "default_price must not be negative",
		})
	}
	if r.StandardDuration <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "standard_duration",
			Message: "standard_duration must be greater than 0",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
