package catalog

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/record"
)

type catalogServiceImpl struct {
	serviceRepo catalog.ServiceRepository
	recordRepo  record.RecordRepository
}

func NewCatalogService(serviceRepo catalog.ServiceRepository, recordRepo record.RecordRepository) catalog.CatalogService {
	return &catalogServiceImpl{
		serviceRepo: serviceRepo,
		recordRepo:  recordRepo,
	}
}

// List implements catalog.CatalogService.
func (s *catalogServiceImpl) List(ctx context.Context) ([]catalog.ServiceResponse, error) {
	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]catalog.ServiceResponse, 0, len(services))
	for _, svc := range services {
		resp = append(resp, catalog.ToResponse(svc))
	}
	return resp, nil
}

// Create implements catalog.CatalogService.
func (s *catalogServiceImpl) Create(ctx context.Context, req catalog.CreateServiceRequest) (catalog.ServiceResponse, error) {
	if err := req.Validate(); err != nil {
		return catalog.ServiceResponse{}, err
	}

	created, err := s.serviceRepo.Create(ctx, catalog.Service{
		Name:             req.Name,
		DefaultPrice:     req.DefaultPrice,
		StandardDuration: req.StandardDuration,
	})
	if err != nil {
		return catalog.ServiceResponse{}, err
	}
	return catalog.ToResponse(created), nil
}

// Delete implements catalog.CatalogService. Services referenced by a record
// cannot be removed.
func (s *catalogServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.serviceRepo.GetByID(ctx, id); err != nil {
		return err
	}

	used, err := s.recordRepo.CountByServiceID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check service usage: %w", err)
	}
	if used > 0 {
		return catalog.ErrServiceInUse
	}

	return s.serviceRepo.Delete(ctx, id)
}
