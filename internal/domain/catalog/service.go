package catalog

import "context"

type CatalogService interface {
	List(ctx context.Context) ([]ServiceResponse, error)
	Create(ctx context.Context, req CreateServiceRequest) (ServiceResponse, error)
	Delete(ctx context.Context, id string) error
}
