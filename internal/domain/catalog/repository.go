package catalog

import "context"

type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (Service, error)
	List(ctx context.Context) ([]Service, error)
	Create(ctx context.Context, newService Service) (Service, error)
	Delete(ctx context.Context, id string) error
}
