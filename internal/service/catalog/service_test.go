package catalog

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/catalog"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewCatalogService(store.Services(), store.Records())

	_, err := svc.Create(ctx, catalog.CreateServiceRequest{Name: "Reflexology", DefaultPrice: 150_000, StandardDuration: 45})
	require.NoError(t, err)
	_, err = svc.Create(ctx, catalog.CreateServiceRequest{Name: "Body Scrub", DefaultPrice: 200_000, StandardDuration: 60})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Body Scrub", list[0].Name)
	assert.Equal(t, 45, list[1].StandardDuration)
}

func TestCatalogService_Create_Validation(t *testing.T) {
	svc := NewCatalogService(memory.NewStore().Services(), nil)

	_, err := svc.Create(context.Background(), catalog.CreateServiceRequest{DefaultPrice: -5})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
}

func TestCatalogService_Delete(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewCatalogService(store.Services(), store.Records())

	used, err := svc.Create(ctx, catalog.CreateServiceRequest{Name: "Facial", DefaultPrice: 100_000, StandardDuration: 60})
	require.NoError(t, err)
	unused, err := svc.Create(ctx, catalog.CreateServiceRequest{Name: "Manicure", DefaultPrice: 80_000, StandardDuration: 30})
	require.NoError(t, err)
	_, err = store.Records().Create(ctx, record.ServiceRecord{StaffID: "s-1", ServiceID: used.ID, ServiceStartTime: "2024-05-08T09:00:00"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, used.ID), catalog.ErrServiceInUse)
	assert.NoError(t, svc.Delete(ctx, unused.ID))
	assert.ErrorIs(t, svc.Delete(ctx, unused.ID), catalog.ErrServiceNotFound)
}
