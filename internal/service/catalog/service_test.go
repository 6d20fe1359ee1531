package catalog

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog/models"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

func newService() *Service {
	return NewService(memory.NewStore().Services(), logger.NewWithWriter(io.Discard, "debug"))
}

func createReq(name, category string, price int64) *models.CreateServiceRequest {
	p := decimal.NewFromInt(price)
	return &models.CreateServiceRequest{Name: name, Category: category, Price: &p}
}

func TestService_Create(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createReq("Banho simples", "Banho", 25))
	require.NoError(t, err)
	assert.True(t, created.Price.Equal(decimal.NewFromInt(25)))
	assert.True(t, created.Active)

	free, err := svc.Create(ctx, createReq("Avaliação", "Consulta Veterinária", 0))
	require.NoError(t, err)
	assert.True(t, free.Price.IsZero())

	tests := []struct {
		name    string
		req     *models.CreateServiceRequest
		wantErr error
	}{
		{name: "duplicate name", req: createReq("Banho simples", "Banho", 30), wantErr: ErrNameTaken},
		{name: "negative price", req: createReq("Tosa", "Tosa", -1), wantErr: ErrNegativePrice},
		{name: "missing price", req: &models.CreateServiceRequest{Name: "Tosa", Category: "Tosa"}, wantErr: ErrPriceRequired},
		{name: "missing category", req: createReq("Tosa", "", 10), wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	req := createReq("Hotel diária", "Hotel", 80)
	req.EstimatedDurationMinutes = ptr.Ptr(-5)
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrNegativeDuration)
}

func TestService_UpdateRename(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, createReq("Banho", "Banho", 25))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createReq("Tosa", "Tosa", 40))
	require.NoError(t, err)

	_, err = svc.Update(ctx, a.ID, &models.UpdateServiceRequest{Name: ptr.Ptr("Tosa")})
	assert.ErrorIs(t, err, ErrNameTaken)

	updated, err := svc.Update(ctx, a.ID, &models.UpdateServiceRequest{Name: ptr.Ptr("Banho"), EstimatedDurationMinutes: ptr.Ptr(45)})
	require.NoError(t, err)
	assert.Equal(t, 45, *updated.EstimatedDurationMinutes)

	negative := decimal.NewFromInt(-10)
	_, err = svc.Update(ctx, a.ID, &models.UpdateServiceRequest{Price: &negative})
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = svc.Update(ctx, 404, &models.UpdateServiceRequest{Name: ptr.Ptr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_CategoriesAndStatistics(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultServiceCategories, categories)

	_, err = svc.Create(ctx, createReq("Banho", "Banho", 25))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createReq("Banho e tosa", "Banho", 60))
	require.NoError(t, err)
	spa, err := svc.Create(ctx, createReq("Hidratação", "Spa", 35))
	require.NoError(t, err)

	found, err := svc.Deactivate(ctx, spa.ID)
	require.NoError(t, err)
	require.True(t, found)

	categories, err = svc.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, len(domain.DefaultServiceCategories)+1)
	assert.Equal(t, "Spa", categories[len(categories)-1])

	byCategory, err := svc.ListByCategory(ctx, "Banho")
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Active)
	assert.Equal(t, 1, stats.Inactive)
	assert.Equal(t, map[string]int{"Banho": 2, "Spa": 1}, stats.ByCategory)

	active, err := svc.List(ctx, ptr.Ptr(true))
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestService_GetByName(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createReq("Tosa higiênica", "Tosa", 40))
	require.NoError(t, err)

	found, err := svc.GetByName(ctx, "  Tosa higiênica ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetByName(ctx, "Tosa completa")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
