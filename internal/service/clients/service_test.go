package clients

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-PetCareService/internal/service/clients/models"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

func newService() *Service {
	return NewService(memory.NewStore().Clients(), logger.NewWithWriter(io.Discard, "debug"))
}

func TestService_Create(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreateClientRequest{
		Name:  "  Ana Souza ",
		TaxID: "123.456.789-00",
		Phone: "11 99999-0000",
		Email: ptr.Ptr("ana@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", created.Name)
	assert.True(t, created.Active)
	assert.Nil(t, created.Address)

	tests := []struct {
		name    string
		req     *models.CreateClientRequest
		wantErr error
	}{
		{
			name:    "missing name",
			req:     &models.CreateClientRequest{TaxID: "1", Phone: "1"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "bad email",
			req:     &models.CreateClientRequest{Name: "B", TaxID: "2", Phone: "1", Email: ptr.Ptr("nope")},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "duplicate tax id",
			req:     &models.CreateClientRequest{Name: "B", TaxID: "123.456.789-00", Phone: "1"},
			wantErr: ErrTaxIDTaken,
		},
		{
			name:    "duplicate email",
			req:     &models.CreateClientRequest{Name: "B", TaxID: "3", Phone: "1", Email: ptr.Ptr("ana@example.com")},
			wantErr: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_DuplicateTaxIDOfInactiveClient(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreateClientRequest{Name: "A", TaxID: "1", Phone: "1"})
	require.NoError(t, err)

	found, err := svc.Deactivate(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, found)

	_, err = svc.Create(ctx, &models.CreateClientRequest{Name: "B", TaxID: "1", Phone: "2"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Update(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, &models.CreateClientRequest{Name: "A", TaxID: "1", Phone: "1", Email: ptr.Ptr("a@x.com"), Address: ptr.Ptr("Rua 1")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.CreateClientRequest{Name: "B", TaxID: "2", Phone: "2", Email: ptr.Ptr("b@x.com")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, a.ID, &models.UpdateClientRequest{Phone: ptr.Ptr("9"), ClearAddress: true})
	require.NoError(t, err)
	assert.Equal(t, "9", updated.Phone)
	assert.Equal(t, "A", updated.Name)
	assert.Nil(t, updated.Address)
	assert.Equal(t, "a@x.com", *updated.Email)

	_, err = svc.Update(ctx, a.ID, &models.UpdateClientRequest{TaxID: ptr.Ptr("2")})
	assert.ErrorIs(t, err, ErrTaxIDTaken)

	_, err = svc.Update(ctx, a.ID, &models.UpdateClientRequest{Email: ptr.Ptr("b@x.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// повторная запись собственных значений не считается конфликтом
	_, err = svc.Update(ctx, a.ID, &models.UpdateClientRequest{TaxID: ptr.Ptr("1"), Email: ptr.Ptr("a@x.com")})
	assert.NoError(t, err)

	_, err = svc.Update(ctx, 999, &models.UpdateClientRequest{Phone: ptr.Ptr("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ActivateDeactivate(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	c, err := svc.Create(ctx, &models.CreateClientRequest{Name: "A", TaxID: "1", Phone: "1"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		found, err := svc.Deactivate(ctx, c.ID)
		require.NoError(t, err)
		assert.True(t, found)
	}

	got, err := svc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	active, err := svc.List(ctx, ptr.Ptr(true))
	require.NoError(t, err)
	assert.Empty(t, active)

	found, err := svc.Activate(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = svc.Deactivate(ctx, 404)
	require.NoError(t, err)
	assert.False(t, found)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Active)
}

func TestService_Lookups(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	c, err := svc.Create(ctx, &models.CreateClientRequest{Name: "A", TaxID: "1", Phone: "1", Email: ptr.Ptr("a@x.com")})
	require.NoError(t, err)

	byTax, err := svc.GetByTaxID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byTax.ID)

	byEmail, err := svc.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byEmail.ID)

	_, err = svc.GetByEmail(ctx, "zzz@x.com")
	assert.ErrorIs(t, err, ErrClientNotFound)
}
