package create_appointment

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-PetCareService/internal/usecase/scheduling_rules"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/metrics"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fixedTime struct{}

func (fixedTime) Now() time.Time {
	return now
}

type fixture struct {
	uc       *UseCase
	store    *memory.Store
	metrics  *metrics.Metrics
	client   *domain.Client
	pet      *domain.Pet
	service  *domain.Service
	employee *domain.Employee
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	log := logger.NewWithWriter(io.Discard, "debug")
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "test")

	rules := scheduling_rules.NewChecker(store.Clients(), store.Pets(), store.Services(), store.Employees(), store.Appointments(), log)
	uc := NewUseCase(store.Appointments(), rules, store.TxManager(), m, log)
	uc.timeProvider = fixedTime{}

	client, err := store.Clients().Create(ctx, &domain.Client{Name: "C1", TaxID: "1", Phone: "1", Active: true})
	require.NoError(t, err)
	pet, err := store.Pets().Create(ctx, &domain.Pet{Name: "P1", Species: domain.SpeciesDog, OwnerID: client.ID, Active: true})
	require.NoError(t, err)
	service, err := store.Services().Create(ctx, &domain.Service{
		Name: "S1", Category: "Banho", Price: decimal.RequireFromString("25.00"),
		EstimatedDurationMinutes: ptr.Ptr(60), Active: true,
	})
	require.NoError(t, err)
	employee, err := store.Employees().Create(ctx, &domain.Employee{Name: "E1", TaxID: "9", Phone: "9", Role: "groomer", Active: true})
	require.NoError(t, err)

	return &fixture{uc: uc, store: store, metrics: m, client: client, pet: pet, service: service, employee: employee}
}

func (f *fixture) request() *Request {
	return &Request{
		ClientID:    f.client.ID,
		PetID:       f.pet.ID,
		ServiceID:   f.service.ID,
		ScheduledAt: time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
	}
}

func TestUseCase_CreateDefaultsFromService(t *testing.T) {
	f := setup(t)

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.Equal(t, "scheduled", resp.Status)
	assert.True(t, resp.EstimatedValue.Equal(decimal.RequireFromString("25")))
	assert.Equal(t, 60, *resp.EstimatedDurationMinutes)
	assert.Nil(t, resp.EmployeeID)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AppointmentsCreated))
}

func TestUseCase_CreateExplicitEstimates(t *testing.T) {
	f := setup(t)

	req := f.request()
	value := decimal.RequireFromString("40.50")
	req.EstimatedValue = &value
	req.EstimatedDurationMinutes = ptr.Ptr(90)
	req.Notes = ptr.Ptr("  alérgico a shampoo  ")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.EstimatedValue.Equal(value))
	assert.Equal(t, 90, *resp.EstimatedDurationMinutes)
	assert.Equal(t, "alérgico a shampoo", *resp.Notes)
}

func TestUseCase_EmployeeConflict(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first := f.request()
	first.EmployeeID = &f.employee.ID
	_, err := f.uc.Execute(ctx, first)
	require.NoError(t, err)

	other, err := f.store.Clients().Create(ctx, &domain.Client{Name: "C2", TaxID: "2", Phone: "2", Active: true})
	require.NoError(t, err)
	otherPet, err := f.store.Pets().Create(ctx, &domain.Pet{Name: "P2", Species: domain.SpeciesCat, OwnerID: other.ID, Active: true})
	require.NoError(t, err)
	otherService, err := f.store.Services().Create(ctx, &domain.Service{Name: "S2", Category: "Tosa", Price: decimal.NewFromInt(40), Active: true})
	require.NoError(t, err)

	second := &Request{
		ClientID:    other.ID,
		PetID:       otherPet.ID,
		ServiceID:   otherService.ID,
		EmployeeID:  &f.employee.ID,
		ScheduledAt: first.ScheduledAt,
	}
	_, err = f.uc.Execute(ctx, second)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AppointmentConflicts))

	// без сотрудника конфликт не проверяется
	second.EmployeeID = nil
	_, err = f.uc.Execute(ctx, second)
	assert.NoError(t, err)

	// другое время у того же сотрудника допустимо
	second.EmployeeID = &f.employee.ID
	second.ScheduledAt = first.ScheduledAt.Add(time.Minute)
	_, err = f.uc.Execute(ctx, second)
	assert.NoError(t, err)
}

func TestUseCase_ValidationFailures(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	otherClient, err := f.store.Clients().Create(ctx, &domain.Client{Name: "C2", TaxID: "2", Phone: "2", Active: true})
	require.NoError(t, err)
	otherPet, err := f.store.Pets().Create(ctx, &domain.Pet{Name: "P2", Species: domain.SpeciesCat, OwnerID: otherClient.ID, Active: true})
	require.NoError(t, err)
	inactiveClient, err := f.store.Clients().Create(ctx, &domain.Client{Name: "C3", TaxID: "3", Phone: "3", Active: false})
	require.NoError(t, err)
	inactiveService, err := f.store.Services().Create(ctx, &domain.Service{Name: "Old", Category: "Outros", Active: false})
	require.NoError(t, err)
	inactiveEmployee, err := f.store.Employees().Create(ctx, &domain.Employee{Name: "E2", TaxID: "8", Phone: "8", Role: "vet", Active: false})
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "missing client", mutate: func(r *Request) { r.ClientID = 0 }, wantErr: domain.ErrValidation},
		{name: "missing scheduledAt", mutate: func(r *Request) { r.ScheduledAt = time.Time{} }, wantErr: domain.ErrValidation},
		{name: "unknown client", mutate: func(r *Request) { r.ClientID = 999 }, wantErr: scheduling_rules.ErrClientNotFound},
		{name: "inactive client", mutate: func(r *Request) { r.ClientID = inactiveClient.ID }, wantErr: scheduling_rules.ErrClientInactive},
		{name: "unknown pet", mutate: func(r *Request) { r.PetID = 999 }, wantErr: scheduling_rules.ErrPetNotFound},
		{name: "pet of another client", mutate: func(r *Request) { r.PetID = otherPet.ID }, wantErr: scheduling_rules.ErrPetOwnerMismatch},
		{name: "unknown service", mutate: func(r *Request) { r.ServiceID = 999 }, wantErr: scheduling_rules.ErrServiceNotFound},
		{name: "inactive service", mutate: func(r *Request) { r.ServiceID = inactiveService.ID }, wantErr: scheduling_rules.ErrServiceInactive},
		{name: "unknown employee", mutate: func(r *Request) { r.EmployeeID = ptr.Ptr(int64(999)) }, wantErr: scheduling_rules.ErrEmployeeNotFound},
		{name: "inactive employee", mutate: func(r *Request) { r.EmployeeID = &inactiveEmployee.ID }, wantErr: scheduling_rules.ErrEmployeeInactive},
		{name: "scheduled now", mutate: func(r *Request) { r.ScheduledAt = now }, wantErr: scheduling_rules.ErrNotInFuture},
		{name: "scheduled in the past", mutate: func(r *Request) { r.ScheduledAt = now.Add(-time.Hour) }, wantErr: scheduling_rules.ErrNotInFuture},
		{name: "negative value", mutate: func(r *Request) { v := decimal.NewFromInt(-1); r.EstimatedValue = &v }, wantErr: ErrNegativeValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request()
			tt.mutate(req)

			_, err := f.uc.Execute(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	list, err := f.store.Appointments().List(ctx, domain.AppointmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUseCase_ConcurrentBookingsOfSameSlot(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := f.request()
			req.EmployeeID = &f.employee.ID
			_, err := f.uc.Execute(ctx, req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, domain.ErrConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)
}
