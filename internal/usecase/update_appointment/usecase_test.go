package update_appointment

import (
	"context"
	"io"
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

var (
	now      = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tomorrow = time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
)

type fixedTime struct{}

func (fixedTime) Now() time.Time {
	return now
}

type fixture struct {
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

	client, err := store.Clients().Create(ctx, &domain.Client{Name: "C1", TaxID: "1", Phone: "1", Active: true})
	require.NoError(t, err)
	pet, err := store.Pets().Create(ctx, &domain.Pet{Name: "P1", Species: domain.SpeciesDog, OwnerID: client.ID, Active: true})
	require.NoError(t, err)
	service, err := store.Services().Create(ctx, &domain.Service{Name: "S1", Category: "Banho", Price: decimal.NewFromInt(25), Active: true})
	require.NoError(t, err)
	employee, err := store.Employees().Create(ctx, &domain.Employee{Name: "E1", TaxID: "9", Phone: "9", Role: "groomer", Active: true})
	require.NoError(t, err)

	return &fixture{
		store:    store,
		metrics:  metrics.NewWithRegistry(prometheus.NewRegistry(), "test"),
		client:   client,
		pet:      pet,
		service:  service,
		employee: employee,
	}
}

func (f *fixture) useCase(strict bool) *UseCase {
	log := logger.NewWithWriter(io.Discard, "debug")
	rules := scheduling_rules.NewChecker(f.store.Clients(), f.store.Pets(), f.store.Services(), f.store.Employees(), f.store.Appointments(), log)
	uc := NewUseCase(f.store.Appointments(), rules, f.store.TxManager(), f.metrics, strict, log)
	uc.timeProvider = fixedTime{}
	return uc
}

func (f *fixture) add(t *testing.T, at time.Time, employeeID *int64, status domain.AppointmentStatus) *domain.Appointment {
	t.Helper()

	a, err := f.store.Appointments().Create(context.Background(), &domain.Appointment{
		ClientID:       f.client.ID,
		PetID:          f.pet.ID,
		ServiceID:      f.service.ID,
		EmployeeID:     employeeID,
		ScheduledAt:    at,
		Status:         status,
		EstimatedValue: f.service.Price,
	})
	require.NoError(t, err)
	return a
}

func TestUseCase_UpdateClosedAppointment(t *testing.T) {
	f := setup(t)
	uc := f.useCase(true)

	for _, status := range []domain.AppointmentStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			a := f.add(t, tomorrow, nil, status)

			_, err := uc.Execute(context.Background(), a.ID, &Request{Notes: ptr.Ptr("late note")})
			assert.ErrorIs(t, err, domain.ErrAppointmentClosed)
			assert.ErrorIs(t, err, domain.ErrValidation)

			stored, err := f.store.Appointments().GetByID(context.Background(), a.ID)
			require.NoError(t, err)
			assert.Nil(t, stored.Notes)
		})
	}
}

func TestUseCase_ConflictExcludesSelf(t *testing.T) {
	f := setup(t)
	uc := f.useCase(true)
	ctx := context.Background()

	a := f.add(t, tomorrow, &f.employee.ID, domain.StatusScheduled)

	resp, err := uc.Execute(ctx, a.ID, &Request{
		EmployeeID:  &f.employee.ID,
		ScheduledAt: &tomorrow,
		Notes:       ptr.Ptr("same slot"),
	})
	require.NoError(t, err)
	assert.Equal(t, "same slot", *resp.Notes)

	other := f.add(t, tomorrow.Add(time.Hour), &f.employee.ID, domain.StatusScheduled)
	_, err = uc.Execute(ctx, other.ID, &Request{ScheduledAt: &tomorrow})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AppointmentConflicts))

	// без сотрудника слот свободен
	resp, err = uc.Execute(ctx, other.ID, &Request{ClearEmployee: true, ScheduledAt: &tomorrow})
	require.NoError(t, err)
	assert.Nil(t, resp.EmployeeID)
}

func TestUseCase_RevalidatesWithMergedValues(t *testing.T) {
	f := setup(t)
	uc := f.useCase(true)
	ctx := context.Background()

	otherClient, err := f.store.Clients().Create(ctx, &domain.Client{Name: "C2", TaxID: "2", Phone: "2", Active: true})
	require.NoError(t, err)
	otherPet, err := f.store.Pets().Create(ctx, &domain.Pet{Name: "P2", Species: domain.SpeciesCat, OwnerID: otherClient.ID, Active: true})
	require.NoError(t, err)
	inactiveEmployee, err := f.store.Employees().Create(ctx, &domain.Employee{Name: "E2", TaxID: "8", Phone: "8", Role: "vet", Active: false})
	require.NoError(t, err)

	a := f.add(t, tomorrow, nil, domain.StatusScheduled)
	past := now.Add(-time.Hour)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "pet of another client", req: &Request{PetID: &otherPet.ID}, wantErr: scheduling_rules.ErrPetOwnerMismatch},
		{name: "client without its pet", req: &Request{ClientID: &otherClient.ID}, wantErr: scheduling_rules.ErrPetOwnerMismatch},
		{name: "unknown service", req: &Request{ServiceID: ptr.Ptr(int64(404))}, wantErr: scheduling_rules.ErrServiceNotFound},
		{name: "inactive employee", req: &Request{EmployeeID: &inactiveEmployee.ID}, wantErr: scheduling_rules.ErrEmployeeInactive},
		{name: "time in the past", req: &Request{ScheduledAt: &past}, wantErr: scheduling_rules.ErrNotInFuture},
		{name: "employee and clear", req: &Request{EmployeeID: &f.employee.ID, ClearEmployee: true}, wantErr: ErrConflictingEmployee},
		{name: "negative duration", req: &Request{EstimatedDurationMinutes: ptr.Ptr(-5)}, wantErr: ErrNegativeDuration},
		{name: "unknown status", req: &Request{Status: ptr.Ptr("done")}, wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, a.ID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// перенос клиента вместе с его питомцем допустим
	resp, err := uc.Execute(ctx, a.ID, &Request{ClientID: &otherClient.ID, PetID: &otherPet.ID})
	require.NoError(t, err)
	assert.Equal(t, otherClient.ID, resp.ClientID)
	assert.Equal(t, otherPet.ID, resp.PetID)
	assert.Equal(t, f.service.ID, resp.ServiceID)
}

func TestUseCase_NotesOnlySkipsRevalidation(t *testing.T) {
	f := setup(t)
	uc := f.useCase(true)
	ctx := context.Background()

	// запись в прошлом, но еще не завершена
	a := f.add(t, now.Add(-2*time.Hour), nil, domain.StatusInProgress)

	resp, err := uc.Execute(ctx, a.ID, &Request{
		Notes:          ptr.Ptr("  trimmed  "),
		EstimatedValue: ptr.Ptr(decimal.RequireFromString("30.5")),
	})
	require.NoError(t, err)
	assert.Equal(t, "trimmed", *resp.Notes)
	assert.True(t, resp.EstimatedValue.Equal(decimal.RequireFromString("30.5")))

	resp, err = uc.Execute(ctx, a.ID, &Request{Notes: ptr.Ptr("   ")})
	require.NoError(t, err)
	assert.Nil(t, resp.Notes)
}

func TestUseCase_StatusChange(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	t.Run("strict", func(t *testing.T) {
		uc := f.useCase(true)
		a := f.add(t, tomorrow, nil, domain.StatusScheduled)

		_, err := uc.Execute(ctx, a.ID, &Request{Status: ptr.Ptr("completed")})
		assert.ErrorIs(t, err, domain.ErrValidation)

		resp, err := uc.Execute(ctx, a.ID, &Request{Status: ptr.Ptr("scheduled")})
		require.NoError(t, err)
		assert.Equal(t, "scheduled", resp.Status)

		resp, err = uc.Execute(ctx, a.ID, &Request{Status: ptr.Ptr("Confirmed")})
		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.StatusTransitions.WithLabelValues("scheduled", "confirmed")))
	})

	t.Run("loose", func(t *testing.T) {
		uc := f.useCase(false)
		a := f.add(t, tomorrow.Add(time.Hour), nil, domain.StatusScheduled)

		resp, err := uc.Execute(ctx, a.ID, &Request{Status: ptr.Ptr("completed")})
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)

		_, err = uc.Execute(ctx, a.ID, &Request{Status: ptr.Ptr("scheduled")})
		assert.ErrorIs(t, err, domain.ErrAppointmentClosed)
	})
}

func TestUseCase_NotFound(t *testing.T) {
	f := setup(t)

	_, err := f.useCase(true).Execute(context.Background(), 404, &Request{Notes: ptr.Ptr("x")})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
