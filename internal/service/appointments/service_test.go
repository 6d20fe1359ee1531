package appointments

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
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/metrics"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

// среда, 11 марта 2026
var now = time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

type fixedTime struct{}

func (fixedTime) Now() time.Time {
	return now
}

type fixture struct {
	svc      *Service
	store    *memory.Store
	metrics  *metrics.Metrics
	client   *domain.Client
	pet      *domain.Pet
	service  *domain.Service
	employee *domain.Employee
}

func setup(t *testing.T, strict bool) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "test")
	svc := NewService(store.Appointments(), store.TxManager(), m, time.UTC, strict, logger.NewWithWriter(io.Discard, "debug"))
	svc.timeProvider = fixedTime{}

	client, err := store.Clients().Create(ctx, &domain.Client{Name: "Ana", TaxID: "1", Phone: "1", Active: true})
	require.NoError(t, err)
	pet, err := store.Pets().Create(ctx, &domain.Pet{Name: "Rex", Species: domain.SpeciesDog, OwnerID: client.ID, Active: true})
	require.NoError(t, err)
	service, err := store.Services().Create(ctx, &domain.Service{Name: "Banho", Category: "Banho", Price: decimal.NewFromInt(25), Active: true})
	require.NoError(t, err)
	employee, err := store.Employees().Create(ctx, &domain.Employee{Name: "Bia", TaxID: "2", Phone: "2", Role: "groomer", Active: true})
	require.NoError(t, err)

	return &fixture{svc: svc, store: store, metrics: m, client: client, pet: pet, service: service, employee: employee}
}

func (f *fixture) add(t *testing.T, at time.Time, status domain.AppointmentStatus) *domain.Appointment {
	t.Helper()

	a, err := f.store.Appointments().Create(context.Background(), &domain.Appointment{
		ClientID:       f.client.ID,
		PetID:          f.pet.ID,
		ServiceID:      f.service.ID,
		ScheduledAt:    at,
		Status:         status,
		EstimatedValue: f.service.Price,
	})
	require.NoError(t, err)
	return a
}

func TestService_TransitionStatusStrict(t *testing.T) {
	f := setup(t, true)
	ctx := context.Background()
	a := f.add(t, now.Add(24*time.Hour), domain.StatusScheduled)

	_, err := f.svc.Start(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)

	confirmed, err := f.svc.Confirm(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", confirmed.Status)

	_, err = f.svc.Start(ctx, a.ID)
	require.NoError(t, err)

	completed, err := f.svc.Complete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)

	_, err = f.svc.Cancel(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrAppointmentClosed)

	_, err = f.svc.TransitionStatus(ctx, a.ID, "finished")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Cancel(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.StatusTransitions.WithLabelValues("scheduled", "confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.StatusTransitions.WithLabelValues("in_progress", "completed")))
}

func TestService_TransitionStatusLoose(t *testing.T) {
	f := setup(t, false)
	ctx := context.Background()
	a := f.add(t, now.Add(24*time.Hour), domain.StatusScheduled)

	completed, err := f.svc.TransitionStatus(ctx, a.ID, "COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)

	reopened, err := f.svc.TransitionStatus(ctx, a.ID, "scheduled")
	require.NoError(t, err)
	assert.Equal(t, "scheduled", reopened.Status)
}

func TestService_ReopenIntoTakenSlotIsConflict(t *testing.T) {
	f := setup(t, false)
	ctx := context.Background()
	at := now.Add(24 * time.Hour)

	first, err := f.store.Appointments().Create(ctx, &domain.Appointment{
		ClientID: f.client.ID, PetID: f.pet.ID, ServiceID: f.service.ID,
		EmployeeID: &f.employee.ID, ScheduledAt: at, Status: domain.StatusCancelled,
	})
	require.NoError(t, err)
	_, err = f.store.Appointments().Create(ctx, &domain.Appointment{
		ClientID: f.client.ID, PetID: f.pet.ID, ServiceID: f.service.ID,
		EmployeeID: &f.employee.ID, ScheduledAt: at, Status: domain.StatusScheduled,
	})
	require.NoError(t, err)

	_, err = f.svc.TransitionStatus(ctx, first.ID, "scheduled")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestService_Queries(t *testing.T) {
	f := setup(t, true)
	ctx := context.Background()

	monday := f.add(t, time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC), domain.StatusCompleted)
	today := f.add(t, time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC), domain.StatusScheduled)
	sunday := f.add(t, time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC), domain.StatusConfirmed)
	nextWeek := f.add(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), domain.StatusScheduled)

	todayList, err := f.svc.Today(ctx)
	require.NoError(t, err)
	require.Len(t, todayList.Appointments, 1)
	assert.Equal(t, today.ID, todayList.Appointments[0].ID)

	week, err := f.svc.ThisWeek(ctx)
	require.NoError(t, err)
	require.Len(t, week.Appointments, 3)
	assert.Equal(t, monday.ID, week.Appointments[0].ID)
	assert.Equal(t, sunday.ID, week.Appointments[2].ID)

	byClient, err := f.svc.ListByClient(ctx, f.client.ID)
	require.NoError(t, err)
	require.Len(t, byClient.Appointments, 4)
	assert.Equal(t, nextWeek.ID, byClient.Appointments[0].ID)

	byStatus, err := f.svc.ListByStatus(ctx, "scheduled")
	require.NoError(t, err)
	assert.Len(t, byStatus.Appointments, 2)

	_, err = f.svc.ListByStatus(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrValidation)

	byService, err := f.svc.ListByService(ctx, f.service.ID)
	require.NoError(t, err)
	assert.Len(t, byService.Appointments, 4)

	stats, err := f.svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Today)
	assert.Equal(t, 3, stats.ThisWeek)
	assert.Equal(t, 2, stats.ByStatus["scheduled"])
	assert.Equal(t, 0, stats.ByStatus["in_progress"])
	assert.Len(t, stats.ByStatus, 5)

	assert.Equal(t, []string{"scheduled", "confirmed", "in_progress", "completed", "cancelled"}, f.svc.Statuses())
}

func TestService_ListFilters(t *testing.T) {
	f := setup(t, true)
	ctx := context.Background()

	first := f.add(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), domain.StatusScheduled)
	last := f.add(t, time.Date(2026, 3, 13, 23, 30, 0, 0, time.UTC), domain.StatusScheduled)
	f.add(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), domain.StatusScheduled)

	list, err := f.svc.List(ctx, &models.ListAppointmentsRequest{
		StartDate: ptr.Ptr("2026-03-12"),
		EndDate:   ptr.Ptr("2026-03-13"),
	})
	require.NoError(t, err)
	require.Len(t, list.Appointments, 2)
	assert.Equal(t, first.ID, list.Appointments[0].ID)
	assert.Equal(t, last.ID, list.Appointments[1].ID)

	list, err = f.svc.List(ctx, &models.ListAppointmentsRequest{StartDate: ptr.Ptr("2026-03-13T23:30:00Z")})
	require.NoError(t, err)
	assert.Len(t, list.Appointments, 2)

	_, err = f.svc.List(ctx, &models.ListAppointmentsRequest{StartDate: ptr.Ptr("13/03/2026")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.List(ctx, &models.ListAppointmentsRequest{StartDate: ptr.Ptr("2026-03-14"), EndDate: ptr.Ptr("2026-03-12")})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = f.svc.List(ctx, &models.ListAppointmentsRequest{Status: ptr.Ptr("bogus")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	none, err := f.svc.List(ctx, &models.ListAppointmentsRequest{EmployeeID: &f.employee.ID})
	require.NoError(t, err)
	assert.Empty(t, none.Appointments)
}

func TestService_ListByDateRange(t *testing.T) {
	f := setup(t, true)
	ctx := context.Background()

	from := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 12, 18, 0, 0, 0, time.UTC)

	f.add(t, from.Add(-time.Minute), domain.StatusScheduled)
	first := f.add(t, from, domain.StatusScheduled)
	last := f.add(t, to, domain.StatusCancelled)
	f.add(t, to.Add(time.Minute), domain.StatusScheduled)

	list, err := f.svc.ListByDateRange(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, list.Appointments, 2)
	assert.Equal(t, first.ID, list.Appointments[0].ID)
	assert.Equal(t, last.ID, list.Appointments[1].ID)

	_, err = f.svc.ListByDateRange(ctx, to, from)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}
