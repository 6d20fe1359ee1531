package update_appointment

import (
	"context"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-PetCareService/internal/usecase/scheduling_rules"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/metrics"
	"github.com/m04kA/SMC-PetCareService/pkg/txmanager"
)

// passingRules пропускает все проверки и возвращает услугу
type passingRules struct{}

func (passingRules) Check(_ context.Context, cand scheduling_rules.Candidate, _ time.Time) (*domain.Service, error) {
	return &domain.Service{ID: cand.ServiceID, Price: decimal.NewFromInt(25), Active: true}, nil
}

var appointmentColumns = []string{
	"id", "client_id", "pet_id", "service_id", "employee_id", "scheduled_at", "status",
	"notes", "estimated_value", "estimated_duration_minutes", "created_at", "updated_at",
}

func TestUseCase_SerializationFailureOnCommitIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil, "test")
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "test")
	uc := NewUseCase(
		appointmentRepo.NewRepository(wrapped),
		passingRules{},
		txmanager.NewTransactionManager(wrapped),
		m,
		true,
		logger.NewWithWriter(io.Discard, "debug"),
	)
	uc.timeProvider = fixedTime{}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM appointments WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(appointmentColumns).
			AddRow(int64(1), int64(10), int64(20), int64(30), int64(5), tomorrow, "scheduled", nil, "25.00", int64(60), now, now))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE appointments SET")).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectCommit().WillReturnError(&pq.Error{Code: "40001"})

	moved := tomorrow.Add(time.Hour)
	_, err = uc.Execute(context.Background(), 1, &Request{ScheduledAt: &moved})
	assert.ErrorIs(t, err, scheduling_rules.ErrSlotTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AppointmentConflicts))
	assert.NoError(t, mock.ExpectationsWereMet())
}
