package create_appointment

import (
	"context"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
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

func newPostgresUseCase(t *testing.T) (*UseCase, *metrics.Metrics, sqlmock.Sqlmock) {
	t.Helper()

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
		logger.NewWithWriter(io.Discard, "debug"),
	)
	uc.timeProvider = fixedTime{}
	return uc, m, mock
}

func postgresRequest() *Request {
	employeeID := int64(5)
	return &Request{
		ClientID:    10,
		PetID:       20,
		ServiceID:   30,
		EmployeeID:  &employeeID,
		ScheduledAt: time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
	}
}

// Параллельная запись на тот же слот в SERIALIZABLE падает с 40001 на вставке или на коммите
func TestUseCase_SerializationFailureIsConflict(t *testing.T) {
	createdAt := now

	tests := []struct {
		name   string
		expect func(mock sqlmock.Sqlmock)
	}{
		{
			name: "insert (lib/pq)",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments")).
					WillReturnError(&pq.Error{Code: "40001"})
				mock.ExpectRollback()
			},
		},
		{
			name: "commit (lib/pq)",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments")).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), createdAt, createdAt))
				mock.ExpectCommit().WillReturnError(&pq.Error{Code: "40001"})
			},
		},
		{
			name: "commit (pgx)",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments")).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), createdAt, createdAt))
				mock.ExpectCommit().WillReturnError(&pgconn.PgError{Code: "40001"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, m, mock := newPostgresUseCase(t)
			tt.expect(mock)

			_, err := uc.Execute(context.Background(), postgresRequest())
			assert.ErrorIs(t, err, scheduling_rules.ErrSlotTaken)
			assert.ErrorIs(t, err, domain.ErrConflict)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.AppointmentConflicts))
			assert.Equal(t, 0.0, testutil.ToFloat64(m.AppointmentsCreated))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUseCase_CommitFailureIsInternal(t *testing.T) {
	uc, m, mock := newPostgresUseCase(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))
	mock.ExpectCommit().WillReturnError(&pq.Error{Code: "08006"})

	_, err := uc.Execute(context.Background(), postgresRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, txmanager.ErrCommitTx)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.AppointmentConflicts))
}
