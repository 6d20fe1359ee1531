package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/infra/storage/pgerrors"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/psqlbuilder"
)

const table = "employees"

var columns = []string{
	"id",
	"name",
	"tax_id",
	"phone",
	"email",
	"address",
	"role",
	"salary",
	"admission_date",
	"termination_date",
	"active",
	"created_at",
}

// Repository репозиторий для работы с сотрудниками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового сотрудника
func (r *Repository) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"name",
			"tax_id",
			"phone",
			"email",
			"address",
			"role",
			"salary",
			"admission_date",
			"termination_date",
			"active",
		).
		Values(
			e.Name,
			e.TaxID,
			e.Phone,
			e.Email,
			e.Address,
			e.Role,
			nullDecimal(e.Salary),
			e.AdmissionDate,
			e.TerminationDate,
			e.Active,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, pgerrors.Constraint(err))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return e, nil
}

// GetByID получает сотрудника по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByTaxID получает сотрудника по налоговому номеру
func (r *Repository) GetByTaxID(ctx context.Context, taxID string) (*domain.Employee, error) {
	return r.getOne(ctx, "GetByTaxID", squirrel.Eq{"tax_id": taxID})
}

// GetByEmail получает сотрудника по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.getOne(ctx, "GetByEmail", squirrel.Eq{"email": email})
}

// Update сохраняет все изменяемые поля сотрудника
func (r *Repository) Update(ctx context.Context, e *domain.Employee) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("name", e.Name).
		Set("tax_id", e.TaxID).
		Set("phone", e.Phone).
		Set("email", e.Email).
		Set("address", e.Address).
		Set("role", e.Role).
		Set("salary", nullDecimal(e.Salary)).
		Set("admission_date", e.AdmissionDate).
		Set("termination_date", e.TerminationDate).
		Set("active", e.Active).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicate, pgerrors.Constraint(err))
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}

// List возвращает сотрудников, упорядоченных по имени
// active == nil - все сотрудники
func (r *Repository) List(ctx context.Context, active *bool) ([]*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table).OrderBy("name ASC")
	if active != nil {
		builder = builder.Where(squirrel.Eq{"active": *active})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return employees, nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).From(table).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	e, err := scanEmployee(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan employee: %v", ErrScanRow, op, err)
	}

	return e, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEmployee(row scanner) (*domain.Employee, error) {
	var (
		e      domain.Employee
		salary decimal.NullDecimal
	)

	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.TaxID,
		&e.Phone,
		&e.Email,
		&e.Address,
		&e.Role,
		&salary,
		&e.AdmissionDate,
		&e.TerminationDate,
		&e.Active,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if salary.Valid {
		e.Salary = &salary.Decimal
	}

	return &e, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
