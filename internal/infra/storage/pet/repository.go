package pet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/infra/storage/pgerrors"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/psqlbuilder"
)

const table = "pets"

var columns = []string{
	"id",
	"name",
	"species",
	"breed",
	"color",
	"sex",
	"birth_date",
	"weight",
	"notes",
	"active",
	"owner_id",
	"created_at",
}

// Repository репозиторий для работы с питомцами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория питомцев
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового питомца
func (r *Repository) Create(ctx context.Context, p *domain.Pet) (*domain.Pet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"name",
			"species",
			"breed",
			"color",
			"sex",
			"birth_date",
			"weight",
			"notes",
			"active",
			"owner_id",
		).
		Values(
			p.Name,
			p.Species,
			p.Breed,
			p.Color,
			p.Sex,
			p.BirthDate,
			p.Weight,
			p.Notes,
			p.Active,
			p.OwnerID,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, mapWriteError("Create", err)
	}

	return p, nil
}

// GetByID получает питомца по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByNameAndOwner получает питомца по имени в пределах одного владельца
func (r *Repository) GetByNameAndOwner(ctx context.Context, name string, ownerID int64) (*domain.Pet, error) {
	return r.getOne(ctx, "GetByNameAndOwner", squirrel.Eq{"name": name, "owner_id": ownerID})
}

// Update сохраняет все изменяемые поля питомца, включая смену владельца
func (r *Repository) Update(ctx context.Context, p *domain.Pet) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("name", p.Name).
		Set("species", p.Species).
		Set("breed", p.Breed).
		Set("color", p.Color).
		Set("sex", p.Sex).
		Set("birth_date", p.BirthDate).
		Set("weight", p.Weight).
		Set("notes", p.Notes).
		Set("active", p.Active).
		Set("owner_id", p.OwnerID).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError("Update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPetNotFound
	}

	return nil
}

// List возвращает питомцев по фильтру, упорядоченных по имени
func (r *Repository) List(ctx context.Context, filter domain.PetFilter) ([]*domain.Pet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table).OrderBy("name ASC")
	if filter.OwnerID != nil {
		builder = builder.Where(squirrel.Eq{"owner_id": *filter.OwnerID})
	}
	if filter.Active != nil {
		builder = builder.Where(squirrel.Eq{"active": *filter.Active})
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

	pets := make([]*domain.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		pets = append(pets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return pets, nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Pet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).From(table).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	p, err := scanPet(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan pet: %v", ErrScanRow, op, err)
	}

	return p, nil
}

func mapWriteError(op string, err error) error {
	switch {
	case pgerrors.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s", ErrDuplicate, pgerrors.Constraint(err))
	case pgerrors.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s", ErrOwnerNotFound, pgerrors.Constraint(err))
	default:
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPet(row scanner) (*domain.Pet, error) {
	var p domain.Pet
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Color,
		&p.Sex,
		&p.BirthDate,
		&p.Weight,
		&p.Notes,
		&p.Active,
		&p.OwnerID,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
