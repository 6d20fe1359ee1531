package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	employeeRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/employee"
)

// EmployeeRepository in-memory реализация репозитория сотрудников
type EmployeeRepository struct {
	s *Store
}

func (r *EmployeeRepository) Create(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.conflicts(e) {
		return nil, employeeRepo.ErrDuplicate
	}

	r.s.employeeSeq++
	e.ID = r.s.employeeSeq
	e.CreatedAt = r.s.now()
	r.s.employees[e.ID] = *e

	out := *e
	return &out, nil
}

func (r *EmployeeRepository) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.employees[id]
	if !ok {
		return nil, employeeRepo.ErrEmployeeNotFound
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByTaxID(_ context.Context, taxID string) (*domain.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, e := range r.s.employees {
		if e.TaxID == taxID {
			out := e
			return &out, nil
		}
	}
	return nil, employeeRepo.ErrEmployeeNotFound
}

func (r *EmployeeRepository) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, e := range r.s.employees {
		if e.Email != nil && *e.Email == email {
			out := e
			return &out, nil
		}
	}
	return nil, employeeRepo.ErrEmployeeNotFound
}

func (r *EmployeeRepository) Update(_ context.Context, e *domain.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.employees[e.ID]
	if !ok {
		return employeeRepo.ErrEmployeeNotFound
	}
	if r.conflicts(e) {
		return employeeRepo.ErrDuplicate
	}

	e.CreatedAt = existing.CreatedAt
	r.s.employees[e.ID] = *e
	return nil
}

func (r *EmployeeRepository) List(_ context.Context, active *bool) ([]*domain.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Employee, 0, len(r.s.employees))
	for _, e := range r.s.employees {
		if active != nil && e.Active != *active {
			continue
		}
		e := e
		out = append(out, &e)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *EmployeeRepository) conflicts(e *domain.Employee) bool {
	for id, other := range r.s.employees {
		if id == e.ID {
			continue
		}
		if other.TaxID == e.TaxID {
			return true
		}
		if e.Email != nil && other.Email != nil && *e.Email == *other.Email {
			return true
		}
	}
	return false
}
