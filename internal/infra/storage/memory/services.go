package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/catalog"
)

// ServiceRepository in-memory реализация каталога услуг
type ServiceRepository struct {
	s *Store
}

func (r *ServiceRepository) Create(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.conflicts(svc) {
		return nil, catalogRepo.ErrDuplicate
	}

	r.s.serviceSeq++
	svc.ID = r.s.serviceSeq
	svc.CreatedAt = r.s.now()
	r.s.services[svc.ID] = *svc

	out := *svc
	return &out, nil
}

func (r *ServiceRepository) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	svc, ok := r.s.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &svc, nil
}

func (r *ServiceRepository) GetByName(_ context.Context, name string) (*domain.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, svc := range r.s.services {
		if svc.Name == name {
			out := svc
			return &out, nil
		}
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (r *ServiceRepository) Update(_ context.Context, svc *domain.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.services[svc.ID]
	if !ok {
		return catalogRepo.ErrServiceNotFound
	}
	if r.conflicts(svc) {
		return catalogRepo.ErrDuplicate
	}

	svc.CreatedAt = existing.CreatedAt
	r.s.services[svc.ID] = *svc
	return nil
}

func (r *ServiceRepository) List(_ context.Context, filter domain.ServiceFilter) ([]*domain.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Service, 0, len(r.s.services))
	for _, svc := range r.s.services {
		if filter.Active != nil && svc.Active != *filter.Active {
			continue
		}
		if filter.Category != nil && svc.Category != *filter.Category {
			continue
		}
		svc := svc
		out = append(out, &svc)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *ServiceRepository) Categories(_ context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, svc := range r.s.services {
		if _, ok := seen[svc.Category]; ok {
			continue
		}
		seen[svc.Category] = struct{}{}
		out = append(out, svc.Category)
	}

	sort.Strings(out)
	return out, nil
}

func (r *ServiceRepository) conflicts(svc *domain.Service) bool {
	for id, other := range r.s.services {
		if id != svc.ID && other.Name == svc.Name {
			return true
		}
	}
	return false
}
