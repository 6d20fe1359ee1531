package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	petRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/pet"
)

// PetRepository in-memory реализация репозитория питомцев
type PetRepository struct {
	s *Store
}

func (r *PetRepository) Create(_ context.Context, p *domain.Pet) (*domain.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.clients[p.OwnerID]; !ok {
		return nil, petRepo.ErrOwnerNotFound
	}
	if r.conflicts(p) {
		return nil, petRepo.ErrDuplicate
	}

	r.s.petSeq++
	p.ID = r.s.petSeq
	p.CreatedAt = r.s.now()
	r.s.pets[p.ID] = *p

	out := *p
	return &out, nil
}

func (r *PetRepository) GetByID(_ context.Context, id int64) (*domain.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return nil, petRepo.ErrPetNotFound
	}
	return &p, nil
}

func (r *PetRepository) GetByNameAndOwner(_ context.Context, name string, ownerID int64) (*domain.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.pets {
		if p.OwnerID == ownerID && p.Name == name {
			out := p
			return &out, nil
		}
	}
	return nil, petRepo.ErrPetNotFound
}

func (r *PetRepository) Update(_ context.Context, p *domain.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.pets[p.ID]
	if !ok {
		return petRepo.ErrPetNotFound
	}
	if _, ok := r.s.clients[p.OwnerID]; !ok {
		return petRepo.ErrOwnerNotFound
	}
	if r.conflicts(p) {
		return petRepo.ErrDuplicate
	}

	p.CreatedAt = existing.CreatedAt
	r.s.pets[p.ID] = *p
	return nil
}

func (r *PetRepository) List(_ context.Context, filter domain.PetFilter) ([]*domain.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Pet, 0)
	for _, p := range r.s.pets {
		if filter.OwnerID != nil && p.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.Active != nil && p.Active != *filter.Active {
			continue
		}
		p := p
		out = append(out, &p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// conflicts проверяет уникальность имени в пределах владельца
func (r *PetRepository) conflicts(p *domain.Pet) bool {
	for id, other := range r.s.pets {
		if id != p.ID && other.OwnerID == p.OwnerID && other.Name == p.Name {
			return true
		}
	}
	return false
}
