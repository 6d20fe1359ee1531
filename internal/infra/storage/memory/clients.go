package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	clientRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/client"
)

// ClientRepository in-memory реализация репозитория клиентов
type ClientRepository struct {
	s *Store
}

func (r *ClientRepository) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.conflicts(c) {
		return nil, clientRepo.ErrDuplicate
	}

	r.s.clientSeq++
	c.ID = r.s.clientSeq
	c.CreatedAt = r.s.now()
	r.s.clients[c.ID] = *c

	out := *c
	return &out, nil
}

func (r *ClientRepository) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.clients[id]
	if !ok {
		return nil, clientRepo.ErrClientNotFound
	}
	return &c, nil
}

func (r *ClientRepository) GetByTaxID(_ context.Context, taxID string) (*domain.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.clients {
		if c.TaxID == taxID {
			out := c
			return &out, nil
		}
	}
	return nil, clientRepo.ErrClientNotFound
}

func (r *ClientRepository) GetByEmail(_ context.Context, email string) (*domain.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.clients {
		if c.Email != nil && *c.Email == email {
			out := c
			return &out, nil
		}
	}
	return nil, clientRepo.ErrClientNotFound
}

func (r *ClientRepository) Update(_ context.Context, c *domain.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.clients[c.ID]
	if !ok {
		return clientRepo.ErrClientNotFound
	}
	if r.conflicts(c) {
		return clientRepo.ErrDuplicate
	}

	c.CreatedAt = existing.CreatedAt
	r.s.clients[c.ID] = *c
	return nil
}

func (r *ClientRepository) List(_ context.Context, active *bool) ([]*domain.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Client, 0, len(r.s.clients))
	for _, c := range r.s.clients {
		if active != nil && c.Active != *active {
			continue
		}
		c := c
		out = append(out, &c)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// conflicts проверяет уникальность tax_id и email среди остальных клиентов
func (r *ClientRepository) conflicts(c *domain.Client) bool {
	for id, other := range r.s.clients {
		if id == c.ID {
			continue
		}
		if other.TaxID == c.TaxID {
			return true
		}
		if c.Email != nil && other.Email != nil && *c.Email == *other.Email {
			return true
		}
	}
	return false
}
