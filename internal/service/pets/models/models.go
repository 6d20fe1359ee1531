package models

import (
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Request модели

// CreatePetRequest запрос на регистрацию питомца
// BirthDate в формате YYYY-MM-DD
type CreatePetRequest struct {
	Name      string   `json:"name" validate:"required,max=50"`
	Species   string   `json:"species" validate:"required"`
	Breed     *string  `json:"breed,omitempty" validate:"omitempty,max=50"`
	Color     *string  `json:"color,omitempty" validate:"omitempty,max=30"`
	Sex       *string  `json:"sex,omitempty"`
	BirthDate *string  `json:"birthDate,omitempty"`
	Weight    *float64 `json:"weight,omitempty"`
	Notes     *string  `json:"notes,omitempty" validate:"omitempty,max=1000"`
	OwnerID   int64    `json:"ownerId" validate:"required,gt=0"`
}

// UpdatePetRequest частичное обновление питомца
// nil - поле не меняется
type UpdatePetRequest struct {
	Name      *string  `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Species   *string  `json:"species,omitempty"`
	Breed     *string  `json:"breed,omitempty" validate:"omitempty,max=50"`
	Color     *string  `json:"color,omitempty" validate:"omitempty,max=30"`
	Sex       *string  `json:"sex,omitempty"`
	BirthDate *string  `json:"birthDate,omitempty"`
	Weight    *float64 `json:"weight,omitempty"`
	Notes     *string  `json:"notes,omitempty" validate:"omitempty,max=1000"`
	OwnerID   *int64   `json:"ownerId,omitempty" validate:"omitempty,gt=0"`
}

// Response модели

// PetResponse ответ с данными питомца
type PetResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Breed     *string   `json:"breed,omitempty"`
	Color     *string   `json:"color,omitempty"`
	Sex       *string   `json:"sex,omitempty"`
	BirthDate *string   `json:"birthDate,omitempty"`
	Age       *int      `json:"age,omitempty"`
	Weight    *float64  `json:"weight,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	Active    bool      `json:"active"`
	OwnerID   int64     `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainPet конвертирует domain модель в DTO; now используется для расчета возраста
func FromDomainPet(p *domain.Pet, now time.Time) *PetResponse {
	if p == nil {
		return nil
	}

	resp := &PetResponse{
		ID:        p.ID,
		Name:      p.Name,
		Species:   string(p.Species),
		Breed:     p.Breed,
		Color:     p.Color,
		Age:       p.AgeYears(now),
		Weight:    p.Weight,
		Notes:     p.Notes,
		Active:    p.Active,
		OwnerID:   p.OwnerID,
		CreatedAt: p.CreatedAt,
	}

	if p.Sex != nil {
		sex := string(*p.Sex)
		resp.Sex = &sex
	}
	if p.BirthDate != nil {
		date := p.BirthDate.Format(domain.DateFormat)
		resp.BirthDate = &date
	}

	return resp
}

// FromDomainPetList конвертирует список domain моделей в DTO
func FromDomainPetList(pets []*domain.Pet, now time.Time) []PetResponse {
	resp := make([]PetResponse, 0, len(pets))
	for _, p := range pets {
		resp = append(resp, *FromDomainPet(p, now))
	}
	return resp
}
