package models

import (
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Request модели

// CreateClientRequest запрос на регистрацию клиента
type CreateClientRequest struct {
	Name    string  `json:"name" validate:"required,max=100"`
	TaxID   string  `json:"taxId" validate:"required,max=20"`
	Phone   string  `json:"phone" validate:"required,max=20"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

// UpdateClientRequest частичное обновление клиента
// nil - поле не меняется; Clear* - очистить необязательное поле
type UpdateClientRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	TaxID        *string `json:"taxId,omitempty" validate:"omitempty,min=1,max=20"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,min=1,max=20"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	ClearEmail   bool    `json:"clearEmail,omitempty"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=500"`
	ClearAddress bool    `json:"clearAddress,omitempty"`
}

// Response модели

// ClientResponse ответ с данными клиента
type ClientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"taxId"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainClient конвертирует domain модель в DTO
func FromDomainClient(c *domain.Client) *ClientResponse {
	if c == nil {
		return nil
	}

	return &ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
	}
}

// FromDomainClientList конвертирует список domain моделей в DTO
func FromDomainClientList(clients []*domain.Client) []ClientResponse {
	resp := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		resp = append(resp, *FromDomainClient(c))
	}
	return resp
}
