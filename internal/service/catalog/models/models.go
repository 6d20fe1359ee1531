package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name                     string           `json:"name" validate:"required,max=100"`
	Description              *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Category                 string           `json:"category" validate:"required,max=50"`
	Price                    *decimal.Decimal `json:"price"`
	EstimatedDurationMinutes *int             `json:"estimatedDurationMinutes,omitempty"`
	Notes                    *string          `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// UpdateServiceRequest частичное обновление услуги
// nil - поле не меняется
type UpdateServiceRequest struct {
	Name                     *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description              *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Category                 *string          `json:"category,omitempty" validate:"omitempty,min=1,max=50"`
	Price                    *decimal.Decimal `json:"price,omitempty"`
	EstimatedDurationMinutes *int             `json:"estimatedDurationMinutes,omitempty"`
	Notes                    *string          `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID                       int64           `json:"id"`
	Name                     string          `json:"name"`
	Description              *string         `json:"description,omitempty"`
	Category                 string          `json:"category"`
	Price                    decimal.Decimal `json:"price"`
	EstimatedDurationMinutes *int            `json:"estimatedDurationMinutes,omitempty"`
	Notes                    *string         `json:"notes,omitempty"`
	Active                   bool            `json:"active"`
	CreatedAt                time.Time       `json:"createdAt"`
}

// StatisticsResponse статистика каталога
type StatisticsResponse struct {
	Total      int            `json:"total"`
	Active     int            `json:"active"`
	Inactive   int            `json:"inactive"`
	ByCategory map[string]int `json:"byCategory"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:                       s.ID,
		Name:                     s.Name,
		Description:              s.Description,
		Category:                 s.Category,
		Price:                    s.Price,
		EstimatedDurationMinutes: s.EstimatedDurationMinutes,
		Notes:                    s.Notes,
		Active:                   s.Active,
		CreatedAt:                s.CreatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) []ServiceResponse {
	resp := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		resp = append(resp, *FromDomainService(s))
	}
	return resp
}

// FromDomainStatistics конвертирует статистику в DTO
func FromDomainStatistics(st *domain.ServiceStatistics) *StatisticsResponse {
	return &StatisticsResponse{
		Total:      st.Total,
		Active:     st.Active,
		Inactive:   st.Inactive,
		ByCategory: st.ByCategory,
	}
}
