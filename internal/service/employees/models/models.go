package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Request модели

// CreateEmployeeRequest запрос на регистрацию сотрудника
// AdmissionDate в формате YYYY-MM-DD
type CreateEmployeeRequest struct {
	Name          string           `json:"name" validate:"required,max=100"`
	TaxID         string           `json:"taxId" validate:"required,max=20"`
	Phone         string           `json:"phone" validate:"required,max=20"`
	Email         *string          `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Address       *string          `json:"address,omitempty" validate:"omitempty,max=500"`
	Role          string           `json:"role" validate:"required,max=50"`
	Salary        *decimal.Decimal `json:"salary,omitempty"`
	AdmissionDate string           `json:"admissionDate" validate:"required"`
}

// UpdateEmployeeRequest частичное обновление сотрудника
// nil - поле не меняется; Clear* - очистить необязательное поле
type UpdateEmployeeRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	TaxID         *string          `json:"taxId,omitempty" validate:"omitempty,min=1,max=20"`
	Phone         *string          `json:"phone,omitempty" validate:"omitempty,min=1,max=20"`
	Email         *string          `json:"email,omitempty" validate:"omitempty,email,max=100"`
	ClearEmail    bool             `json:"clearEmail,omitempty"`
	Address       *string          `json:"address,omitempty" validate:"omitempty,max=500"`
	Role          *string          `json:"role,omitempty" validate:"omitempty,min=1,max=50"`
	Salary        *decimal.Decimal `json:"salary,omitempty"`
	ClearSalary   bool             `json:"clearSalary,omitempty"`
	AdmissionDate *string          `json:"admissionDate,omitempty"`
}

// Response модели

// EmployeeResponse ответ с данными сотрудника
type EmployeeResponse struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	TaxID           string           `json:"taxId"`
	Phone           string           `json:"phone"`
	Email           *string          `json:"email,omitempty"`
	Address         *string          `json:"address,omitempty"`
	Role            string           `json:"role"`
	Salary          *decimal.Decimal `json:"salary,omitempty"`
	AdmissionDate   string           `json:"admissionDate"`
	TerminationDate *string          `json:"terminationDate,omitempty"`
	Active          bool             `json:"active"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// FromDomainEmployee конвертирует domain модель в DTO
func FromDomainEmployee(e *domain.Employee) *EmployeeResponse {
	if e == nil {
		return nil
	}

	resp := &EmployeeResponse{
		ID:            e.ID,
		Name:          e.Name,
		TaxID:         e.TaxID,
		Phone:         e.Phone,
		Email:         e.Email,
		Address:       e.Address,
		Role:          e.Role,
		Salary:        e.Salary,
		AdmissionDate: e.AdmissionDate.Format(domain.DateFormat),
		Active:        e.Active,
		CreatedAt:     e.CreatedAt,
	}

	if e.TerminationDate != nil {
		date := e.TerminationDate.Format(domain.DateFormat)
		resp.TerminationDate = &date
	}

	return resp
}

// FromDomainEmployeeList конвертирует список domain моделей в DTO
func FromDomainEmployeeList(employees []*domain.Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, *FromDomainEmployee(e))
	}
	return resp
}
