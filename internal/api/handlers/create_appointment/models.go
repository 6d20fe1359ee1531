package create_appointment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	createAppointment "github.com/m04kA/SMC-PetCareService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientID                 int64            `json:"clientId"`
	PetID                    int64            `json:"petId"`
	ServiceID                int64            `json:"serviceId"`
	EmployeeID               *int64           `json:"employeeId,omitempty"`
	ScheduledAt              string           `json:"scheduledAt"` // "2026-03-11T10:00:00-03:00"
	Notes                    *string          `json:"notes,omitempty"`
	EstimatedValue           *decimal.Decimal `json:"estimatedValue,omitempty"`
	EstimatedDurationMinutes *int             `json:"estimatedDurationMinutes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Время без смещения интерпретируется в location
func (r *CreateAppointmentRequest) ToUseCaseRequest(location *time.Location) (*createAppointment.Request, error) {
	var scheduledAt time.Time
	if r.ScheduledAt != "" {
		parsed, err := domain.ParseDateTime(r.ScheduledAt, location)
		if err != nil {
			return nil, err
		}
		scheduledAt = parsed
	}

	return &createAppointment.Request{
		ClientID:                 r.ClientID,
		PetID:                    r.PetID,
		ServiceID:                r.ServiceID,
		EmployeeID:               r.EmployeeID,
		ScheduledAt:              scheduledAt,
		Notes:                    r.Notes,
		EstimatedValue:           r.EstimatedValue,
		EstimatedDurationMinutes: r.EstimatedDurationMinutes,
	}, nil
}
