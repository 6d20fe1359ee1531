package update_appointment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	updateAppointment "github.com/m04kA/SMC-PetCareService/internal/usecase/update_appointment"
)

// UpdateAppointmentRequest HTTP request model; отсутствующие поля не меняются
type UpdateAppointmentRequest struct {
	ClientID                 *int64           `json:"clientId,omitempty"`
	PetID                    *int64           `json:"petId,omitempty"`
	ServiceID                *int64           `json:"serviceId,omitempty"`
	EmployeeID               *int64           `json:"employeeId,omitempty"`
	ClearEmployee            bool             `json:"clearEmployee,omitempty"`
	ScheduledAt              *string          `json:"scheduledAt,omitempty"`
	Notes                    *string          `json:"notes,omitempty"`
	EstimatedValue           *decimal.Decimal `json:"estimatedValue,omitempty"`
	EstimatedDurationMinutes *int             `json:"estimatedDurationMinutes,omitempty"`
	Status                   *string          `json:"status,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(location *time.Location) (*updateAppointment.Request, error) {
	req := &updateAppointment.Request{
		ClientID:                 r.ClientID,
		PetID:                    r.PetID,
		ServiceID:                r.ServiceID,
		EmployeeID:               r.EmployeeID,
		ClearEmployee:            r.ClearEmployee,
		Notes:                    r.Notes,
		EstimatedValue:           r.EstimatedValue,
		EstimatedDurationMinutes: r.EstimatedDurationMinutes,
		Status:                   r.Status,
	}

	if r.ScheduledAt != nil {
		scheduledAt, err := domain.ParseDateTime(*r.ScheduledAt, location)
		if err != nil {
			return nil, err
		}
		req.ScheduledAt = &scheduledAt
	}

	return req, nil
}
