package create_appointment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на создание записи
// EstimatedValue и EstimatedDurationMinutes по умолчанию берутся из услуги
type Request struct {
	ClientID                 int64            `json:"clientId" validate:"required,gt=0"`
	PetID                    int64            `json:"petId" validate:"required,gt=0"`
	ServiceID                int64            `json:"serviceId" validate:"required,gt=0"`
	EmployeeID               *int64           `json:"employeeId" validate:"omitempty,gt=0"`
	ScheduledAt              time.Time        `json:"scheduledAt" validate:"required"`
	Notes                    *string          `json:"notes" validate:"omitempty,max=1000"`
	EstimatedValue           *decimal.Decimal `json:"estimatedValue"`
	EstimatedDurationMinutes *int             `json:"estimatedDurationMinutes"`
}
