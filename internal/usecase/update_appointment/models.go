package update_appointment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель частичного изменения записи
// nil означает "оставить без изменений"; ClearEmployee снимает сотрудника с записи
type Request struct {
	ClientID                 *int64           `json:"clientId" validate:"omitempty,gt=0"`
	PetID                    *int64           `json:"petId" validate:"omitempty,gt=0"`
	ServiceID                *int64           `json:"serviceId" validate:"omitempty,gt=0"`
	EmployeeID               *int64           `json:"employeeId" validate:"omitempty,gt=0"`
	ClearEmployee            bool             `json:"clearEmployee"`
	ScheduledAt              *time.Time       `json:"scheduledAt"`
	Notes                    *string          `json:"notes" validate:"omitempty,max=1000"`
	EstimatedValue           *decimal.Decimal `json:"estimatedValue"`
	EstimatedDurationMinutes *int             `json:"estimatedDurationMinutes"`
	Status                   *string          `json:"status"`
}

// touchesSchedule сообщает, затронуты ли поля, требующие повторной проверки правил записи
func (r *Request) touchesSchedule() bool {
	return r.ClientID != nil || r.PetID != nil || r.ServiceID != nil ||
		r.EmployeeID != nil || r.ClearEmployee || r.ScheduledAt != nil
}
