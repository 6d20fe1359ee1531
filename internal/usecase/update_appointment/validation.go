package update_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/pkg/validation"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if err := validation.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.EmployeeID != nil && req.ClearEmployee {
		return ErrConflictingEmployee
	}

	if req.ScheduledAt != nil && req.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduledAt cannot be empty", domain.ErrValidation)
	}

	if req.EstimatedValue != nil && req.EstimatedValue.IsNegative() {
		return ErrNegativeValue
	}

	if req.EstimatedDurationMinutes != nil && *req.EstimatedDurationMinutes < 0 {
		return ErrNegativeDuration
	}

	return nil
}
