package create_appointment

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

	if req.EstimatedValue != nil && req.EstimatedValue.IsNegative() {
		return ErrNegativeValue
	}

	if req.EstimatedDurationMinutes != nil && *req.EstimatedDurationMinutes < 0 {
		return ErrNegativeDuration
	}

	return nil
}
