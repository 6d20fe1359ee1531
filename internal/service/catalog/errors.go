package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("service %w", domain.ErrNotFound)

	// ErrNameTaken возвращается, когда название услуги уже используется
	ErrNameTaken = fmt.Errorf("%w: a service with this name already exists", domain.ErrValidation)

	// ErrPriceRequired возвращается, когда цена не указана
	ErrPriceRequired = fmt.Errorf("%w: price is required", domain.ErrValidation)

	// ErrNegativePrice возвращается при отрицательной цене
	ErrNegativePrice = fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)

	// ErrNegativeDuration возвращается при отрицательной длительности
	ErrNegativeDuration = fmt.Errorf("%w: estimatedDurationMinutes cannot be negative", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog.service: internal error")
)
