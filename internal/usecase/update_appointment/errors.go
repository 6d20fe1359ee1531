package update_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("appointment %w", domain.ErrNotFound)

	// ErrConflictingEmployee возвращается, когда одновременно указаны employeeId и clearEmployee
	ErrConflictingEmployee = fmt.Errorf("%w: employeeId and clearEmployee are mutually exclusive", domain.ErrValidation)

	// ErrNegativeValue возвращается при отрицательной стоимости
	ErrNegativeValue = fmt.Errorf("%w: estimatedValue cannot be negative", domain.ErrValidation)

	// ErrNegativeDuration возвращается при отрицательной длительности
	ErrNegativeDuration = fmt.Errorf("%w: estimatedDurationMinutes cannot be negative", domain.ErrValidation)

	// ErrReferenceNotFound возвращается, когда связанная запись исчезла до сохранения
	ErrReferenceNotFound = fmt.Errorf("referenced record %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)
