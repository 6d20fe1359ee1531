package scheduling_rules

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = fmt.Errorf("client %w", domain.ErrNotFound)

	// ErrClientInactive возвращается, когда клиент деактивирован
	ErrClientInactive = fmt.Errorf("%w: client is inactive", domain.ErrValidation)

	// ErrPetNotFound возвращается, когда питомец не найден
	ErrPetNotFound = fmt.Errorf("pet %w", domain.ErrNotFound)

	// ErrPetOwnerMismatch возвращается, когда питомец принадлежит другому клиенту
	ErrPetOwnerMismatch = fmt.Errorf("%w: pet does not belong to this client", domain.ErrValidation)

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("service %w", domain.ErrNotFound)

	// ErrServiceInactive возвращается, когда услуга снята с продажи
	ErrServiceInactive = fmt.Errorf("%w: service is inactive", domain.ErrValidation)

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = fmt.Errorf("employee %w", domain.ErrNotFound)

	// ErrEmployeeInactive возвращается, когда сотрудник деактивирован
	ErrEmployeeInactive = fmt.Errorf("%w: employee is inactive", domain.ErrValidation)

	// ErrNotInFuture возвращается, когда время записи не позже текущего момента
	ErrNotInFuture = fmt.Errorf("%w: scheduledAt must be in the future", domain.ErrValidation)

	// ErrSlotTaken возвращается, когда у сотрудника уже есть активная запись на это время
	ErrSlotTaken = fmt.Errorf("%w: the employee already has an appointment at this time", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках проверки
	ErrInternal = errors.New("scheduling_rules: internal error")
)
