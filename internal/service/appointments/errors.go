package appointments

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("appointment %w", domain.ErrNotFound)

	// ErrInvalidTimeRange возвращается, когда начало периода позже конца
	ErrInvalidTimeRange = fmt.Errorf("%w: data_inicio must not be after data_fim", domain.ErrValidation)

	// ErrSlotTaken возвращается, когда возврат записи в активный статус занимает уже занятый слот сотрудника
	ErrSlotTaken = fmt.Errorf("%w: the employee already has an active appointment at this time", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments.service: internal error")
)
