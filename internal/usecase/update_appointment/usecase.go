package update_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-PetCareService/internal/infra/storage/pgerrors"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
	"github.com/m04kA/SMC-PetCareService/internal/usecase/scheduling_rules"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

// UseCase use case для изменения записи
type UseCase struct {
	appointmentRepo   AppointmentRepository
	rules             RulesChecker
	txManager         TransactionManager
	metrics           MetricsCollector
	strictTransitions bool
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	rules RulesChecker,
	txManager TransactionManager,
	metrics MetricsCollector,
	strictTransitions bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:   appointmentRepo,
		rules:             rules,
		txManager:         txManager,
		metrics:           metrics,
		strictTransitions: strictTransitions,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Execute выполняет use case изменения записи
// Завершенные и отмененные записи не изменяются; при смене клиента, питомца, услуги,
// сотрудника или времени правила записи проверяются заново на итоговых значениях
func (uc *UseCase) Execute(ctx context.Context, id int64, req *Request) (*models.AppointmentResponse, error) {
	uc.logger.Info("UpdateAppointment: appointment id=%d", id)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	var newStatus *domain.AppointmentStatus
	if req.Status != nil {
		parsed, err := domain.ParseAppointmentStatus(*req.Status)
		if err != nil {
			uc.logger.Warn("UpdateAppointment: %v", err)
			return nil, err
		}
		newStatus = &parsed
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var (
		result    *domain.Appointment
		oldStatus domain.AppointmentStatus
	)

	// 3. Проверки и сохранение в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Запись существует и не закрыта
		appointment, err := uc.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointment: appointment id=%d not found", id)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}
		if appointment.IsTerminal() {
			uc.logger.Warn("UpdateAppointment: appointment id=%d is %s", id, appointment.Status)
			return domain.ErrAppointmentClosed
		}
		oldStatus = appointment.Status

		// 3.2. Применяем изменения
		applyPatch(appointment, req)

		// 3.3. Смена статуса
		if newStatus != nil && *newStatus != appointment.Status {
			if err := appointment.Status.ValidateTransition(*newStatus, uc.strictTransitions); err != nil {
				uc.logger.Warn("UpdateAppointment: appointment id=%d: %v", id, err)
				return err
			}
			appointment.Status = *newStatus
		}

		// 3.4. Повторная проверка правил на итоговых значениях
		if req.touchesSchedule() {
			_, err := uc.rules.Check(txCtx, scheduling_rules.Candidate{
				AppointmentID: appointment.ID,
				ClientID:      appointment.ClientID,
				PetID:         appointment.PetID,
				ServiceID:     appointment.ServiceID,
				EmployeeID:    appointment.EmployeeID,
				ScheduledAt:   appointment.ScheduledAt,
			}, now)
			if err != nil {
				return err
			}
		}

		// 3.5. Сохраняем запись
		if err := uc.appointmentRepo.Update(txCtx, appointment); err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
				return ErrAppointmentNotFound
			case errors.Is(err, appointmentRepo.ErrSlotNotAvailable):
				uc.logger.Warn("UpdateAppointment: slot taken on update: %v", err)
				return scheduling_rules.ErrSlotTaken
			case errors.Is(err, appointmentRepo.ErrReferenceNotFound):
				uc.logger.Warn("UpdateAppointment: reference vanished on update: %v", err)
				return ErrReferenceNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = appointment
		return nil
	})

	if err != nil {
		if pgerrors.IsSerializationFailure(err) {
			uc.logger.Warn("UpdateAppointment: concurrent change of appointment id=%d lost on commit: %v", id, err)
			err = scheduling_rules.ErrSlotTaken
		}
		if errors.Is(err, domain.ErrConflict) && uc.metrics != nil {
			uc.metrics.IncAppointmentConflicts()
		}
		return nil, err
	}

	if uc.metrics != nil && result.Status != oldStatus {
		uc.metrics.IncStatusTransition(string(oldStatus), string(result.Status))
	}

	uc.logger.Info("UpdateAppointment: successfully updated appointment id=%d", id)
	return models.FromDomainAppointment(result), nil
}

// applyPatch переносит заданные поля запроса в запись
func applyPatch(a *domain.Appointment, req *Request) {
	if req.ClientID != nil {
		a.ClientID = *req.ClientID
	}
	if req.PetID != nil {
		a.PetID = *req.PetID
	}
	if req.ServiceID != nil {
		a.ServiceID = *req.ServiceID
	}
	if req.EmployeeID != nil {
		a.EmployeeID = req.EmployeeID
	}
	if req.ClearEmployee {
		a.EmployeeID = nil
	}
	if req.ScheduledAt != nil {
		a.ScheduledAt = *req.ScheduledAt
	}
	if req.Notes != nil {
		a.Notes = ptr.TrimmedOrNil(req.Notes)
	}
	if req.EstimatedValue != nil {
		a.EstimatedValue = *req.EstimatedValue
	}
	if req.EstimatedDurationMinutes != nil {
		a.EstimatedDurationMinutes = req.EstimatedDurationMinutes
	}
}
