package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-PetCareService/internal/infra/storage/pgerrors"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
	"github.com/m04kA/SMC-PetCareService/internal/usecase/scheduling_rules"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	rules           RulesChecker
	txManager       TransactionManager
	metrics         MetricsCollector
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	rules RulesChecker,
	txManager TransactionManager,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		rules:           rules,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка конфликта и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.AppointmentResponse, error) {
	uc.logger.Info("CreateAppointment: client=%d, pet=%d, service=%d, employee=%v, scheduledAt=%s",
		req.ClientID, req.PetID, req.ServiceID, formatEmployee(req.EmployeeID), req.ScheduledAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Appointment

	// 3. Проверки и сохранение в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Клиент, питомец, услуга, сотрудник, время, конфликт
		service, err := uc.rules.Check(txCtx, scheduling_rules.Candidate{
			ClientID:    req.ClientID,
			PetID:       req.PetID,
			ServiceID:   req.ServiceID,
			EmployeeID:  req.EmployeeID,
			ScheduledAt: req.ScheduledAt,
		}, now)
		if err != nil {
			return err
		}

		// 3.2. Значения по умолчанию из услуги
		appointment := &domain.Appointment{
			ClientID:                 req.ClientID,
			PetID:                    req.PetID,
			ServiceID:                req.ServiceID,
			EmployeeID:               req.EmployeeID,
			ScheduledAt:              req.ScheduledAt,
			Status:                   domain.StatusScheduled,
			Notes:                    ptr.TrimmedOrNil(req.Notes),
			EstimatedValue:           service.Price,
			EstimatedDurationMinutes: service.EstimatedDurationMinutes,
		}
		if req.EstimatedValue != nil {
			appointment.EstimatedValue = *req.EstimatedValue
		}
		if req.EstimatedDurationMinutes != nil {
			appointment.EstimatedDurationMinutes = req.EstimatedDurationMinutes
		}

		// 3.3. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrSlotNotAvailable):
				uc.logger.Warn("CreateAppointment: slot taken on insert: %v", err)
				return scheduling_rules.ErrSlotTaken
			case errors.Is(err, appointmentRepo.ErrReferenceNotFound):
				uc.logger.Warn("CreateAppointment: reference vanished on insert: %v", err)
				return ErrReferenceNotFound
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if pgerrors.IsSerializationFailure(err) {
			uc.logger.Warn("CreateAppointment: concurrent booking lost on commit: %v", err)
			err = scheduling_rules.ErrSlotTaken
		}
		if errors.Is(err, domain.ErrConflict) && uc.metrics != nil {
			uc.metrics.IncAppointmentConflicts()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncAppointmentsCreated()
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)
	return models.FromDomainAppointment(result), nil
}

func formatEmployee(id *int64) string {
	if id == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *id)
}
