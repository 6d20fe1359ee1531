package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-PetCareService/internal/infra/storage/pgerrors"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
)

// Service сервис для чтения записей и управления их статусом
// Создание и изменение записей выполняют use case'ы create_appointment и update_appointment
type Service struct {
	appointmentRepo   AppointmentRepository
	txManager         TransactionManager
	metrics           MetricsCollector
	location          *time.Location
	strictTransitions bool
	timeProvider      TimeProvider
	logger            Logger
}

// NewService создает новый экземпляр сервиса записей
// location задает календарь для "сегодня" и "эта неделя"; strictTransitions включает машину статусов
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	metrics MetricsCollector,
	location *time.Location,
	strictTransitions bool,
	logger Logger,
) *Service {
	if location == nil {
		location = time.Local
	}

	return &Service{
		appointmentRepo:   appointmentRepo,
		txManager:         txManager,
		metrics:           metrics,
		location:          location,
		strictTransitions: strictTransitions,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetAppointment: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetAppointment: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// List получает записи с фильтрацией по периоду, статусу и сотруднику
// Сортировка по scheduledAt по возрастанию
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	filter, err := req.ToDomainFilter(s.location)
	if err != nil {
		s.logger.Warn("ListAppointments: invalid filter: %v", err)
		return nil, err
	}

	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		s.logger.Warn("ListAppointments: start %s is after end %s", filter.From, filter.To)
		return nil, ErrInvalidTimeRange
	}

	return s.list(ctx, "ListAppointments", filter)
}

// ListByClient получает записи клиента, новые первыми
func (s *Service) ListByClient(ctx context.Context, clientID int64) (*models.AppointmentListResponse, error) {
	return s.list(ctx, "ListAppointmentsByClient", domain.AppointmentFilter{ClientID: &clientID, OrderDesc: true})
}

// ListByEmployee получает записи сотрудника
func (s *Service) ListByEmployee(ctx context.Context, employeeID int64) (*models.AppointmentListResponse, error) {
	return s.list(ctx, "ListAppointmentsByEmployee", domain.AppointmentFilter{EmployeeID: &employeeID})
}

// ListByService получает записи на услугу
func (s *Service) ListByService(ctx context.Context, serviceID int64) (*models.AppointmentListResponse, error) {
	return s.list(ctx, "ListAppointmentsByService", domain.AppointmentFilter{ServiceID: &serviceID})
}

// ListByStatus получает записи в указанном статусе
func (s *Service) ListByStatus(ctx context.Context, status string) (*models.AppointmentListResponse, error) {
	parsed, err := domain.ParseAppointmentStatus(status)
	if err != nil {
		s.logger.Warn("ListAppointmentsByStatus: %v", err)
		return nil, err
	}
	return s.list(ctx, "ListAppointmentsByStatus", domain.AppointmentFilter{Statuses: []domain.AppointmentStatus{parsed}})
}

// ListByDateRange получает записи в периоде [from, to] включительно
func (s *Service) ListByDateRange(ctx context.Context, from, to time.Time) (*models.AppointmentListResponse, error) {
	if from.After(to) {
		s.logger.Warn("ListAppointmentsByDateRange: start %s is after end %s", from, to)
		return nil, ErrInvalidTimeRange
	}
	return s.list(ctx, "ListAppointmentsByDateRange", domain.AppointmentFilter{From: &from, To: &to})
}

// Today получает записи на текущий календарный день
func (s *Service) Today(ctx context.Context) (*models.AppointmentListResponse, error) {
	from, to := domain.DayBounds(s.now())
	return s.list(ctx, "ListAppointmentsToday", domain.AppointmentFilter{From: &from, To: &to})
}

// ThisWeek получает записи на текущую неделю (понедельник - воскресенье)
func (s *Service) ThisWeek(ctx context.Context) (*models.AppointmentListResponse, error) {
	from, to := domain.WeekBounds(s.now())
	return s.list(ctx, "ListAppointmentsThisWeek", domain.AppointmentFilter{From: &from, To: &to})
}

// Statistics возвращает количество записей: всего, сегодня, на этой неделе и по статусам
func (s *Service) Statistics(ctx context.Context) (*models.StatisticsResponse, error) {
	now := s.now()
	dayFrom, dayTo := domain.DayBounds(now)
	weekFrom, weekTo := domain.WeekBounds(now)

	stats := &domain.AppointmentStatistics{}

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		byStatus, err := s.appointmentRepo.CountByStatus(txCtx)
		if err != nil {
			return err
		}
		stats.ByStatus = byStatus
		for _, n := range byStatus {
			stats.Total += n
		}

		if stats.Today, err = s.appointmentRepo.Count(txCtx, domain.AppointmentFilter{From: &dayFrom, To: &dayTo}); err != nil {
			return err
		}
		if stats.ThisWeek, err = s.appointmentRepo.Count(txCtx, domain.AppointmentFilter{From: &weekFrom, To: &weekTo}); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		s.logger.Error("AppointmentStatistics: repository error: %v", err)
		return nil, fmt.Errorf("%w: Statistics - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStatistics(stats), nil
}

// TransitionStatus переводит запись в новый статус
// В строгом режиме действует машина статусов, в свободном - допустим любой из пяти статусов
func (s *Service) TransitionStatus(ctx context.Context, id int64, status string) (*models.AppointmentResponse, error) {
	s.logger.Info("TransitionStatus: appointment id=%d to status=%s", id, status)

	newStatus, err := domain.ParseAppointmentStatus(status)
	if err != nil {
		s.logger.Warn("TransitionStatus: %v", err)
		return nil, err
	}

	var (
		result    *domain.Appointment
		oldStatus domain.AppointmentStatus
	)

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointment, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("TransitionStatus: appointment id=%d not found", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("TransitionStatus: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: TransitionStatus - repository error: %v", ErrInternal, err)
		}

		if err := appointment.Status.ValidateTransition(newStatus, s.strictTransitions); err != nil {
			s.logger.Warn("TransitionStatus: appointment id=%d: %v", id, err)
			return err
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, newStatus); err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
				return ErrAppointmentNotFound
			case errors.Is(err, appointmentRepo.ErrSlotNotAvailable):
				s.logger.Warn("TransitionStatus: slot of appointment id=%d is taken", id)
				return ErrSlotTaken
			}
			s.logger.Error("TransitionStatus: failed to update appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: TransitionStatus - repository error: %v", ErrInternal, err)
		}

		updated, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			s.logger.Error("TransitionStatus: failed to reload appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: TransitionStatus - repository error: %v", ErrInternal, err)
		}

		oldStatus = appointment.Status
		result = updated
		return nil
	})
	if err != nil {
		if pgerrors.IsSerializationFailure(err) {
			s.logger.Warn("TransitionStatus: concurrent change of appointment id=%d lost on commit: %v", id, err)
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncStatusTransition(string(oldStatus), string(newStatus))
	}
	s.logger.Info("TransitionStatus: appointment id=%d %s -> %s", id, oldStatus, newStatus)
	return models.FromDomainAppointment(result), nil
}

// Cancel отменяет запись
func (s *Service) Cancel(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	return s.TransitionStatus(ctx, id, string(domain.StatusCancelled))
}

// Confirm подтверждает запись
func (s *Service) Confirm(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	return s.TransitionStatus(ctx, id, string(domain.StatusConfirmed))
}

// Start переводит запись в работу
func (s *Service) Start(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	return s.TransitionStatus(ctx, id, string(domain.StatusInProgress))
}

// Complete завершает запись
func (s *Service) Complete(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	return s.TransitionStatus(ctx, id, string(domain.StatusCompleted))
}

// Statuses возвращает все статусы записи в порядке жизненного цикла
func (s *Service) Statuses() []string {
	out := make([]string, 0, len(domain.AllStatuses))
	for _, status := range domain.AllStatuses {
		out = append(out, string(status))
	}
	return out
}

func (s *Service) list(ctx context.Context, op string, filter domain.AppointmentFilter) (*models.AppointmentListResponse, error) {
	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d appointments", op, len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

func (s *Service) now() time.Time {
	return s.timeProvider.Now().In(s.location)
}
