package scheduling_rules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/client"
	employeeRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/employee"
	petRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/pet"
)

// Candidate запись, которую нужно проверить перед сохранением
// AppointmentID = 0 для новой записи; иначе запись исключается из проверки конфликта
type Candidate struct {
	AppointmentID int64
	ClientID      int64
	PetID         int64
	ServiceID     int64
	EmployeeID    *int64
	ScheduledAt   time.Time
}

// Checker проверяет правила записи: ссылки на клиента, питомца, услугу и сотрудника,
// время в будущем и отсутствие другой активной записи сотрудника на то же время
type Checker struct {
	clientRepo      ClientRepository
	petRepo         PetRepository
	serviceRepo     ServiceRepository
	employeeRepo    EmployeeRepository
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewChecker создает новый экземпляр проверки правил записи
func NewChecker(
	clientRepo ClientRepository,
	petRepo PetRepository,
	serviceRepo ServiceRepository,
	employeeRepo EmployeeRepository,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *Checker {
	return &Checker{
		clientRepo:      clientRepo,
		petRepo:         petRepo,
		serviceRepo:     serviceRepo,
		employeeRepo:    employeeRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Check выполняет проверки в порядке: клиент, питомец, услуга, сотрудник, время, конфликт
// Возвращает услугу, чтобы вызывающий мог подставить значения по умолчанию.
// Должен вызываться внутри сериализуемой транзакции вместе с последующей записью.
func (c *Checker) Check(ctx context.Context, cand Candidate, now time.Time) (*domain.Service, error) {
	// 1. Клиент существует и активен
	client, err := c.clientRepo.GetByID(ctx, cand.ClientID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			c.logger.Warn("CheckAppointment: client id=%d not found", cand.ClientID)
			return nil, ErrClientNotFound
		}
		c.logger.Error("CheckAppointment: failed to get client id=%d: %v", cand.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}
	if !client.Active {
		c.logger.Warn("CheckAppointment: client id=%d is inactive", cand.ClientID)
		return nil, ErrClientInactive
	}

	// 2. Питомец существует и принадлежит клиенту
	pet, err := c.petRepo.GetByID(ctx, cand.PetID)
	if err != nil {
		if errors.Is(err, petRepo.ErrPetNotFound) {
			c.logger.Warn("CheckAppointment: pet id=%d not found", cand.PetID)
			return nil, ErrPetNotFound
		}
		c.logger.Error("CheckAppointment: failed to get pet id=%d: %v", cand.PetID, err)
		return nil, fmt.Errorf("%w: failed to get pet: %v", ErrInternal, err)
	}
	if pet.OwnerID != cand.ClientID {
		c.logger.Warn("CheckAppointment: pet id=%d belongs to client id=%d, not %d", pet.ID, pet.OwnerID, cand.ClientID)
		return nil, ErrPetOwnerMismatch
	}

	// 3. Услуга существует и активна
	service, err := c.serviceRepo.GetByID(ctx, cand.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			c.logger.Warn("CheckAppointment: service id=%d not found", cand.ServiceID)
			return nil, ErrServiceNotFound
		}
		c.logger.Error("CheckAppointment: failed to get service id=%d: %v", cand.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		c.logger.Warn("CheckAppointment: service id=%d is inactive", cand.ServiceID)
		return nil, ErrServiceInactive
	}

	// 4. Сотрудник (если указан) существует и активен
	if cand.EmployeeID != nil {
		employee, err := c.employeeRepo.GetByID(ctx, *cand.EmployeeID)
		if err != nil {
			if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
				c.logger.Warn("CheckAppointment: employee id=%d not found", *cand.EmployeeID)
				return nil, ErrEmployeeNotFound
			}
			c.logger.Error("CheckAppointment: failed to get employee id=%d: %v", *cand.EmployeeID, err)
			return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
		}
		if !employee.Active {
			c.logger.Warn("CheckAppointment: employee id=%d is inactive", *cand.EmployeeID)
			return nil, ErrEmployeeInactive
		}
	}

	// 5. Время строго в будущем
	if !cand.ScheduledAt.After(now) {
		c.logger.Warn("CheckAppointment: scheduledAt %s is not after now %s",
			cand.ScheduledAt.Format(time.RFC3339), now.Format(time.RFC3339))
		return nil, ErrNotInFuture
	}

	// 6. Нет другой активной записи сотрудника на то же время
	if cand.EmployeeID != nil {
		if err := c.checkConflict(ctx, cand); err != nil {
			return nil, err
		}
	}

	return service, nil
}

// checkConflict ищет активные записи сотрудника с точно таким же временем
func (c *Checker) checkConflict(ctx context.Context, cand Candidate) error {
	existing, err := c.appointmentRepo.GetActiveByEmployeeAt(ctx, *cand.EmployeeID, cand.ScheduledAt)
	if err != nil {
		c.logger.Error("CheckAppointment: failed to get appointments of employee id=%d: %v", *cand.EmployeeID, err)
		return fmt.Errorf("%w: failed to get employee appointments: %v", ErrInternal, err)
	}

	for _, other := range existing {
		if other.ID == cand.AppointmentID {
			continue
		}
		c.logger.Warn("CheckAppointment: employee id=%d already has appointment id=%d at %s",
			*cand.EmployeeID, other.ID, cand.ScheduledAt.Format(time.RFC3339))
		return ErrSlotTaken
	}

	return nil
}
