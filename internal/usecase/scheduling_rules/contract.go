package scheduling_rules

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// ClientRepository интерфейс для проверки клиента
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

// PetRepository интерфейс для проверки питомца
type PetRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
}

// ServiceRepository интерфейс для проверки услуги
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// EmployeeRepository интерфейс для проверки сотрудника
type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
}

// AppointmentRepository интерфейс для поиска конфликтующих записей
// В транзакции реализация блокирует найденные строки (FOR UPDATE)
type AppointmentRepository interface {
	GetActiveByEmployeeAt(ctx context.Context, employeeID int64, at time.Time) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
