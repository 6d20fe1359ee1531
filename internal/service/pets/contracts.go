package pets

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// PetRepository интерфейс репозитория питомцев
type PetRepository interface {
	Create(ctx context.Context, p *domain.Pet) (*domain.Pet, error)
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
	GetByNameAndOwner(ctx context.Context, name string, ownerID int64) (*domain.Pet, error)
	Update(ctx context.Context, p *domain.Pet) error
	List(ctx context.Context, filter domain.PetFilter) ([]*domain.Pet, error)
}

// ClientRepository интерфейс для проверки владельца
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
