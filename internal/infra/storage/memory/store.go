package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Store in-memory хранилище всех сущностей
// Используется в тестах и для локального запуска (storage.driver = "memory").
// Возвращает те же ошибки, что и postgres-репозитории, поэтому сервисы не различают реализации.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	clients      map[int64]domain.Client
	pets         map[int64]domain.Pet
	employees    map[int64]domain.Employee
	services     map[int64]domain.Service
	appointments map[int64]domain.Appointment

	clientSeq      int64
	petSeq         int64
	employeeSeq    int64
	serviceSeq     int64
	appointmentSeq int64

	// txMu сериализует транзакции (аналог SERIALIZABLE)
	txMu sync.Mutex
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		now:          time.Now,
		clients:      make(map[int64]domain.Client),
		pets:         make(map[int64]domain.Pet),
		employees:    make(map[int64]domain.Employee),
		services:     make(map[int64]domain.Service),
		appointments: make(map[int64]domain.Appointment),
	}
}

func (s *Store) Clients() *ClientRepository {
	return &ClientRepository{s: s}
}

func (s *Store) Pets() *PetRepository {
	return &PetRepository{s: s}
}

func (s *Store) Employees() *EmployeeRepository {
	return &EmployeeRepository{s: s}
}

func (s *Store) Services() *ServiceRepository {
	return &ServiceRepository{s: s}
}

func (s *Store) Appointments() *AppointmentRepository {
	return &AppointmentRepository{s: s}
}

func (s *Store) TxManager() *TxManager {
	return &TxManager{s: s}
}

type txKey struct{}

// TxManager выполняет функции под общим мьютексом хранилища
// Вложенный вызов с тем же контекстом переиспользует уже захваченную блокировку.
// Откат не поддерживается: use case'ы выполняют запись последним шагом.
type TxManager struct {
	s *Store
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	return fn(context.WithValue(ctx, txKey{}, true))
}
