package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
)

// AppointmentRepository in-memory реализация репозитория записей
// Повторяет частичный уникальный индекс по (employee_id, scheduled_at) для активных статусов.
type AppointmentRepository struct {
	s *Store
}

func (r *AppointmentRepository) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkReferences(a); err != nil {
		return nil, err
	}
	if r.slotTaken(a) {
		return nil, appointmentRepo.ErrSlotNotAvailable
	}

	now := r.s.now()
	r.s.appointmentSeq++
	a.ID = r.s.appointmentSeq
	a.CreatedAt = now
	a.UpdatedAt = now
	r.s.appointments[a.ID] = *a

	out := *a
	return &out, nil
}

func (r *AppointmentRepository) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *AppointmentRepository) GetActiveByEmployeeAt(_ context.Context, employeeID int64, at time.Time) ([]*domain.Appointment, error) {
	return r.list(domain.AppointmentFilter{
		EmployeeID: &employeeID,
		From:       &at,
		To:         &at,
		Statuses:   domain.ActiveStatuses,
	}), nil
}

func (r *AppointmentRepository) List(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	return r.list(filter), nil
}

func (r *AppointmentRepository) Count(_ context.Context, filter domain.AppointmentFilter) (int, error) {
	return len(r.list(filter)), nil
}

func (r *AppointmentRepository) CountByStatus(_ context.Context) (map[domain.AppointmentStatus]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[domain.AppointmentStatus]int)
	for _, a := range r.s.appointments {
		counts[a.Status]++
	}
	return counts, nil
}

func (r *AppointmentRepository) Update(_ context.Context, a *domain.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.appointments[a.ID]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	if err := r.checkReferences(a); err != nil {
		return err
	}
	if r.slotTaken(a) {
		return appointmentRepo.ErrSlotNotAvailable
	}

	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = r.s.now()
	r.s.appointments[a.ID] = *a
	return nil
}

func (r *AppointmentRepository) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}

	a.Status = status
	if r.slotTaken(&a) {
		return appointmentRepo.ErrSlotNotAvailable
	}

	a.UpdatedAt = r.s.now()
	r.s.appointments[id] = a
	return nil
}

func (r *AppointmentRepository) list(filter domain.AppointmentFilter) []*domain.Appointment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Appointment, 0)
	for _, a := range r.s.appointments {
		a := a
		if filter.Matches(&a) {
			out = append(out, &a)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			if filter.OrderDesc {
				return out[i].ScheduledAt.After(out[j].ScheduledAt)
			}
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		if filter.OrderDesc {
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// slotTaken повторяет appointments_employee_slot_active_uniq
func (r *AppointmentRepository) slotTaken(a *domain.Appointment) bool {
	if a.EmployeeID == nil || !a.Status.IsActive() {
		return false
	}
	for id, other := range r.s.appointments {
		if id == a.ID || other.EmployeeID == nil || !other.Status.IsActive() {
			continue
		}
		if *other.EmployeeID == *a.EmployeeID && other.ScheduledAt.Equal(a.ScheduledAt) {
			return true
		}
	}
	return false
}

// checkReferences повторяет внешние ключи таблицы appointments
func (r *AppointmentRepository) checkReferences(a *domain.Appointment) error {
	if _, ok := r.s.clients[a.ClientID]; !ok {
		return appointmentRepo.ErrReferenceNotFound
	}
	if _, ok := r.s.pets[a.PetID]; !ok {
		return appointmentRepo.ErrReferenceNotFound
	}
	if _, ok := r.s.services[a.ServiceID]; !ok {
		return appointmentRepo.ErrReferenceNotFound
	}
	if a.EmployeeID != nil {
		if _, ok := r.s.employees[*a.EmployeeID]; !ok {
			return appointmentRepo.ErrReferenceNotFound
		}
	}
	return nil
}
