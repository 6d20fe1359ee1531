package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
)

// allowedTransitions is the strict status machine. Terminal statuses have no outgoing edges.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:  {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// ErrAppointmentClosed is returned for any change to a completed or cancelled appointment
var ErrAppointmentClosed = fmt.Errorf("%w: cannot modify a completed or cancelled appointment", ErrValidation)

// ParseAppointmentStatus converts a wire value into a status (case-insensitive)
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: invalid appointment status %q", ErrValidation, s)
	}
	return status, nil
}

// IsValid returns true if the status is one of the five known values
func (s AppointmentStatus) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsTerminal returns true for completed and cancelled
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive returns true for statuses that occupy the employee's time slot
func (s AppointmentStatus) IsActive() bool {
	return s == StatusScheduled || s == StatusConfirmed || s == StatusInProgress
}

// CanTransitionTo reports whether the strict status machine allows s -> next
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransition checks s -> next.
// Strict mode follows the status machine and rejects leaving a terminal status or staying in place.
// Loose mode accepts any known status.
func (s AppointmentStatus) ValidateTransition(next AppointmentStatus, strict bool) error {
	if !next.IsValid() {
		return fmt.Errorf("%w: invalid appointment status %q", ErrValidation, next)
	}
	if !strict {
		return nil
	}
	if s.IsTerminal() {
		return ErrAppointmentClosed
	}
	if !s.CanTransitionTo(next) {
		return fmt.Errorf("%w: cannot change status from %s to %s", ErrValidation, s, next)
	}
	return nil
}

// Appointment represents a booked service for a client's pet
type Appointment struct {
	ID          int64
	ClientID    int64
	PetID       int64
	ServiceID   int64
	EmployeeID  *int64
	ScheduledAt time.Time
	Status      AppointmentStatus
	Notes       *string

	// Defaulted from the service at creation
	EstimatedValue           decimal.Decimal
	EstimatedDurationMinutes *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if no field of the appointment may change anymore
func (a *Appointment) IsTerminal() bool {
	return a.Status.IsTerminal()
}

// IsActive returns true if the appointment takes part in conflict detection
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// AppointmentFilter describes an appointment listing. Nil fields are not filtered on.
type AppointmentFilter struct {
	ClientID   *int64
	EmployeeID *int64
	ServiceID  *int64
	Statuses   []AppointmentStatus
	From       *time.Time // inclusive
	To         *time.Time // inclusive
	OrderDesc  bool
}

// Matches applies the filter to a single appointment
func (f AppointmentFilter) Matches(a *Appointment) bool {
	if f.ClientID != nil && a.ClientID != *f.ClientID {
		return false
	}
	if f.EmployeeID != nil && (a.EmployeeID == nil || *a.EmployeeID != *f.EmployeeID) {
		return false
	}
	if f.ServiceID != nil && a.ServiceID != *f.ServiceID {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if a.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.From != nil && a.ScheduledAt.Before(*f.From) {
		return false
	}
	if f.To != nil && a.ScheduledAt.After(*f.To) {
		return false
	}
	return true
}

// AppointmentStatistics aggregated appointment counters
type AppointmentStatistics struct {
	Total    int
	Today    int
	ThisWeek int
	ByStatus map[AppointmentStatus]int
}
