package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllStatuses every appointment status in lifecycle order
var AllStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// ActiveStatuses statuses that occupy an employee's time slot
// Used by the conflict check
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
}

// TerminalStatuses statuses after which an appointment is read-only
var TerminalStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
}

// DefaultServiceCategories categories offered when the catalog is empty
var DefaultServiceCategories = []string{
	"Banho",
	"Tosa",
	"Consulta Veterinária",
	"Vacinação",
	"Exame",
	"Cirurgia",
	"Hotel",
	"Adestramento",
	"Outros",
}
