package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee performs services. TerminationDate is set while the employee is inactive.
type Employee struct {
	ID              int64
	Name            string
	TaxID           string
	Phone           string
	Email           *string
	Address         *string
	Role            string
	Salary          *decimal.Decimal
	AdmissionDate   time.Time
	TerminationDate *time.Time
	Active          bool
	CreatedAt       time.Time
}
