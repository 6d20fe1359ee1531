package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a catalog entry that can be booked
type Service struct {
	ID                       int64
	Name                     string
	Description              *string
	Category                 string
	Price                    decimal.Decimal
	EstimatedDurationMinutes *int
	Notes                    *string
	Active                   bool
	CreatedAt                time.Time
}

// ServiceStatistics catalog counters
type ServiceStatistics struct {
	Total      int
	Active     int
	Inactive   int
	ByCategory map[string]int
}

// ServiceFilter describes a catalog listing. Nil fields are not filtered on.
type ServiceFilter struct {
	Active   *bool
	Category *string
}
