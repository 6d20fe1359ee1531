package domain

import "time"

// Client represents a pet owner. Clients are deactivated, never deleted.
type Client struct {
	ID        int64
	Name      string
	TaxID     string
	Phone     string
	Email     *string
	Address   *string
	Active    bool
	CreatedAt time.Time
}
