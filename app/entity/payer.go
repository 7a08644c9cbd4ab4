package entity

import "time"

// Payer is keyed by the PayPal account id. Rows are created on first capture
// and never updated by the capture flow afterwards.
type Payer struct {
	ID uint64

	PayPalAccountID string
	Email           *string
	Name            *string
	CountryCode     *string
	Status          *string

	CreatedAt time.Time
}
