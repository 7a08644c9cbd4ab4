package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Package struct {
	ID uint64

	Name        string
	Description *string

	// ActivePrice is nil when no price row is currently active.
	ActivePrice *PackagePrice

	CreatedAt time.Time
	UpdatedAt time.Time
}

type PackagePrice struct {
	ID uint64

	PackageID uint64
	Amount    decimal.Decimal
	Currency  string
	IsActive  bool

	CreatedAt time.Time
}
