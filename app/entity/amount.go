package entity

import "time"

// Amount is the monetary breakdown of a single capture. One row is written per
// capture and never modified. Every field is optional because the provider
// omits the seller breakdown on some captures entirely.
type Amount struct {
	ID uint64

	Currency         *string
	GrossAmount      *string
	PayPalFee        *string
	NetAmount        *string
	ReceivableAmount *string
	ExchangeRate     *string
	SourceCurrency   *string

	CreatedAt time.Time
}
