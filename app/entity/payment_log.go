package entity

import "time"

const PaymentLogTypeCaptureOrder = "CAPTURE_ORDER"

// PaymentLog keeps the verbatim provider payload for audit and debugging.
// Append-only.
type PaymentLog struct {
	ID uint64

	PaymentID uint64
	Type      string
	Payload   string

	CreatedAt time.Time
}
