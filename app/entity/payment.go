package entity

import "time"

const PaymentStatusCompleted = "COMPLETED"

type Payment struct {
	ID uint64

	OrderID   string
	CaptureID *string
	Status    string
	IsSandbox bool

	PayerID  uint64
	AmountID uint64

	CreatedAt time.Time
}
