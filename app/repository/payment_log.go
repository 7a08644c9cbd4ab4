package repository

import (
	"context"

	"github.com/pga-platform/ms-go-paypal/app/entity"
)

type PaymentLogRepository struct {
	db DBTX
}

func NewPaymentLogRepository(db DBTX) *PaymentLogRepository {
	return &PaymentLogRepository{db: db}
}

func (r *PaymentLogRepository) Create(ctx context.Context, log *entity.PaymentLog) error {
	query := `
		INSERT INTO paypal_payment_logs (
			payment_id, type, payload, created_at
		)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		log.PaymentID,
		log.Type,
		log.Payload,
		log.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	log.ID = uint64(id)

	return nil
}
