package repository

import (
	"context"

	"github.com/pga-platform/ms-go-paypal/app/entity"
)

type AmountRepository struct {
	db DBTX
}

func NewAmountRepository(db DBTX) *AmountRepository {
	return &AmountRepository{db: db}
}

func (r *AmountRepository) Create(ctx context.Context, amount *entity.Amount) error {
	query := `
		INSERT INTO paypal_amounts (
			currency, gross_amount, paypal_fee, net_amount,
			receivable_amount, exchange_rate, source_currency, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		nullableStringValue(amount.Currency),
		nullableStringValue(amount.GrossAmount),
		nullableStringValue(amount.PayPalFee),
		nullableStringValue(amount.NetAmount),
		nullableStringValue(amount.ReceivableAmount),
		nullableStringValue(amount.ExchangeRate),
		nullableStringValue(amount.SourceCurrency),
		amount.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	amount.ID = uint64(id)

	return nil
}
