package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/pga-platform/ms-go-paypal/app/entity"
)

type PaymentFilter struct {
	OrderID     string
	Status      string
	PayerID     uint64
	SandboxOnly bool
	Limit       int32
	Offset      int32
}

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO paypal_payments (
			order_id, capture_id, status, is_sandbox, payer_id, amount_id, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		payment.OrderID,
		nullableStringValue(payment.CaptureID),
		payment.Status,
		payment.IsSandbox,
		payment.PayerID,
		payment.AmountID,
		payment.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	payment.ID = uint64(id)

	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uint64) (*entity.Payment, error) {
	query := `
		SELECT id, order_id, capture_id, status, is_sandbox, payer_id, amount_id, created_at
		FROM paypal_payments
		WHERE id = ?
	`

	payment := &entity.Payment{}
	if err := scanPayment(r.db.QueryRowContext(ctx, query, id), payment); errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return payment, nil
}

func (r *PaymentRepository) List(ctx context.Context, filter PaymentFilter) ([]*entity.Payment, error) {
	query := `
		SELECT id, order_id, capture_id, status, is_sandbox, payer_id, amount_id, created_at
		FROM paypal_payments
	`

	conditions := make([]string, 0, 4)
	args := make([]interface{}, 0, 6)

	if strings.TrimSpace(filter.OrderID) != "" {
		conditions = append(conditions, "order_id = ?")
		args = append(args, filter.OrderID)
	}
	if strings.TrimSpace(filter.Status) != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.PayerID > 0 {
		conditions = append(conditions, "payer_id = ?")
		args = append(args, filter.PayerID)
	}
	if filter.SandboxOnly {
		conditions = append(conditions, "is_sandbox = TRUE")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]*entity.Payment, 0)
	for rows.Next() {
		item := &entity.Payment{}
		if err := scanPayment(rows, item); err != nil {
			return nil, err
		}
		payments = append(payments, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(scan rowScanner, payment *entity.Payment) error {
	var captureID sql.NullString

	err := scan.Scan(
		&payment.ID,
		&payment.OrderID,
		&captureID,
		&payment.Status,
		&payment.IsSandbox,
		&payment.PayerID,
		&payment.AmountID,
		&payment.CreatedAt,
	)
	if err != nil {
		return err
	}

	payment.CaptureID = stringPtrFromNull(captureID)
	return nil
}
