package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pga-platform/ms-go-paypal/app/entity"
)

var ErrPayerNotFound = errors.New("payer not found")

type PayerRepository struct {
	db DBTX
}

func NewPayerRepository(db DBTX) *PayerRepository {
	return &PayerRepository{db: db}
}

// FindOrCreate returns the payer row for the given PayPal account id, creating
// it from payer when none exists yet. Detail fields are written only on first
// creation; concurrent callers converge on one row via the unique key plus a
// duplicate-entry re-read.
func (r *PayerRepository) FindOrCreate(ctx context.Context, payer *entity.Payer) (*entity.Payer, error) {
	existing, err := r.FindByAccountID(ctx, payer.PayPalAccountID)
	if err != nil && !errors.Is(err, ErrPayerNotFound) {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	query := `
		INSERT INTO paypal_payers (
			paypal_account_id, email, name, country_code, status, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		payer.PayPalAccountID,
		nullableStringValue(payer.Email),
		nullableStringValue(payer.Name),
		nullableStringValue(payer.CountryCode),
		nullableStringValue(payer.Status),
		payer.CreatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return r.FindByAccountID(ctx, payer.PayPalAccountID)
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	payer.ID = uint64(id)

	created := *payer
	return &created, nil
}

func (r *PayerRepository) FindByAccountID(ctx context.Context, accountID string) (*entity.Payer, error) {
	query := `
		SELECT id, paypal_account_id, email, name, country_code, status, created_at
		FROM paypal_payers
		WHERE paypal_account_id = ?
		LIMIT 1
	`

	payer := &entity.Payer{}
	var email, name, countryCode, status sql.NullString
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&payer.ID,
		&payer.PayPalAccountID,
		&email,
		&name,
		&countryCode,
		&status,
		&payer.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPayerNotFound
	}
	if err != nil {
		return nil, err
	}

	payer.Email = stringPtrFromNull(email)
	payer.Name = stringPtrFromNull(name)
	payer.CountryCode = stringPtrFromNull(countryCode)
	payer.Status = stringPtrFromNull(status)

	return payer, nil
}
