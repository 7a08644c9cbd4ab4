package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pga-platform/ms-go-paypal/app/entity"
	"github.com/shopspring/decimal"
)

var ErrPackageNotFound = errors.New("package not found")

type PackageRepository struct {
	db DBTX
}

func NewPackageRepository(db DBTX) *PackageRepository {
	return &PackageRepository{db: db}
}

// FindByID loads a package together with its active price, when one exists.
func (r *PackageRepository) FindByID(ctx context.Context, id uint64) (*entity.Package, error) {
	query := `
		SELECT p.id, p.name, p.description, p.created_at, p.updated_at,
			pr.id, pr.amount, pr.currency, pr.created_at
		FROM packages p
		LEFT JOIN package_prices pr ON pr.package_id = p.id AND pr.is_active = TRUE
		WHERE p.id = ?
		LIMIT 1
	`

	item := &entity.Package{}
	var description sql.NullString
	var priceID sql.NullInt64
	var priceAmount sql.NullString
	var priceCurrency sql.NullString
	var priceCreatedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&description,
		&item.CreatedAt,
		&item.UpdatedAt,
		&priceID,
		&priceAmount,
		&priceCurrency,
		&priceCreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, err
	}

	item.Description = stringPtrFromNull(description)

	if priceID.Valid {
		amount, err := decimal.NewFromString(priceAmount.String)
		if err != nil {
			return nil, err
		}
		item.ActivePrice = &entity.PackagePrice{
			ID:        uint64(priceID.Int64),
			PackageID: item.ID,
			Amount:    amount,
			Currency:  priceCurrency.String,
			IsActive:  true,
			CreatedAt: priceCreatedAt.Time,
		}
	}

	return item, nil
}

func (r *PackageRepository) List(ctx context.Context) ([]*entity.Package, error) {
	query := `
		SELECT p.id, p.name, p.description, p.created_at, p.updated_at,
			pr.id, pr.amount, pr.currency, pr.created_at
		FROM packages p
		LEFT JOIN package_prices pr ON pr.package_id = p.id AND pr.is_active = TRUE
		ORDER BY p.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := make([]*entity.Package, 0)
	for rows.Next() {
		item := &entity.Package{}
		var description sql.NullString
		var priceID sql.NullInt64
		var priceAmount sql.NullString
		var priceCurrency sql.NullString
		var priceCreatedAt sql.NullTime

		err := rows.Scan(
			&item.ID,
			&item.Name,
			&description,
			&item.CreatedAt,
			&item.UpdatedAt,
			&priceID,
			&priceAmount,
			&priceCurrency,
			&priceCreatedAt,
		)
		if err != nil {
			return nil, err
		}

		item.Description = stringPtrFromNull(description)

		if priceID.Valid {
			amount, err := decimal.NewFromString(priceAmount.String)
			if err != nil {
				return nil, err
			}
			item.ActivePrice = &entity.PackagePrice{
				ID:        uint64(priceID.Int64),
				PackageID: item.ID,
				Amount:    amount,
				Currency:  priceCurrency.String,
				IsActive:  true,
				CreatedAt: priceCreatedAt.Time,
			}
		}

		packages = append(packages, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return packages, nil
}
