package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/infrastructure/database"
)

// PostgresRepository reads the product catalog from Postgres
type PostgresRepository struct {
	db *database.PostgresDB
}

func NewPostgresRepository(db *database.PostgresDB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, productID, variantID string) (*model.Product, error) {
	query := `
		SELECT id, COALESCE(variant_id, ''), name, unit_price_cents, available_quantity
		FROM products
		WHERE id = $1 AND COALESCE(variant_id, '') = $2`

	var p model.Product
	err := r.db.Pool.QueryRow(ctx, query, productID, variantID).Scan(
		&p.ID,
		&p.VariantID,
		&p.Name,
		&p.UnitPriceCents,
		&p.AvailableQuantity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, COALESCE(variant_id, ''), name, unit_price_cents, available_quantity
		FROM products
		ORDER BY name, id, variant_id`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.VariantID, &p.Name, &p.UnitPriceCents, &p.AvailableQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}
