package repository

import (
	"context"

	"storefront-backend/internal/domains/catalog/model"
)

// Reader is the catalog collaborator contract. The cart engine only reads:
// one lookup at add time plus listing for the storefront page.
type Reader interface {
	// Get resolves a (productID, variantID) pair; variantID "" means the
	// base product. Returns model.ErrProductNotFound when absent.
	Get(ctx context.Context, productID, variantID string) (*model.Product, error)

	// List returns all products in display order.
	List(ctx context.Context) ([]model.Product, error)
}
