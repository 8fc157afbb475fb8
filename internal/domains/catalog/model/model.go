package model

import "errors"

// Product is the read-only record the cart engine consumes from the catalog.
// It is consulted only at the moment an item is added, to capture the unit
// price snapshot and cap the requested quantity; the cart holds no live
// reference to it afterward.
type Product struct {
	ID                string `json:"id"`
	VariantID         string `json:"variant_id,omitempty"`
	Name              string `json:"name"`
	UnitPriceCents    int64  `json:"unit_price_cents"`
	AvailableQuantity int    `json:"available_quantity"`
}

func (p Product) InStock() bool {
	return p.AvailableQuantity > 0
}

var ErrProductNotFound = errors.New("product not found")

const ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
