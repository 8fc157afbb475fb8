package service

import (
	"context"

	"storefront-backend/internal/domains/cart/model"
)

// ServiceInterface is the cart facade consumed by the rendering layer. One
// instance owns one live CartState: every mutator computes the next state
// through the pure transitions, replaces the held state, persists it and
// notifies listeners. Construction seeds from persisted state before any
// mutation can be accepted.
type ServiceInterface interface {
	// State returns a snapshot of the current cart
	State() model.CartState

	// Totals returns the totals derived from the current cart
	Totals() model.CartTotals

	// AddProduct resolves the product in the catalog, captures its unit
	// price, caps quantity against available stock and merges it into the
	// cart. Returns model.ErrProductNotFound / model.ErrOutOfStock.
	AddProduct(ctx context.Context, productID, variantID string, quantity int) (model.CartState, error)

	// AddItem merges an item with an already-captured unit price. An
	// existing (productID, variantID) line gains quantity and keeps its
	// first-write price.
	AddItem(ctx context.Context, productID, variantID string, quantity int, unitPriceCents int64) model.CartState

	// RemoveItem drops the matching line; no-op if absent
	RemoveItem(ctx context.Context, productID, variantID string) model.CartState

	// SetQuantity overwrites a line's quantity; <= 0 removes the line
	SetQuantity(ctx context.Context, productID, variantID string, quantity int) model.CartState

	// Increment adds by to an existing line; never creates one
	Increment(ctx context.Context, productID, variantID string, by int) model.CartState

	// Clear empties the cart
	Clear(ctx context.Context) model.CartState

	// OnChange registers a listener invoked after every state replacement,
	// including externally adopted ones. Returns an unregister func.
	OnChange(fn func(model.CartState, model.CartTotals)) func()

	Close() error
}
