// Package state holds the pure cart transitions. Every function takes a
// CartState and returns a new CartState; inputs are never mutated and there
// is no I/O. The facade in the service package is the only caller that holds
// live state.
package state

import "storefront-backend/internal/domains/cart/model"

func findLine(items []model.LineItem, productID, variantID string) int {
	for i, li := range items {
		if li.Matches(productID, variantID) {
			return i
		}
	}
	return -1
}

func cloneItems(items []model.LineItem) []model.LineItem {
	out := make([]model.LineItem, len(items))
	copy(out, items)
	return out
}

// AddItem merges the item into the cart. An existing (productID, variantID)
// line has its quantity increased and keeps its original snapshot price
// (first write wins); a new combination is appended at the end. Quantity sign
// is intentionally not checked here - callers submit positive quantities, and
// SetQuantity is the transition that special-cases <= 0.
func AddItem(s model.CartState, item model.LineItem) model.CartState {
	idx := findLine(s.Items, item.ProductID, item.VariantID)
	if idx >= 0 {
		items := cloneItems(s.Items)
		items[idx].Quantity += item.Quantity
		s.Items = items
		return s
	}

	items := make([]model.LineItem, len(s.Items), len(s.Items)+1)
	copy(items, s.Items)
	s.Items = append(items, item)
	return s
}

// RemoveItem filters out the matching line; no-op if absent.
func RemoveItem(s model.CartState, productID, variantID string) model.CartState {
	idx := findLine(s.Items, productID, variantID)
	if idx < 0 {
		return s
	}

	items := make([]model.LineItem, 0, len(s.Items)-1)
	items = append(items, s.Items[:idx]...)
	items = append(items, s.Items[idx+1:]...)
	s.Items = items
	return s
}

// SetQuantity overwrites a line's quantity. Quantity <= 0 removes the line.
// No-op if the line does not exist.
func SetQuantity(s model.CartState, productID, variantID string, quantity int) model.CartState {
	idx := findLine(s.Items, productID, variantID)
	if idx < 0 {
		return s
	}
	if quantity <= 0 {
		return RemoveItem(s, productID, variantID)
	}

	items := cloneItems(s.Items)
	items[idx].Quantity = quantity
	s.Items = items
	return s
}

// Increment adds by to an existing line's quantity. Unlike AddItem it never
// creates a line; no-op if the combination is absent.
func Increment(s model.CartState, productID, variantID string, by int) model.CartState {
	idx := findLine(s.Items, productID, variantID)
	if idx < 0 {
		return s
	}

	items := cloneItems(s.Items)
	items[idx].Quantity += by
	s.Items = items
	return s
}

// Clear empties the cart
func Clear(s model.CartState) model.CartState {
	s.Items = []model.LineItem{}
	return s
}

// Hydrate replaces the state wholesale. Used when loading from persistence or
// adopting a cross-instance update; malformed payloads are rejected upstream
// by the persistence adapter, not here.
func Hydrate(_ model.CartState, incoming model.CartState) model.CartState {
	if incoming.Items == nil {
		incoming.Items = []model.LineItem{}
	}
	if incoming.Version == "" {
		incoming.Version = model.SchemaVersion
	}
	return incoming
}

// Totals derives subtotal and item count from the state. An empty cart is a
// valid state and yields zero totals.
func Totals(s model.CartState) model.CartTotals {
	var t model.CartTotals
	for _, li := range s.Items {
		t.SubtotalCents += li.SubtotalCents()
		t.ItemCount += li.Quantity
	}
	return t
}
