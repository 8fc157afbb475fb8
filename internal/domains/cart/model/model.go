package model

// SchemaVersion tags persisted cart payloads so future layouts can be
// migrated. Unversioned or mismatched payloads are never trusted as-is.
const SchemaVersion = "v1"

// LineItem represents one row in the cart: a unique product+variant
// combination and its quantity. VariantID "" means the base product and is a
// distinct, stable identity (never equal to a named variant).
type LineItem struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
	Quantity  int    `json:"quantity"`

	// UnitPriceCents is the snapshot price captured when the item was first
	// added. It is not re-fetched, so catalog price changes do not silently
	// alter cart totals.
	UnitPriceCents int64 `json:"unitPriceCents"`
}

// Matches reports whether this line is the (productID, variantID) combination.
func (li LineItem) Matches(productID, variantID string) bool {
	return li.ProductID == productID && li.VariantID == variantID
}

// SubtotalCents calculates line subtotal
func (li LineItem) SubtotalCents() int64 {
	return li.UnitPriceCents * int64(li.Quantity)
}

// CartState is the full cart. Items keep insertion order for stable display.
// State is only mutated through the transitions in the state package; every
// transition replaces the previous state wholesale.
type CartState struct {
	Items   []LineItem `json:"items"`
	Version string     `json:"version"`
}

// NewCartState returns a well-formed empty cart
func NewCartState() CartState {
	return CartState{
		Items:   []LineItem{},
		Version: SchemaVersion,
	}
}

// CartTotals is derived from CartState after every transition, never stored
// independently (persisting totals separately lets them diverge).
type CartTotals struct {
	SubtotalCents int64 `json:"subtotalCents"`
	ItemCount     int   `json:"itemCount"`
}
