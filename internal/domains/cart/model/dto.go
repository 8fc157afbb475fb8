package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"storefront-backend/pkg/money"
)

// AddItemRequest adds a catalog product to the cart. The unit price is never
// taken from the client; it is captured from the catalog at add time.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID,
			validation.Required.Error("product_id is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.VariantID, validation.Length(0, 100)),
		validation.Field(&r.Quantity,
			validation.Required.Error("quantity is required"),
			validation.Min(1).Error("quantity must be >= 1"),
			validation.Max(100).Error("quantity cannot exceed 100"),
		),
	)
}

// SetQuantityRequest overwrites a line's quantity. Zero and negative values
// remove the line, so no minimum is enforced here.
type SetQuantityRequest struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

func (r SetQuantityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID,
			validation.Required.Error("product_id is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Quantity, validation.Max(100).Error("quantity cannot exceed 100")),
	)
}

// IncrementRequest bumps an existing line's quantity. It never creates a
// line; that is what add is for.
type IncrementRequest struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	By        int    `json:"by"`
}

func (r IncrementRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID,
			validation.Required.Error("product_id is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.By, validation.Min(1).Error("by must be >= 1"), validation.Max(100)),
	)
}

// CartResponse is the read-only view exposed to the rendering layer
type CartResponse struct {
	Items           []LineItemResponse `json:"items"`
	ItemCount       int                `json:"item_count"`
	SubtotalCents   int64              `json:"subtotal_cents"`
	SubtotalDisplay string             `json:"subtotal_display"`
}

// LineItemResponse represents one cart row with display formatting applied
type LineItemResponse struct {
	ProductID        string `json:"product_id"`
	VariantID        string `json:"variant_id,omitempty"`
	Quantity         int    `json:"quantity"`
	UnitPriceCents   int64  `json:"unit_price_cents"`
	UnitPriceDisplay string `json:"unit_price_display"`
	SubtotalCents    int64  `json:"subtotal_cents"`
}

// ToResponse converts a state snapshot plus derived totals to the API shape
func ToResponse(state CartState, totals CartTotals, currency money.Currency) *CartResponse {
	items := make([]LineItemResponse, 0, len(state.Items))
	for _, li := range state.Items {
		items = append(items, LineItemResponse{
			ProductID:        li.ProductID,
			VariantID:        li.VariantID,
			Quantity:         li.Quantity,
			UnitPriceCents:   li.UnitPriceCents,
			UnitPriceDisplay: money.Format(li.UnitPriceCents, currency),
			SubtotalCents:    li.SubtotalCents(),
		})
	}
	return &CartResponse{
		Items:           items,
		ItemCount:       totals.ItemCount,
		SubtotalCents:   totals.SubtotalCents,
		SubtotalDisplay: money.Format(totals.SubtotalCents, currency),
	}
}
