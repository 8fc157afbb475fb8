package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountKind represents valid discount kinds
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// Coupon is one discount definition. Codes are stored in canonical form
// (trimmed, uppercased).
type Coupon struct {
	Code string       `json:"code"`
	Kind DiscountKind `json:"kind"`

	// Value is a percentage in [0,100] for DiscountPercentage, or a
	// fixed amount in minor units for DiscountFixed.
	Value decimal.Decimal `json:"value"`

	// MinimumSubtotalCents is the threshold below which the coupon does
	// not apply. Zero means no minimum.
	MinimumSubtotalCents int64 `json:"minimum_subtotal_cents,omitempty"`
}

// NormalizeCode converts user input to the canonical code form before any
// lookup or storage
func NormalizeCode(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}
