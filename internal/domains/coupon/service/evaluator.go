package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/coupon/model"
	"storefront-backend/pkg/money"
)

var oneHundred = decimal.NewFromInt(100)

// Evaluator validates coupon codes against a subtotal and computes the
// clamped discount. Pure over its inputs and the lookup contents: the same
// (code, subtotal) always yields the same result.
type Evaluator struct {
	coupons Lookup
}

func NewEvaluator(coupons Lookup) *Evaluator {
	return &Evaluator{coupons: coupons}
}

// Validate normalizes the code, resolves it, checks the minimum-subtotal
// threshold and computes the discount clamped to [0, subtotal]. Failures are
// structured results for inline display, never propagated as errors.
func (e *Evaluator) Validate(ctx context.Context, code string, subtotalCents int64) model.ValidationResult {
	normalized := model.NormalizeCode(code)
	if normalized == "" {
		return invalid(model.ErrKindEmptyCode, "Enter a coupon code")
	}

	coupon, ok := e.coupons.Get(ctx, normalized)
	if !ok {
		return invalid(model.ErrKindCodeNotFound, "Invalid coupon code")
	}

	if coupon.MinimumSubtotalCents > 0 && subtotalCents < coupon.MinimumSubtotalCents {
		msg := fmt.Sprintf("Requires a minimum subtotal of %s",
			money.Format(coupon.MinimumSubtotalCents, money.DefaultCurrency))
		return invalid(model.ErrKindMinimumNotMet, msg)
	}

	discount := Discount(coupon, subtotalCents)
	if discount <= 0 {
		return invalid(model.ErrKindNoApplicableDiscount, "Coupon does not apply to this subtotal")
	}

	return model.ValidationResult{
		Valid:         true,
		Code:          coupon.Code,
		DiscountCents: discount,
	}
}

// Discount computes the raw discount for a coupon, clamped to [0, subtotal].
// Percentage amounts round half-up to the minor unit so repeated evaluation
// is exact and idempotent; fixed amounts are already minor units.
func Discount(coupon model.Coupon, subtotalCents int64) int64 {
	if subtotalCents <= 0 {
		return 0
	}

	var discount int64
	switch coupon.Kind {
	case model.DiscountPercentage:
		discount = decimal.NewFromInt(subtotalCents).
			Mul(coupon.Value).
			Div(oneHundred).
			Round(0).
			IntPart()
	case model.DiscountFixed:
		discount = coupon.Value.Round(0).IntPart()
	default:
		return 0
	}

	if discount < 0 {
		return 0
	}
	if discount > subtotalCents {
		return subtotalCents
	}
	return discount
}

func invalid(kind model.ErrorKind, message string) model.ValidationResult {
	return model.ValidationResult{Valid: false, ErrorKind: kind, Message: message}
}
