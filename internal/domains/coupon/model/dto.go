package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

var codePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ValidateCouponRequest carries the raw code from a form field. All
// normalization happens in the evaluator, not at the input surface.
type ValidateCouponRequest struct {
	Code string `json:"code"`
}

func (r ValidateCouponRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code,
			validation.Required.Error("coupon code is required"),
			validation.Length(1, 50),
		),
	)
}

// ValidationResult is the structured outcome consumed by the UI for display.
// Exactly one of DiscountCents (valid) or ErrorKind (invalid) is meaningful.
type ValidationResult struct {
	Valid         bool      `json:"valid"`
	Code          string    `json:"code,omitempty"`
	DiscountCents int64     `json:"discount_cents,omitempty"`
	ErrorKind     ErrorKind `json:"error_kind,omitempty"`
	Message       string    `json:"message,omitempty"`
}

// UpsertCouponRequest creates or replaces a coupon definition (admin)
type UpsertCouponRequest struct {
	Code                 string  `json:"code"`
	Kind                 string  `json:"kind"`
	Value                float64 `json:"value"`
	MinimumSubtotalCents int64   `json:"minimum_subtotal_cents"`
}

func (r UpsertCouponRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code,
			validation.Required.Error("code is required"),
			validation.Length(3, 50).Error("code must be 3-50 characters"),
			validation.Match(codePattern).Error("code must be alphanumeric"),
		),
		validation.Field(&r.Kind,
			validation.Required.Error("kind is required"),
			validation.In(string(DiscountPercentage), string(DiscountFixed)).
				Error("kind must be 'percentage' or 'fixed'"),
		),
		validation.Field(&r.Value,
			validation.Required.Error("value is required"),
			validation.Min(0.01).Error("value must be > 0"),
			validation.By(r.validatePercentage),
		),
		validation.Field(&r.MinimumSubtotalCents,
			validation.Min(int64(0)).Error("minimum_subtotal_cents must be >= 0"),
		),
	)
}

func (r UpsertCouponRequest) validatePercentage(interface{}) error {
	if r.Kind == string(DiscountPercentage) && r.Value > 100 {
		return validation.NewError("validation_percentage_range", "percentage value cannot exceed 100")
	}
	return nil
}

// ToCoupon converts the request to a canonical Coupon
func (r UpsertCouponRequest) ToCoupon() Coupon {
	return Coupon{
		Code:                 NormalizeCode(r.Code),
		Kind:                 DiscountKind(r.Kind),
		Value:                decimal.NewFromFloat(r.Value),
		MinimumSubtotalCents: r.MinimumSubtotalCents,
	}
}
