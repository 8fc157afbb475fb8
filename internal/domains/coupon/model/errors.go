package model

import "errors"

var ErrDuplicateCode = errors.New("coupon code already exists")

// ErrorKind identifies a coupon validation failure. Validation failures are
// always recoverable: they surface as an inline message keyed by kind, never
// as an unhandled failure.
type ErrorKind string

const (
	ErrKindEmptyCode            ErrorKind = "EMPTY_CODE"
	ErrKindCodeNotFound         ErrorKind = "CODE_NOT_FOUND"
	ErrKindMinimumNotMet        ErrorKind = "MINIMUM_NOT_MET"
	ErrKindNoApplicableDiscount ErrorKind = "NO_APPLICABLE_DISCOUNT"
)

// Error codes for admin operations
const (
	ErrCodeDuplicate      = "VAL_DUPLICATE_CODE"
	ErrCodeCouponNotFound = "COUPON_NOT_FOUND"
)
