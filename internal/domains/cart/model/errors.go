package model

import "errors"

var (
	ErrProductNotFound = errors.New("product not found in catalog")
	ErrOutOfStock      = errors.New("product is out of stock")
)

// Error codes returned in HTTP error envelopes
const (
	ErrCodeProductNotFound = "CART_PRODUCT_NOT_FOUND"
	ErrCodeOutOfStock      = "CART_OUT_OF_STOCK"
	ErrCodeInvalidInput    = "VAL_INVALID_INPUT"
)
