package storage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/cart/model"
)

// Decode failure reasons, logged by the stores and mapped to an empty cart
var (
	ErrEmptyPayload   = errors.New("payload is empty")
	ErrMalformed      = errors.New("payload is not valid JSON")
	ErrUnknownVersion = errors.New("payload version is not recognized")
	ErrStalePayload   = errors.New("payload is older than the retention window")
	ErrNotUpgradeable = errors.New("unversioned payload does not match a known legacy layout")
	ErrInvalidItems   = errors.New("payload items are structurally invalid")
)

// persistedCart is the single-slot storage layout. SavedAt (unix ms) is
// adapter metadata for stale-cart discard and never enters CartState.
type persistedCart struct {
	Items   []model.LineItem `json:"items"`
	Version string           `json:"version"`
	SavedAt int64            `json:"savedAt"`
}

// legacyLine is the pre-v1 layout: a product sub-object with a major-unit
// float price. Detected by version absence and upgraded, never trusted as-is.
type legacyLine struct {
	Product *struct {
		ID    string  `json:"id"`
		Price float64 `json:"price"`
	} `json:"product"`
	Quantity int `json:"quantity"`
}

// Encode serializes state into the v1 slot layout
func Encode(state model.CartState, now time.Time) ([]byte, error) {
	payload := persistedCart{
		Items:   state.Items,
		Version: model.SchemaVersion,
		SavedAt: now.UnixMilli(),
	}
	if payload.Items == nil {
		payload.Items = []model.LineItem{}
	}
	return json.Marshal(payload)
}

// Decode parses a slot payload into a CartState. maxAge <= 0 disables stale
// discard. On any error the returned state is the empty cart, so callers can
// use it directly after logging.
func Decode(raw []byte, now time.Time, maxAge time.Duration) (model.CartState, error) {
	empty := model.NewCartState()

	if len(raw) == 0 {
		return empty, ErrEmptyPayload
	}

	var payload persistedCart
	if err := json.Unmarshal(raw, &payload); err != nil {
		return empty, ErrMalformed
	}

	switch payload.Version {
	case model.SchemaVersion:
		if maxAge > 0 && payload.SavedAt > 0 {
			savedAt := time.UnixMilli(payload.SavedAt)
			if now.Sub(savedAt) > maxAge {
				return empty, ErrStalePayload
			}
		}
		items, ok := sanitizeItems(payload.Items)
		if !ok {
			return empty, ErrInvalidItems
		}
		return model.CartState{Items: items, Version: model.SchemaVersion}, nil

	case "":
		return upgradeLegacy(raw)

	default:
		return empty, ErrUnknownVersion
	}
}

// sanitizeItems drops lines that violate the data model (missing product id,
// non-positive quantity, negative price). A payload where every line is
// invalid is treated as structurally invalid.
func sanitizeItems(items []model.LineItem) ([]model.LineItem, bool) {
	if items == nil {
		return nil, false
	}
	valid := make([]model.LineItem, 0, len(items))
	for _, li := range items {
		if li.ProductID == "" || li.Quantity <= 0 || li.UnitPriceCents < 0 {
			continue
		}
		valid = append(valid, li)
	}
	if len(items) > 0 && len(valid) == 0 {
		return nil, false
	}
	return valid, true
}

// upgradeLegacy converts the pre-v1 product-sub-object layout to v1. Prices
// were stored as major-unit floats; conversion to cents goes through decimal
// with half-up rounding to avoid float drift (19.99 must become 1999).
func upgradeLegacy(raw []byte) (model.CartState, error) {
	empty := model.NewCartState()

	var payload struct {
		Items []legacyLine `json:"items"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Items == nil {
		return empty, ErrNotUpgradeable
	}

	items := make([]model.LineItem, 0, len(payload.Items))
	for _, line := range payload.Items {
		if line.Product == nil || line.Product.ID == "" || line.Quantity <= 0 || line.Product.Price < 0 {
			continue
		}
		cents := decimal.NewFromFloat(line.Product.Price).
			Mul(decimal.NewFromInt(100)).
			Round(0).
			IntPart()
		items = append(items, model.LineItem{
			ProductID:      line.Product.ID,
			Quantity:       line.Quantity,
			UnitPriceCents: cents,
		})
	}
	if len(payload.Items) > 0 && len(items) == 0 {
		return empty, ErrNotUpgradeable
	}
	return model.CartState{Items: items, Version: model.SchemaVersion}, nil
}
