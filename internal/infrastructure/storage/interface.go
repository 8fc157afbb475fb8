package storage

import (
	"context"

	"storefront-backend/internal/domains/cart/model"
)

// Store persists the cart wholesale under a single key shared by every
// running instance on the device, and surfaces writes made by other
// instances. All I/O is best effort: a failed Save is logged and dropped, a
// failed Load degrades to an empty cart. The facade stays fully functional
// in memory even when the medium is unavailable.
type Store interface {
	// Save serializes the state into the slot. Failures are caught and
	// logged here, never propagated.
	Save(ctx context.Context, state model.CartState)

	// Load reads and parses the slot. An absent, unparsable, stale or
	// structurally invalid payload yields a well-formed empty cart.
	Load(ctx context.Context) model.CartState

	// Subscribe registers cb for states written by other instances. The
	// instance's own writes are suppressed. Malformed external payloads are
	// ignored silently. The returned func unsubscribes.
	Subscribe(cb func(model.CartState)) (func(), error)

	// SaveAppliedCoupon remembers the last applied coupon code across
	// sessions. A convenience slot, not part of coupon validation.
	SaveAppliedCoupon(ctx context.Context, code string)

	// LoadAppliedCoupon returns the remembered code, or "" if none.
	LoadAppliedCoupon(ctx context.Context) string

	// ClearAppliedCoupon forgets the remembered code.
	ClearAppliedCoupon(ctx context.Context)

	Close() error
}
