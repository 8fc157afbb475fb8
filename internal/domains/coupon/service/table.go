package service

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/coupon/model"
)

// Lookup resolves a canonical coupon code to its definition. The in-memory
// Table satisfies it today; a production deployment would swap in a client
// for a remote coupon service with the same contract.
type Lookup interface {
	Get(ctx context.Context, code string) (model.Coupon, bool)
}

// Table is the in-memory coupon catalog. Safe for concurrent use; admin
// handlers mutate it while shoppers validate against it.
type Table struct {
	mu     sync.RWMutex
	byCode map[string]model.Coupon
}

func NewTable() *Table {
	return &Table{byCode: make(map[string]model.Coupon)}
}

// DefaultTable returns the table seeded with the storefront's standing codes
func DefaultTable() *Table {
	t := NewTable()
	for _, c := range []model.Coupon{
		{Code: "SAVE10", Kind: model.DiscountPercentage, Value: decimal.NewFromInt(10)},
		{Code: "WELCOME5", Kind: model.DiscountFixed, Value: decimal.NewFromInt(500), MinimumSubtotalCents: 2500},
		{Code: "BIGSAVE20", Kind: model.DiscountPercentage, Value: decimal.NewFromInt(20), MinimumSubtotalCents: 10000},
		{Code: "FREESHIP", Kind: model.DiscountFixed, Value: decimal.NewFromInt(500), MinimumSubtotalCents: 3000},
		{Code: "VIP20", Kind: model.DiscountPercentage, Value: decimal.NewFromInt(20), MinimumSubtotalCents: 5000},
	} {
		t.byCode[c.Code] = c
	}
	return t
}

func (t *Table) Get(_ context.Context, code string) (model.Coupon, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.byCode[model.NormalizeCode(code)]
	return c, ok
}

// Create adds a new coupon; fails if the canonical code already exists
func (t *Table) Create(c model.Coupon) error {
	code := model.NormalizeCode(c.Code)
	c.Code = code

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.byCode[code]; exists {
		return model.ErrDuplicateCode
	}
	t.byCode[code] = c
	return nil
}

// Upsert adds or replaces a coupon definition
func (t *Table) Upsert(c model.Coupon) {
	c.Code = model.NormalizeCode(c.Code)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.byCode[c.Code] = c
}

// Delete removes a coupon; reports whether it existed
func (t *Table) Delete(code string) bool {
	code = model.NormalizeCode(code)

	t.mu.Lock()
	defer t.mu.Unlock()
	_, existed := t.byCode[code]
	delete(t.byCode, code)
	return existed
}

// List returns all coupons sorted by code
func (t *Table) List() []model.Coupon {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]model.Coupon, 0, len(t.byCode))
	for _, c := range t.byCode {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
