package repository

import (
	"context"
	"sort"
	"sync"

	"storefront-backend/internal/domains/catalog/model"
)

type productKey struct {
	productID string
	variantID string
}

// MemoryRepository is the in-memory catalog used in development and tests
// when no database is configured
type MemoryRepository struct {
	mu       sync.RWMutex
	products map[productKey]model.Product
}

func NewMemoryRepository(products ...model.Product) *MemoryRepository {
	r := &MemoryRepository{products: make(map[productKey]model.Product)}
	for _, p := range products {
		r.products[productKey{p.ID, p.VariantID}] = p
	}
	return r
}

// SeededMemoryRepository returns a catalog with a handful of demo products
func SeededMemoryRepository() *MemoryRepository {
	return NewMemoryRepository(
		model.Product{ID: "p-desk-lamp", Name: "Desk Lamp", UnitPriceCents: 3499, AvailableQuantity: 40},
		model.Product{ID: "p-mug", Name: "Ceramic Mug", UnitPriceCents: 1250, AvailableQuantity: 120},
		model.Product{ID: "p-notebook", Name: "Dotted Notebook", UnitPriceCents: 899, AvailableQuantity: 200},
		model.Product{ID: "p-tee", VariantID: "red", Name: "Logo Tee (Red)", UnitPriceCents: 1999, AvailableQuantity: 35},
		model.Product{ID: "p-tee", VariantID: "navy", Name: "Logo Tee (Navy)", UnitPriceCents: 1999, AvailableQuantity: 18},
		model.Product{ID: "p-poster", Name: "City Poster", UnitPriceCents: 2400, AvailableQuantity: 0},
	)
}

func (r *MemoryRepository) Get(_ context.Context, productID, variantID string) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[productKey{productID, variantID}]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].VariantID < out[j].VariantID
	})
	return out, nil
}
