package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/cart/state"
	catalogrepo "storefront-backend/internal/domains/catalog/repository"
	"storefront-backend/internal/infrastructure/storage"
)

// CartService is the composition root for one cart instance. Several
// instances may run against the same storage medium; whichever instance
// saves last wins, and an instance that receives an external change adopts
// it wholesale, discarding unsaved local edits. No merge is attempted.
type CartService struct {
	store   storage.Store
	catalog catalogrepo.Reader

	// applyMu serializes a whole mutation (transition, persist, notify) so
	// concurrent callers cannot land their saves out of order and leave an
	// older snapshot as the last durable write. stateMu guards reads of the
	// held state and stays safe to take from inside a listener.
	applyMu sync.Mutex
	stateMu sync.Mutex
	state   model.CartState

	listenerMu     sync.Mutex
	listeners      map[int]func(model.CartState, model.CartTotals)
	nextListenerID int

	unsubscribe func()
}

// NewCartService seeds the facade from persisted state and then subscribes
// to external changes, in that order - accepting a mutation before the seed
// load would let the load overwrite a just-added item.
func NewCartService(ctx context.Context, store storage.Store, catalog catalogrepo.Reader) (*CartService, error) {
	s := &CartService{
		store:     store,
		catalog:   catalog,
		state:     model.NewCartState(),
		listeners: make(map[int]func(model.CartState, model.CartTotals)),
	}

	s.state = store.Load(ctx)

	unsubscribe, err := store.Subscribe(s.adoptExternal)
	if err != nil {
		// The cart stays fully functional in memory without cross-instance
		// notifications.
		log.Warn().Err(err).Msg("cart change subscription unavailable")
	} else {
		s.unsubscribe = unsubscribe
	}

	return s, nil
}

func (s *CartService) State() model.CartState {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return snapshot(s.state)
}

func (s *CartService) Totals() model.CartTotals {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return state.Totals(s.state)
}

func (s *CartService) AddProduct(ctx context.Context, productID, variantID string, quantity int) (model.CartState, error) {
	product, err := s.catalog.Get(ctx, productID, variantID)
	if err != nil {
		return s.State(), model.ErrProductNotFound
	}
	if !product.InStock() {
		return s.State(), model.ErrOutOfStock
	}

	// Cap against available inventory. The snapshot price comes from the
	// catalog here and is never overwritten on subsequent adds.
	if quantity > product.AvailableQuantity {
		quantity = product.AvailableQuantity
	}

	return s.AddItem(ctx, productID, variantID, quantity, product.UnitPriceCents), nil
}

func (s *CartService) AddItem(ctx context.Context, productID, variantID string, quantity int, unitPriceCents int64) model.CartState {
	return s.apply(ctx, func(cur model.CartState) model.CartState {
		return state.AddItem(cur, model.LineItem{
			ProductID:      productID,
			VariantID:      variantID,
			Quantity:       quantity,
			UnitPriceCents: unitPriceCents,
		})
	})
}

func (s *CartService) RemoveItem(ctx context.Context, productID, variantID string) model.CartState {
	return s.apply(ctx, func(cur model.CartState) model.CartState {
		return state.RemoveItem(cur, productID, variantID)
	})
}

func (s *CartService) SetQuantity(ctx context.Context, productID, variantID string, quantity int) model.CartState {
	return s.apply(ctx, func(cur model.CartState) model.CartState {
		return state.SetQuantity(cur, productID, variantID, quantity)
	})
}

func (s *CartService) Increment(ctx context.Context, productID, variantID string, by int) model.CartState {
	return s.apply(ctx, func(cur model.CartState) model.CartState {
		return state.Increment(cur, productID, variantID, by)
	})
}

func (s *CartService) Clear(ctx context.Context) model.CartState {
	return s.apply(ctx, state.Clear)
}

// apply runs one transition: replace held state, persist, notify. The whole
// sequence holds applyMu, so the last durable write is always the newest
// snapshot and listeners see changes in mutation order. Persistence itself is
// best effort - the store logs and swallows failures, so a broken medium
// degrades to a session-only cart.
func (s *CartService) apply(ctx context.Context, transition func(model.CartState) model.CartState) model.CartState {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	s.stateMu.Lock()
	s.state = transition(s.state)
	next := snapshot(s.state)
	s.stateMu.Unlock()

	s.store.Save(ctx, next)
	s.notify(next)
	return next
}

// adoptExternal replaces the held state with one written by another
// instance. The incoming state was already validated by the persistence
// adapter; it is not re-saved here, which would echo it back and ping-pong
// between instances.
func (s *CartService) adoptExternal(incoming model.CartState) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	s.stateMu.Lock()
	s.state = state.Hydrate(s.state, incoming)
	next := snapshot(s.state)
	s.stateMu.Unlock()

	s.notify(next)
}

func (s *CartService) OnChange(fn func(model.CartState, model.CartTotals)) func() {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = fn

	return func() {
		s.listenerMu.Lock()
		defer s.listenerMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *CartService) notify(next model.CartState) {
	totals := state.Totals(next)

	s.listenerMu.Lock()
	listeners := make([]func(model.CartState, model.CartTotals), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.listenerMu.Unlock()

	for _, fn := range listeners {
		fn(next, totals)
	}
}

func (s *CartService) Close() error {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	return nil
}

// snapshot copies the item slice so callers can never mutate held state
func snapshot(st model.CartState) model.CartState {
	items := make([]model.LineItem, len(st.Items))
	copy(items, st.Items)
	st.Items = items
	return st
}
