package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/cart/model"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "cart.json"), 7*24*time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	store.Save(ctx, testState())

	got := store.Load(ctx)
	assert.Equal(t, testState(), got)
}

func TestFileStore_LoadMissingFileReturnsEmptyCart(t *testing.T) {
	store := newTestFileStore(t)

	got := store.Load(context.Background())

	assert.Equal(t, model.NewCartState(), got)
}

func TestFileStore_LoadCorruptFileReturnsEmptyCart(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte("not json at all"), 0o644))

	got := store.Load(context.Background())

	assert.Equal(t, model.NewCartState(), got)
}

func TestFileStore_ExternalWriteNotifiesSubscribers(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	received := make(chan model.CartState, 1)
	unsubscribe, err := store.Subscribe(func(s model.CartState) {
		received <- s
	})
	require.NoError(t, err)
	defer unsubscribe()

	// A second store on the same path stands in for another instance
	other, err := NewFileStore(store.path, store.maxAge)
	require.NoError(t, err)
	defer other.Close()
	other.Save(ctx, testState())

	select {
	case got := <-received:
		assert.Equal(t, testState(), got)
	case <-time.After(3 * time.Second):
		t.Fatal("subscriber was not notified of external write")
	}
}

func TestFileStore_OwnWriteDoesNotNotify(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	received := make(chan model.CartState, 1)
	unsubscribe, err := store.Subscribe(func(s model.CartState) {
		received <- s
	})
	require.NoError(t, err)
	defer unsubscribe()

	store.Save(ctx, testState())

	select {
	case <-received:
		t.Fatal("subscriber must not see the instance's own write")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileStore_MalformedExternalWriteIgnored(t *testing.T) {
	store := newTestFileStore(t)

	received := make(chan model.CartState, 1)
	unsubscribe, err := store.Subscribe(func(s model.CartState) {
		received <- s
	})
	require.NoError(t, err)
	defer unsubscribe()

	require.NoError(t, os.WriteFile(store.path, []byte(`{"broken`), 0o644))

	select {
	case <-received:
		t.Fatal("subscriber must not see a malformed write")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileStore_Unsubscribe(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	received := make(chan model.CartState, 1)
	unsubscribe, err := store.Subscribe(func(s model.CartState) {
		received <- s
	})
	require.NoError(t, err)
	unsubscribe()

	other, err := NewFileStore(store.path, store.maxAge)
	require.NoError(t, err)
	defer other.Close()
	other.Save(ctx, testState())

	select {
	case <-received:
		t.Fatal("unsubscribed callback must not fire")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileStore_AppliedCouponSlot(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	assert.Empty(t, store.LoadAppliedCoupon(ctx))

	store.SaveAppliedCoupon(ctx, "SAVE10")
	assert.Equal(t, "SAVE10", store.LoadAppliedCoupon(ctx))

	store.ClearAppliedCoupon(ctx)
	assert.Empty(t, store.LoadAppliedCoupon(ctx))
}
