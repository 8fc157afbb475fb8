package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/cart/model"
)

func lamp(qty int) model.LineItem {
	return model.LineItem{ProductID: "p-desk-lamp", Quantity: qty, UnitPriceCents: 2499}
}

func tee(variant string, qty int) model.LineItem {
	return model.LineItem{ProductID: "p-tee", VariantID: variant, Quantity: qty, UnitPriceCents: 1999}
}

func TestAddItem_AppendsNewLine(t *testing.T) {
	s := AddItem(model.NewCartState(), lamp(2))

	require.Len(t, s.Items, 1)
	assert.Equal(t, "p-desk-lamp", s.Items[0].ProductID)
	assert.Equal(t, 2, s.Items[0].Quantity)
	assert.Equal(t, int64(2499), s.Items[0].UnitPriceCents)
}

func TestAddItem_MergesQuantityAndKeepsFirstPrice(t *testing.T) {
	s := AddItem(model.NewCartState(), lamp(2))

	repriced := lamp(3)
	repriced.UnitPriceCents = 9999
	s = AddItem(s, repriced)

	require.Len(t, s.Items, 1)
	assert.Equal(t, 5, s.Items[0].Quantity)
	assert.Equal(t, int64(2499), s.Items[0].UnitPriceCents, "snapshot price must not change on merge")
}

func TestAddItem_VariantsAreDistinctLines(t *testing.T) {
	s := AddItem(model.NewCartState(), tee("red", 1))
	s = AddItem(s, tee("navy", 1))

	require.Len(t, s.Items, 2)
	assert.Equal(t, "red", s.Items[0].VariantID)
	assert.Equal(t, "navy", s.Items[1].VariantID)
}

func TestAddItem_BaseProductAndVariantAreDistinct(t *testing.T) {
	s := AddItem(model.NewCartState(), tee("", 1))
	s = AddItem(s, tee("red", 1))

	require.Len(t, s.Items, 2)
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	s := AddItem(model.NewCartState(), lamp(1))
	s = AddItem(s, tee("red", 1))
	s = AddItem(s, lamp(1))

	require.Len(t, s.Items, 2)
	assert.Equal(t, "p-desk-lamp", s.Items[0].ProductID)
	assert.Equal(t, "p-tee", s.Items[1].ProductID)
}

func TestRemoveItem(t *testing.T) {
	s := AddItem(model.NewCartState(), lamp(1))
	s = AddItem(s, tee("red", 1))

	s = RemoveItem(s, "p-desk-lamp", "")

	require.Len(t, s.Items, 1)
	assert.Equal(t, "p-tee", s.Items[0].ProductID)
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	s := AddItem(model.NewCartState(), lamp(1))
	out := RemoveItem(s, "p-ghost", "")

	assert.Equal(t, s, out)
}

func TestSetQuantity_Overwrites(t *testing.T) {
	s := AddItem(model.NewCartState(), lamp(2))
	s = SetQuantity(s, "p-desk-lamp", "", 7)

	require.Len(t, s.Items, 1)
	assert.Equal(t, 7, s.Items[0].Quantity)
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	s := AddItem(model.NewCartState(), lamp(2))
	s = SetQuantity(s, "p-desk-lamp", "", 0)

	assert.Empty(t, s.Items)
}

func TestSetQuantity_NegativeRemovesLine(t *testing.T) {
	s := AddItem(model.NewCartState(), lamp(2))
	s = SetQuantity(s, "p-desk-lamp", "", -3)

	assert.Empty(t, s.Items)
}

func TestSetQuantity_AbsentIsNoop(t *testing.T) {
	s := AddItem(model.NewCartState(), lamp(2))
	out := SetQuantity(s, "p-ghost", "", 5)

	assert.Equal(t, s, out)
}

func TestIncrement(t *testing.T) {
	s := AddItem(model.NewCartState(), lamp(2))
	s = Increment(s, "p-desk-lamp", "", 3)

	assert.Equal(t, 5, s.Items[0].Quantity)
}

func TestIncrement_NeverCreatesLine(t *testing.T) {
	s := Increment(model.NewCartState(), "p-desk-lamp", "", 1)

	assert.Empty(t, s.Items)
}

func TestClear(t *testing.T) {
	s := AddItem(model.NewCartState(), lamp(2))
	s = Clear(s)

	assert.NotNil(t, s.Items)
	assert.Empty(t, s.Items)
	assert.Equal(t, model.SchemaVersion, s.Version)
}

func TestHydrate_ReplacesWholesale(t *testing.T) {
	current := AddItem(model.NewCartState(), lamp(2))
	incoming := AddItem(model.NewCartState(), tee("red", 1))

	s := Hydrate(current, incoming)

	require.Len(t, s.Items, 1)
	assert.Equal(t, "p-tee", s.Items[0].ProductID)
}

func TestHydrate_NormalizesNilItemsAndVersion(t *testing.T) {
	s := Hydrate(model.NewCartState(), model.CartState{})

	assert.NotNil(t, s.Items)
	assert.Equal(t, model.SchemaVersion, s.Version)
}

func TestTotals(t *testing.T) {
	s := AddItem(model.NewCartState(), lamp(2))
	s = AddItem(s, tee("red", 3))

	totals := Totals(s)

	// 2*2499 + 3*1999
	assert.Equal(t, int64(10995), totals.SubtotalCents)
	assert.Equal(t, 5, totals.ItemCount)
}

func TestTotals_EmptyCart(t *testing.T) {
	totals := Totals(model.NewCartState())

	assert.Zero(t, totals.SubtotalCents)
	assert.Zero(t, totals.ItemCount)
}

func TestTransitionsDoNotMutateInput(t *testing.T) {
	s := AddItem(model.NewCartState(), lamp(2))
	s = AddItem(s, tee("red", 1))

	AddItem(s, lamp(5))
	SetQuantity(s, "p-desk-lamp", "", 9)
	Increment(s, "p-tee", "red", 4)
	RemoveItem(s, "p-desk-lamp", "")
	Clear(s)

	require.Len(t, s.Items, 2)
	assert.Equal(t, 2, s.Items[0].Quantity)
	assert.Equal(t, 1, s.Items[1].Quantity)
}
