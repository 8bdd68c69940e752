package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prestige/internal/catalog"
	"prestige/internal/domain"
	"prestige/internal/money"
	"prestige/internal/services"
	"prestige/internal/store"
)

func newCart(t *testing.T) (*services.Cart, *store.Store) {
	t.Helper()
	st := store.New(store.NewMemory()).Namespace("sid-test")
	return services.NewCart(context.Background(), st, services.DefaultPricing()), st
}

func line(id, size, price string) domain.LineItem {
	return domain.LineItem{ID: id, Name: "Nexus Noir", SelectedSize: size, Price: money.MustParse(price)}
}

func asJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestCart_AddToEmpty(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)

	items, err := c.AddItem(ctx, line("1", "10ml", "99.00"), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 1, c.TotalItems())
}

func TestCart_AddSameVariantMerges(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)

	for _, q := range []int{1, 1, 3} {
		_, err := c.AddItem(ctx, line("1", "10ml", "99.00"), q)
		require.NoError(t, err)
	}
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCart_TwoSizesPricedSeparately(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)

	_, err := c.AddItem(ctx, line("1", "10ml", "99.00"), 1)
	require.NoError(t, err)
	_, err = c.AddItem(ctx, line("1", "30ml", "190.00"), 1)
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity, "adding 30ml must not touch the 10ml line")

	tot := c.Totals()
	assert.Equal(t, "289.00", tot.Subtotal.String())
	assert.Equal(t, "34.68", tot.Tax.String())
	assert.Equal(t, "100.00", tot.Shipping.String())
	assert.Equal(t, "423.68", tot.Total.String())
	assert.True(t, tot.Total.Equal(tot.Subtotal.Add(tot.Tax).Add(tot.Shipping)))
}

func TestCart_UpdateQuantityZeroRemoves(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)
	_, _ = c.AddItem(ctx, line("1", "10ml", "99.00"), 2)
	_, _ = c.AddItem(ctx, line("2", "10ml", "99.00"), 1)

	items, err := c.UpdateQuantity(ctx, "1", 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)

	items, err = c.UpdateQuantity(ctx, "2", -4)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCart_UpdateQuantityMatchesRemoveItem(t *testing.T) {
	ctx := context.Background()
	a, _ := newCart(t)
	b, _ := newCart(t)
	for _, c := range []*services.Cart{a, b} {
		_, _ = c.AddItem(ctx, line("1", "10ml", "99.00"), 1)
		_, _ = c.AddItem(ctx, line("1", "30ml", "190.00"), 1)
		_, _ = c.AddItem(ctx, line("3", "50ml", "342.00"), 1)
	}

	viaUpdate, err := a.UpdateQuantity(ctx, "1", 0)
	require.NoError(t, err)
	viaRemove, err := b.RemoveItem(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, asJSON(t, viaRemove), asJSON(t, viaUpdate))
	assert.Len(t, viaUpdate, 1)
}

func TestCart_UpdateQuantitySetsFirstLine(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)
	_, _ = c.AddItem(ctx, line("1", "10ml", "99.00"), 1)
	_, _ = c.AddItem(ctx, line("1", "30ml", "190.00"), 1)

	items, err := c.UpdateQuantity(ctx, "1", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)

	items, err = c.UpdateVariantQuantity(ctx, "1", "30ml", 2)
	require.NoError(t, err)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, 2, items[1].Quantity)
	assert.Equal(t, 6, c.TotalItems())
}

func TestCart_RemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)
	_, _ = c.AddItem(ctx, line("1", "10ml", "99.00"), 2)
	before := asJSON(t, c.Items())

	after, err := c.RemoveItem(ctx, "nope")
	require.NoError(t, err)
	assert.Equal(t, before, asJSON(t, after))

	after, err = c.RemoveVariant(ctx, "1", "50ml")
	require.NoError(t, err)
	assert.Equal(t, before, asJSON(t, after))

	after, err = c.UpdateQuantity(ctx, "nope", 3)
	require.NoError(t, err)
	assert.Equal(t, before, asJSON(t, after))
}

func TestCart_RemoveVariantKeepsOtherSizes(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)
	_, _ = c.AddItem(ctx, line("1", "10ml", "99.00"), 1)
	_, _ = c.AddItem(ctx, line("1", "30ml", "190.00"), 1)

	items, err := c.RemoveVariant(ctx, "1", "10ml")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "30ml", items[0].SelectedSize)
}

func TestCart_EmptyIDIgnored(t *testing.T) {
	c, _ := newCart(t)
	items, err := c.AddItem(context.Background(), line("", "10ml", "99.00"), 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCart_ClearPersistsEmpty(t *testing.T) {
	ctx := context.Background()
	c, st := newCart(t)
	_, _ = c.AddItem(ctx, line("1", "10ml", "99.00"), 3)
	_, _ = c.AddItem(ctx, line("2", "50ml", "345.00"), 1)

	items, err := c.Clear(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 0, c.TotalItems())
	assert.True(t, c.IsEmpty())

	raw, ok := st.LoadRaw(ctx, store.CartKey)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestCart_EmptyTotalsStillShip(t *testing.T) {
	c, _ := newCart(t)
	tot := c.Totals()
	assert.True(t, tot.Subtotal.IsZero())
	assert.True(t, tot.Tax.IsZero())
	assert.Equal(t, "100.00", tot.Total.String())
}

func TestCart_SurvivesReload(t *testing.T) {
	ctx := context.Background()
	c, st := newCart(t)
	_, _ = c.AddItem(ctx, line("1", "10ml", "99.00"), 2)
	_, _ = c.AddItem(ctx, line("3", "30ml", "190.00"), 1)

	again := services.NewCart(ctx, st, services.DefaultPricing())
	assert.Equal(t, asJSON(t, c.Items()), asJSON(t, again.Items()))
	assert.Equal(t, 3, again.TotalItems())
}

func TestCart_CorruptRecordStartsEmpty(t *testing.T) {
	ctx := context.Background()
	b := store.NewMemory()
	require.NoError(t, b.Set(ctx, "sid-x/"+store.CartKey, "{not json"))

	c := services.NewCart(ctx, store.New(b).Namespace("sid-x"), services.DefaultPricing())
	assert.True(t, c.IsEmpty())
}

func TestPricing_Compute(t *testing.T) {
	p := services.DefaultPricing()
	items := []domain.LineItem{
		{ID: "1", Price: money.MustParse("339.00"), Quantity: 2},
		{ID: "2", Price: money.MustParse("0.10"), Quantity: 3},
	}
	tot := p.Compute(items)
	assert.Equal(t, "678.30", tot.Subtotal.String())
	assert.Equal(t, "81.40", tot.Tax.String())
	assert.True(t, tot.Total.Equal(tot.Subtotal.Add(tot.Tax).Add(tot.Shipping)))
}

func TestCartService_Add(t *testing.T) {
	ctx := context.Background()
	svc := services.NewCartService(catalog.Default(), services.DefaultPricing())
	c := svc.Open(ctx, store.New(store.NewMemory()))

	li, err := svc.Add(ctx, c, "1", "", 1)
	require.NoError(t, err)
	assert.Equal(t, "10ml", li.SelectedSize)
	assert.Equal(t, "Nexus Noir", li.Name)
	assert.Equal(t, "99.00", li.Price.String())
	assert.Equal(t, "149.00", li.OriginalPrice.String())

	_, err = svc.Add(ctx, c, "1", "50ml", 2)
	require.NoError(t, err)
	assert.Equal(t, "777.00", c.Totals().Subtotal.String())

	_, err = svc.Add(ctx, c, "404", "10ml", 1)
	assert.ErrorIs(t, err, services.ErrUnknownProduct)
	_, err = svc.Add(ctx, c, "1", "100ml", 1)
	assert.ErrorIs(t, err, services.ErrUnknownSize)
	assert.Equal(t, 3, c.TotalItems())
}
