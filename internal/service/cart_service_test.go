package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	errx "github.com/Cheertaboi/storefront-service/internal/core/error"
	"github.com/Cheertaboi/storefront-service/internal/models"
)

func TestAggregateCart_Totals(t *testing.T) {
	lookup := new(mockLookup)
	lookup.On("Lookup", mock.Anything, "a").Return(product("a", 100), nil)
	lookup.On("Lookup", mock.Anything, "b").Return(product("b", 25), nil)

	summary, err := AggregateCart(context.Background(), map[string]int{"b": 2, "a": 2}, lookup, 4)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Count)
	assert.True(t, summary.Amount.Equal(decimal.NewFromInt(250)), "amount %s", summary.Amount)
	require.Len(t, summary.Items, 2)
	assert.Equal(t, "a", summary.Items[0].Product.ID)
	assert.True(t, summary.Items[0].LineTotal.Equal(decimal.NewFromInt(200)))
	assert.Empty(t, summary.StaleItems)
}

func TestAggregateCart_FlagsOrphans(t *testing.T) {
	lookup := new(mockLookup)
	lookup.On("Lookup", mock.Anything, "live").Return(product("live", 10), nil)
	lookup.On("Lookup", mock.Anything, "gone").Return(nil, nil)

	summary, err := AggregateCart(context.Background(), map[string]int{"live": 1, "gone": 3}, lookup, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Count)
	assert.True(t, summary.Amount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, []models.StaleItem{{ProductID: "gone", Quantity: 3}}, summary.StaleItems)
}

func TestAggregateCart_Empty(t *testing.T) {
	summary, err := AggregateCart(context.Background(), map[string]int{}, new(mockLookup), 2)
	require.NoError(t, err)
	assert.Zero(t, summary.Count)
	assert.True(t, summary.Amount.IsZero())
	assert.NotNil(t, summary.Items)
}

func TestAggregateCart_LookupErrorFails(t *testing.T) {
	lookup := new(mockLookup)
	lookup.On("Lookup", mock.Anything, "a").Return(nil, errStoreDown)

	_, err := AggregateCart(context.Background(), map[string]int{"a": 1}, lookup, 1)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestCartSession_Flow(t *testing.T) {
	ctx := context.Background()
	sf := newStorefront(t)
	watch := sf.seedProduct(t, "Watch", 100)
	shoe := sf.seedProduct(t, "Shoe", 50)

	cart := sf.carts.Session("u1")

	for i := 0; i < 3; i++ {
		_, err := cart.Add(ctx, watch.ID)
		require.NoError(t, err)
	}
	summary, err := cart.Add(ctx, shoe.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Count())
	assert.True(t, summary.Amount.Equal(decimal.NewFromInt(350)))

	summary, err = cart.SetQuantity(ctx, watch.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.True(t, summary.Amount.Equal(decimal.NewFromInt(150)))

	_, err = cart.SetQuantity(ctx, watch.ID, 0)
	require.NoError(t, err)
	summary, err = cart.Remove(ctx, shoe.ID)
	require.NoError(t, err)

	assert.Zero(t, summary.Count)
	assert.True(t, summary.Amount.IsZero())
	assert.Empty(t, summary.Items)
	assert.Equal(t, summary, cart.Summary())
}

func TestCartSession_AddUnknownProduct(t *testing.T) {
	sf := newStorefront(t)
	_, err := sf.carts.Session("u1").Add(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)

	docs, err := sf.store.List(context.Background(), "users/u1/cart")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCartSession_RequiresUser(t *testing.T) {
	sf := newStorefront(t)
	_, err := sf.carts.Session("").Refresh(context.Background())

	var appErr *errx.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.Status)
}

func TestCartSession_DeletedProductBecomesStale(t *testing.T) {
	ctx := context.Background()
	sf := newStorefront(t)
	require.NoError(t, sf.store.Set(ctx, "users/u1/cart", "ghost", []byte(`{"quantity":2}`)))

	summary, err := sf.carts.Session("u1").Refresh(ctx)
	require.NoError(t, err)
	assert.Zero(t, summary.Count)
	assert.Equal(t, []models.StaleItem{{ProductID: "ghost", Quantity: 2}}, summary.StaleItems)
}

func TestCartSession_InvalidProductDocumentBecomesStale(t *testing.T) {
	ctx := context.Background()
	sf := newStorefront(t)
	p := sf.seedProduct(t, "Shoe", 40)
	require.NoError(t, sf.store.Set(ctx, "products", "broken", []byte(`{"category":"Shoes","price":"-5"}`)))
	require.NoError(t, sf.store.Set(ctx, "users/u1/cart", "broken", []byte(`{"quantity":1}`)))
	require.NoError(t, sf.store.Set(ctx, "users/u1/cart", p.ID, []byte(`{"quantity":2}`)))

	summary, err := sf.carts.Session("u1").Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.True(t, summary.Amount.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, []models.StaleItem{{ProductID: "broken", Quantity: 1}}, summary.StaleItems)
}
