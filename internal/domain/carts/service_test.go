package carts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(productID uint, price int64, qty int) CartItem {
	return CartItem{ProductID: productID, UnitPrice: price, Quantity: qty, AddedAt: time.Now()}
}

func TestOwner(t *testing.T) {
	assert.True(t, Anonymous("sess-1").IsAnonymous())
	assert.False(t, Authenticated(4).IsAnonymous())

	assert.True(t, Anonymous("sess-1").Valid())
	assert.True(t, Authenticated(4).Valid())
	assert.False(t, Owner{}.Valid())
}

func TestFoldItemsSumsQuantities(t *testing.T) {
	dst := []CartItem{item(1, 1000, 2)}
	src := []CartItem{item(1, 1200, 3)}

	out := FoldItems(dst, src)

	require.Len(t, out, 1)
	assert.Equal(t, 5, out[0].Quantity)
	// the authenticated cart's frozen price wins
	assert.Equal(t, int64(1000), out[0].UnitPrice)
}

func TestFoldItemsCarriesNewProducts(t *testing.T) {
	dst := []CartItem{item(1, 1000, 1)}
	src := []CartItem{item(2, 500, 4)}

	out := FoldItems(dst, src)

	require.Len(t, out, 2)
	assert.Equal(t, uint(2), out[1].ProductID)
	assert.Equal(t, int64(500), out[1].UnitPrice, "anonymous frozen price carries over")
	assert.Equal(t, 4, out[1].Quantity)
}

func TestFoldItemsEmptySource(t *testing.T) {
	dst := []CartItem{item(1, 1000, 1)}

	out := FoldItems(dst, nil)

	assert.Equal(t, dst, out)
}

func TestFoldItemsEmptyDestination(t *testing.T) {
	src := []CartItem{item(1, 1000, 1), item(2, 500, 2)}

	out := FoldItems(nil, src)

	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Quantity)
	assert.Equal(t, 2, out[1].Quantity)
}

// Folding the same source twice must not double quantities when the first
// fold's result is the destination and the source is gone: idempotence of
// the merge comes from deleting the source, folding an empty source is a
// no-op.
func TestFoldItemsIdempotentAfterSourceDrained(t *testing.T) {
	dst := []CartItem{item(1, 1000, 2)}
	src := []CartItem{item(1, 1200, 3)}

	first := FoldItems(dst, src)
	second := FoldItems(first, nil)

	assert.Equal(t, first, second)
}

func TestFoldItemsDoesNotMutateInputs(t *testing.T) {
	dst := []CartItem{item(1, 1000, 2)}
	src := []CartItem{item(1, 1200, 3)}

	_ = FoldItems(dst, src)

	assert.Equal(t, 2, dst[0].Quantity)
	assert.Equal(t, 3, src[0].Quantity)
}
