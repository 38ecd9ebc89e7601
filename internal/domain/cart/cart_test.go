package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddItem(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	price := decimal.NewFromFloat(3.50)

	t.Run("new line", func(t *testing.T) {
		c, err := NewCart(userID)
		require.NoError(t, err)

		require.NoError(t, c.AddItem(productID, "Widget", price, 10, 2))

		require.Len(t, c.Items, 1)
		assert.Equal(t, int64(2), c.TotalItems)
		assert.True(t, c.TotalAmount.Equal(decimal.NewFromFloat(7.00)))
	})

	t.Run("merges into existing line", func(t *testing.T) {
		c, err := NewCart(userID)
		require.NoError(t, err)

		require.NoError(t, c.AddItem(productID, "Widget", price, 10, 2))
		require.NoError(t, c.AddItem(productID, "Widget", price, 10, 3))

		require.Len(t, c.Items, 1)
		assert.Equal(t, int64(5), c.Items[0].Quantity)
		assert.True(t, c.TotalAmount.Equal(decimal.NewFromFloat(17.50)))
	})

	t.Run("merge exceeding stock rejected", func(t *testing.T) {
		c, err := NewCart(userID)
		require.NoError(t, err)

		require.NoError(t, c.AddItem(productID, "Widget", price, 5, 3))
		err = c.AddItem(productID, "Widget", price, 5, 3)
		assert.Error(t, err)
		assert.Equal(t, int64(3), c.Items[0].Quantity)
	})

	t.Run("new line exceeding stock rejected", func(t *testing.T) {
		c, err := NewCart(userID)
		require.NoError(t, err)

		err = c.AddItem(productID, "Widget", price, 2, 3)
		assert.Error(t, err)
		assert.True(t, c.IsEmpty())
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		c, err := NewCart(userID)
		require.NoError(t, err)

		err = c.AddItem(productID, "Widget", price, 10, 0)
		assert.Error(t, err)
	})
}

func TestCart_RemoveItem(t *testing.T) {
	c, err := NewCart(uuid.New())
	require.NoError(t, err)

	p1, p2 := uuid.New(), uuid.New()
	require.NoError(t, c.AddItem(p1, "A", decimal.NewFromInt(1), 10, 1))
	require.NoError(t, c.AddItem(p2, "B", decimal.NewFromInt(2), 10, 2))

	c.RemoveItem(p1)

	require.Len(t, c.Items, 1)
	assert.Equal(t, p2, c.Items[0].ProductID)
	assert.Equal(t, int64(2), c.TotalItems)
	assert.True(t, c.TotalAmount.Equal(decimal.NewFromInt(4)))

	// Removing an absent product is a no-op.
	c.RemoveItem(uuid.New())
	assert.Len(t, c.Items, 1)
}

func TestCart_Clear(t *testing.T) {
	c, err := NewCart(uuid.New())
	require.NoError(t, err)

	require.NoError(t, c.AddItem(uuid.New(), "A", decimal.NewFromInt(1), 10, 3))
	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.TotalItems)
	assert.True(t, c.TotalAmount.IsZero())
}
