package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	tests := []struct {
		name      string
		prodName  string
		price     decimal.Decimal
		stock     int64
		expectErr bool
	}{
		{"valid product", "Widget", decimal.NewFromFloat(9.99), 10, false},
		{"zero price allowed", "Freebie", decimal.Zero, 5, false},
		{"zero stock allowed", "Sold out", decimal.NewFromInt(1), 0, false},
		{"empty name", "", decimal.NewFromInt(1), 1, true},
		{"negative price", "Widget", decimal.NewFromInt(-1), 1, true},
		{"negative stock", "Widget", decimal.NewFromInt(1), -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProduct(tt.prodName, "", tt.price, tt.stock)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, p.Active)
			assert.Equal(t, tt.stock, p.Stock)
		})
	}
}

func TestProduct_HasStock(t *testing.T) {
	p, err := NewProduct("Widget", "", decimal.NewFromInt(5), 3)
	require.NoError(t, err)

	assert.True(t, p.HasStock(3))
	assert.False(t, p.HasStock(4))
}

func TestProduct_LineTotal(t *testing.T) {
	p, err := NewProduct("Widget", "", decimal.NewFromFloat(2.50), 10)
	require.NoError(t, err)

	assert.True(t, p.LineTotal(4).Equal(decimal.NewFromInt(10)))
}

func TestProduct_Deactivate(t *testing.T) {
	p, err := NewProduct("Widget", "", decimal.NewFromInt(5), 3)
	require.NoError(t, err)

	p.Deactivate()
	assert.False(t, p.IsActive())

	p.Activate()
	assert.True(t, p.IsActive())
}
