package cart

import (
	"time"

	"github.com/minishop/backend/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// AddItemRequest is the input for adding a product to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

// CartItemResponse is a cart line item
type CartItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartResponse is the public representation of a cart
type CartResponse struct {
	Items       []CartItemResponse `json:"items"`
	TotalItems  int64              `json:"total_items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ToCartResponse converts a cart aggregate to its response form
func ToCartResponse(c *cart.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, CartItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal,
		})
	}
	return CartResponse{
		Items:       items,
		TotalItems:  c.TotalItems,
		TotalAmount: c.TotalAmount,
		UpdatedAt:   c.UpdatedAt,
	}
}

// EmptyCartResponse is the response for a user with no cart yet
func EmptyCartResponse() CartResponse {
	return CartResponse{
		Items:       []CartItemResponse{},
		TotalAmount: decimal.Zero,
	}
}
