package order

import (
	"time"

	"github.com/minishop/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// CheckoutItemRequest is one requested line in a checkout
type CheckoutItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest is the input for placing an order
type CheckoutRequest struct {
	Items []CheckoutItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ListOrdersRequest carries pagination parameters
type ListOrdersRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OrderItemResponse is an order line item snapshot
type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderResponse is the public representation of an order
type OrderResponse struct {
	ID           string              `json:"id"`
	UserID       string              `json:"user_id"`
	Items        []OrderItemResponse `json:"items"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	Status       string              `json:"status"`
	CancelledAt  *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason string              `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// ListOrdersResponse is a page of orders
type ListOrdersResponse struct {
	Items    []OrderResponse `json:"items"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// CancelResponse is returned from order cancellation. It includes the
// caller's abuse counters so clients can surface how close the account is
// to a block.
type CancelResponse struct {
	Order            OrderResponse `json:"order"`
	AlreadyCancelled bool          `json:"already_cancelled"`
	CancelCount24h   int           `json:"cancel_count_24h"`
	CancelCount7d    int           `json:"cancel_count_7d"`
	BlockedUntil     *time.Time    `json:"blocked_until,omitempty"`
}

// ToOrderResponse converts an order aggregate to its response form
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal,
		})
	}
	return OrderResponse{
		ID:           o.ID.String(),
		UserID:       o.UserID.String(),
		Items:        items,
		TotalAmount:  o.TotalAmount,
		Status:       o.Status.String(),
		CancelledAt:  o.CancelledAt,
		CancelReason: o.CancelReason,
		CreatedAt:    o.CreatedAt,
	}
}
