package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/minishop/backend/internal/domain/order"
	"github.com/minishop/backend/internal/domain/shared"
)

// OrderService handles order queries
type OrderService struct {
	orders order.Repository
}

// NewOrderService creates a new OrderService
func NewOrderService(orders order.Repository) *OrderService {
	return &OrderService{orders: orders}
}

// Get retrieves a single order. Non-admin callers can only see their own.
func (s *OrderService) Get(ctx context.Context, userID, orderID uuid.UUID, isAdmin bool) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !o.IsOwnedBy(userID) {
		return nil, shared.ErrForbidden
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// List returns a page of the user's orders, newest first
func (s *OrderService) List(ctx context.Context, userID uuid.UUID, req ListOrdersRequest) (*ListOrdersResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}

	orders, err := s.orders.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.orders.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToOrderResponse(&orders[i]))
	}

	return &ListOrdersResponse{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
