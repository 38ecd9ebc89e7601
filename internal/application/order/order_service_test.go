package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	domainorder "github.com/minishop/backend/internal/domain/order"
	"github.com/minishop/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderService_Get(t *testing.T) {
	userID := uuid.New()
	o := pendingOrder(t, userID, map[uuid.UUID]int64{uuid.New(): 1})

	t.Run("owner can read own order", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		svc := NewOrderService(orders)
		resp, err := svc.Get(context.Background(), userID, o.ID, false)

		require.NoError(t, err)
		assert.Equal(t, o.ID.String(), resp.ID)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		svc := NewOrderService(orders)
		_, err := svc.Get(context.Background(), uuid.New(), o.ID, false)

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("admin can read any order", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		svc := NewOrderService(orders)
		resp, err := svc.Get(context.Background(), uuid.New(), o.ID, true)

		require.NoError(t, err)
		assert.Equal(t, o.ID.String(), resp.ID)
	})
}

func TestOrderService_List(t *testing.T) {
	userID := uuid.New()
	o1 := pendingOrder(t, userID, map[uuid.UUID]int64{uuid.New(): 1})
	o2 := pendingOrder(t, userID, map[uuid.UUID]int64{uuid.New(): 2})

	orders := new(MockOrderRepository)
	orders.On("FindByUser", mock.Anything, userID, mock.AnythingOfType("shared.Filter")).
		Return([]domainorder.Order{*o1, *o2}, nil)
	orders.On("CountByUser", mock.Anything, userID).Return(int64(2), nil)

	svc := NewOrderService(orders)
	resp, err := svc.List(context.Background(), userID, ListOrdersRequest{Page: 1, PageSize: 10})

	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, 10, resp.PageSize)
}
