package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/minishop/backend/internal/application/order"
	"github.com/minishop/backend/internal/interfaces/http/dto"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	checkout     *orderapp.CheckoutService
	cancellation *orderapp.CancellationService
	orders       *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(checkout *orderapp.CheckoutService, cancellation *orderapp.CancellationService, orders *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{
		checkout:     checkout,
		cancellation: cancellation,
		orders:       orders,
	}
}

// Checkout handles POST /api/v1/orders/checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req orderapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeValidation, err.Error())
		return
	}

	resp, err := h.checkout.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Cancel handles PATCH /api/v1/orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.Error(c, 400, dto.ErrCodeValidation, "Invalid order ID")
		return
	}

	resp, err := h.cancellation.Cancel(c.Request.Context(), userID, uuid.MustParse(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.Error(c, 400, dto.ErrCodeValidation, "Invalid order ID")
		return
	}

	resp, err := h.orders.Get(c.Request.Context(), userID, uuid.MustParse(idReq.ID), isAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /api/v1/orders/myOrders
func (h *OrderHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req orderapp.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeValidation, err.Error())
		return
	}

	resp, err := h.orders.List(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.PageSize)
}
