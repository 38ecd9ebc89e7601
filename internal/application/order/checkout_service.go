package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/minishop/backend/internal/domain/catalog"
	"github.com/minishop/backend/internal/domain/order"
	"github.com/minishop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CheckoutService places orders with atomic multi-item stock reservation.
//
// Stock is reserved item by item through conditional decrements. If any
// reservation fails, or the order itself cannot be written, every
// reservation made so far is released again, so a failed checkout never
// leaks stock.
type CheckoutService struct {
	orders   order.Repository
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(orders order.Repository, products catalog.ProductRepository, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		products: products,
		logger:   logger,
	}
}

// Checkout reserves stock for every requested item and creates a PENDING
// order with price snapshots taken at reservation time
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Order must have at least 1 item")
	}

	type requestedItem struct {
		productID uuid.UUID
		quantity  int64
	}
	requested := make([]requestedItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid product ID: "+item.ProductID)
		}
		if item.Quantity < 1 {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Quantity must be at least 1")
		}
		requested = append(requested, requestedItem{productID: productID, quantity: item.Quantity})
	}

	ledger := order.NewReservationLedger()
	items := make([]order.Item, 0, len(requested))

	for _, r := range requested {
		product, err := s.products.Reserve(ctx, r.productID, r.quantity)
		if err != nil {
			s.releaseAll(ctx, ledger)
			if errors.Is(err, shared.ErrInsufficientStock) || errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
					"Insufficient stock for product "+r.productID.String())
			}
			return nil, err
		}
		ledger.Record(r.productID, r.quantity)

		item, err := order.NewItem(product.ID, product.Name, product.Price, r.quantity)
		if err != nil {
			s.releaseAll(ctx, ledger)
			return nil, err
		}
		items = append(items, item)
	}

	o, err := order.NewOrder(userID, items)
	if err != nil {
		s.releaseAll(ctx, ledger)
		return nil, err
	}

	if err := s.orders.Save(ctx, o); err != nil {
		s.logger.Error("order save failed, releasing reservations",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		s.releaseAll(ctx, ledger)
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("item_count", len(o.Items)),
	)

	resp := ToOrderResponse(o)
	return &resp, nil
}

// releaseAll returns every reserved quantity to stock. Releases are best
// effort: a failed release is logged and the remaining entries are still
// attempted.
func (s *CheckoutService) releaseAll(ctx context.Context, ledger *order.ReservationLedger) {
	for _, entry := range ledger.Entries() {
		if err := s.products.Release(ctx, entry.ProductID, entry.Quantity); err != nil {
			s.logger.Warn("failed to release reserved stock",
				zap.String("product_id", entry.ProductID.String()),
				zap.Int64("quantity", entry.Quantity),
				zap.Error(err),
			)
		}
	}
}
