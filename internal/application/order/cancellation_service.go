package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/minishop/backend/internal/domain/catalog"
	"github.com/minishop/backend/internal/domain/identity"
	"github.com/minishop/backend/internal/domain/order"
	"github.com/minishop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const cancelReason = "User cancelled"

// CancellationService cancels orders and applies the cancellation governor.
//
// Cancelling restores the reserved stock and bumps the caller's sliding
// 24h/7d cancellation counters; crossing a threshold blocks the account.
// The cancellation itself is the terminal action: once the order is
// CANCELLED and stock restored, counter bookkeeping failures are logged
// but never fail the request.
type CancellationService struct {
	orders   order.Repository
	products catalog.ProductRepository
	users    identity.UserRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewCancellationService creates a new CancellationService
func NewCancellationService(orders order.Repository, products catalog.ProductRepository, users identity.UserRepository, logger *zap.Logger) *CancellationService {
	return &CancellationService{
		orders:   orders,
		products: products,
		users:    users,
		logger:   logger,
		now:      time.Now,
	}
}

// Cancel cancels a PENDING order owned by the given user. Cancelling an
// already-CANCELLED order is idempotent and does not touch stock or
// counters.
func (s *CancellationService) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*CancelResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !o.IsOwnedBy(userID) {
		return nil, shared.ErrForbidden
	}

	if o.IsCancelled() {
		resp := &CancelResponse{
			Order:            ToOrderResponse(o),
			AlreadyCancelled: true,
		}
		s.fillCounters(ctx, userID, resp)
		return resp, nil
	}

	if !o.IsPending() {
		return nil, shared.NewDomainError("INVALID_STATE",
			"Cannot cancel order in status: "+o.Status.String())
	}

	// Restore stock before flipping the status. Products removed from the
	// catalog since checkout are tolerated; the remaining items are still
	// restored.
	for _, item := range o.Items {
		if err := s.products.Release(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Warn("failed to restore stock on cancellation",
				zap.String("order_id", o.ID.String()),
				zap.String("product_id", item.ProductID.String()),
				zap.Int64("quantity", item.Quantity),
				zap.Error(err),
			)
		}
	}

	now := s.now()
	if err := o.Cancel(cancelReason, now); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order cancelled",
		zap.String("order_id", o.ID.String()),
		zap.String("user_id", userID.String()),
	)

	resp := &CancelResponse{Order: ToOrderResponse(o)}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load user for cancellation counters",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return resp, nil
	}

	user.RecordCancellation(now)

	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Warn("failed to save cancellation counters",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return resp, nil
	}

	if user.BlockedUntil != nil && user.BlockedUntil.After(now) {
		s.logger.Warn("user blocked for excessive cancellations",
			zap.String("user_id", userID.String()),
			zap.Int("cancel_count_24h", user.CancelCount24h),
			zap.Int("cancel_count_7d", user.CancelCount7d),
			zap.Time("blocked_until", *user.BlockedUntil),
		)
	}

	resp.CancelCount24h = user.CancelCount24h
	resp.CancelCount7d = user.CancelCount7d
	resp.BlockedUntil = user.BlockedUntil
	return resp, nil
}

func (s *CancellationService) fillCounters(ctx context.Context, userID uuid.UUID, resp *CancelResponse) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load user for cancellation counters",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return
	}
	resp.CancelCount24h = user.CancelCount24h
	resp.CancelCount7d = user.CancelCount7d
	resp.BlockedUntil = user.BlockedUntil
}
