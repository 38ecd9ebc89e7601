package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/minishop/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Save(ctx context.Context, order *Order) error
}
