package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/minishop/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products.
//
// Reserve and Release are the inventory-store primitives used by checkout and
// cancellation. Reserve must be a single atomic conditional decrement against
// the backing store; overselling prevention rests entirely on it.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Reserve atomically decrements stock by qty if and only if the product
	// exists, is active, and has stock >= qty. On success it returns the
	// post-decrement product (price at reservation time). Otherwise it
	// returns shared.ErrInsufficientStock and leaves the row untouched.
	Reserve(ctx context.Context, id uuid.UUID, qty int64) (*Product, error)

	// Release atomically increments stock by qty. Returns shared.ErrNotFound
	// if the product no longer exists; callers treat that as a reported,
	// non-fatal inconsistency.
	Release(ctx context.Context, id uuid.UUID, qty int64) error
}
