package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for carts.
// Save must replace the cart's line items so removed lines do not linger.
type Repository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
}
