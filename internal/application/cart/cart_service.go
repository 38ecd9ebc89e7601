package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/minishop/backend/internal/domain/cart"
	"github.com/minishop/backend/internal/domain/catalog"
	"github.com/minishop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CartService handles shopping cart operations
type CartService struct {
	carts    cart.Repository
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(carts cart.Repository, products catalog.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		logger:   logger,
	}
}

// Get returns the user's cart. Users without a cart get an empty one.
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	c, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			resp := EmptyCartResponse()
			return &resp, nil
		}
		return nil, err
	}
	resp := ToCartResponse(c)
	return &resp, nil
}

// AddItem adds a product to the user's cart, creating the cart on first use.
// The requested line quantity is capped by the product's current stock, but
// no stock is reserved until checkout.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid product ID")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.ErrNotFound
	}

	c, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		c, err = cart.NewCart(userID)
		if err != nil {
			return nil, err
		}
	}

	if err := c.AddItem(product.ID, product.Name, product.Price, product.Stock, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}

	resp := ToCartResponse(c)
	return &resp, nil
}

// RemoveItem removes a product line from the user's cart. Removing from a
// missing cart or a cart without that product is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartResponse, error) {
	c, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			resp := EmptyCartResponse()
			return &resp, nil
		}
		return nil, err
	}

	c.RemoveItem(productID)

	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}

	resp := ToCartResponse(c)
	return &resp, nil
}

// Clear removes all items from the user's cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	c, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			resp := EmptyCartResponse()
			return &resp, nil
		}
		return nil, err
	}

	c.Clear()

	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}

	resp := ToCartResponse(c)
	return &resp, nil
}
