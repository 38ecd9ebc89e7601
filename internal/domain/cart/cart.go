package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/minishop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CartItem is a line item inside a cart. Name and price are snapshotted at
// add-time; LineTotal is always Price * Quantity.
type CartItem struct {
	shared.BaseEntity
	CartID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_cart_product,priority:1"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_cart_product,priority:2"`
	Quantity  int64           `gorm:"not null"`
	Name      string          `gorm:"type:varchar(120);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// Cart is the per-user shopping cart aggregate. One cart exists per user;
// it is created lazily on first add and never deleted afterwards.
//
// Invariants maintained on every mutation:
// TotalAmount == sum of item LineTotals, TotalItems == sum of item quantities.
type Cart struct {
	shared.BaseAggregateRoot
	UserID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Items       []CartItem      `gorm:"foreignKey:CartID;references:ID"`
	TotalItems  int64           `gorm:"not null;default:0"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty cart for a user
func NewCart(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]CartItem, 0),
		TotalAmount:       decimal.Zero,
	}, nil
}

// AddItem adds a product to the cart or merges into an existing line.
// The caller supplies the product's current name, price, and available stock;
// the resulting line quantity may not exceed the available stock.
func (c *Cart) AddItem(productID uuid.UUID, name string, price decimal.Decimal, available, qty int64) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if qty < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			newQty := c.Items[i].Quantity + qty
			if newQty > available {
				return shared.NewDomainError("INSUFFICIENT_STOCK", "Quantity exceeds available stock")
			}
			c.Items[i].Quantity = newQty
			c.Items[i].Name = name
			c.Items[i].Price = price
			c.Items[i].LineTotal = price.Mul(decimal.NewFromInt(newQty))
			c.Items[i].UpdatedAt = time.Now()
			c.recalculateTotals()
			return nil
		}
	}

	if qty > available {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Quantity exceeds available stock")
	}

	c.Items = append(c.Items, CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     c.ID,
		ProductID:  productID,
		Quantity:   qty,
		Name:       name,
		Price:      price,
		LineTotal:  price.Mul(decimal.NewFromInt(qty)),
	})
	c.recalculateTotals()
	return nil
}

// RemoveItem removes a product line from the cart. Removing a product that
// is not in the cart is a no-op.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	items := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	c.Items = items
	c.recalculateTotals()
}

// Clear removes all items from the cart
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
	c.recalculateTotals()
}

// IsEmpty returns true if the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// GetItem returns the line for a product, or nil if absent
func (c *Cart) GetItem(productID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) recalculateTotals() {
	var totalItems int64
	totalAmount := decimal.Zero
	for _, item := range c.Items {
		totalItems += item.Quantity
		totalAmount = totalAmount.Add(item.LineTotal)
	}
	c.TotalItems = totalItems
	c.TotalAmount = totalAmount
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
