package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/minishop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the status of an order
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// IsValid returns true if the status is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// String returns the status as a string
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if no further transitions are allowed
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransitionTo returns true if the transition is allowed.
// COMPLETED is reached only by the external fulfillment flow; this service
// itself only drives PENDING -> CANCELLED.
func (s Status) CanTransitionTo(target Status) bool {
	if s != StatusPending {
		return false
	}
	return target == StatusCancelled || target == StatusCompleted
}

// Item is an immutable snapshot of a product at checkout time.
// LineTotal is always Price * Quantity; the snapshot is decoupled from live
// product pricing so historical orders stay stable.
type Item struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"type:varchar(120);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity  int64           `gorm:"not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// NewItem builds an order item snapshot from reservation-time product data
func NewItem(productID uuid.UUID, name string, price decimal.Decimal, qty int64) (Item, error) {
	if productID == uuid.Nil {
		return Item{}, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if qty < 1 {
		return Item{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if price.IsNegative() {
		return Item{}, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return Item{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Name:       name,
		Price:      price,
		Quantity:   qty,
		LineTotal:  price.Mul(decimal.NewFromInt(qty)),
	}, nil
}

// Order is the record of a checkout attempt. Items and totals are immutable
// after creation; only the status metadata changes.
type Order struct {
	shared.BaseAggregateRoot
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Items        []Item          `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status       Status          `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a PENDING order from item snapshots.
// The total amount is derived from the line totals, never passed in.
func NewOrder(userID uuid.UUID, items []Item) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Order must have at least 1 item")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]Item, len(items)),
		TotalAmount:       decimal.Zero,
		Status:            StatusPending,
	}
	copy(o.Items, items)
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		o.TotalAmount = o.TotalAmount.Add(o.Items[i].LineTotal)
	}

	return o, nil
}

// IsOwnedBy returns true if the order belongs to the given user
func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.UserID == userID
}

// IsPending returns true if the order is awaiting fulfillment
func (o *Order) IsPending() bool {
	return o.Status == StatusPending
}

// IsCancelled returns true if the order has been cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}

// Cancel transitions the order to CANCELLED. Only PENDING orders can be
// cancelled; re-cancelling is handled idempotently by the caller before
// reaching this method.
func (o *Order) Cancel(reason string, now time.Time) error {
	if !o.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel order in status: "+o.Status.String())
	}

	o.Status = StatusCancelled
	cancelledAt := now
	o.CancelledAt = &cancelledAt
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}
