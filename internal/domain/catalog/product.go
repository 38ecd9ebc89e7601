package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minishop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item in the catalog.
// It is the aggregate root for catalog operations; the stock counter is
// additionally mutated through the repository's atomic Reserve/Release
// primitives during checkout and cancellation.
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(120);not null;index"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Stock       int64           `gorm:"not null;default:0"`
	Active      bool            `gorm:"not null;default:true;index"`
	CreatedBy   *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product
func NewProduct(name, description string, price decimal.Decimal, stock int64) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       strings.TrimSpace(description),
		Price:             price,
		Stock:             stock,
		Active:            true,
	}, nil
}

// SetCreatedBy records the admin user that created the product
func (p *Product) SetCreatedBy(userID uuid.UUID) {
	p.CreatedBy = &userID
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = strings.TrimSpace(description)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPrice updates the selling price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetStock replaces the stock counter (admin adjustment, not a reservation)
func (p *Product) SetStock(stock int64) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	p.Stock = stock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Activate makes the product sellable again
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate hides the product from checkout and cart additions
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsActive returns true if the product can be sold
func (p *Product) IsActive() bool {
	return p.Active
}

// HasStock returns true if the available stock can cover the quantity
func (p *Product) HasStock(qty int64) bool {
	return p.Stock >= qty
}

// LineTotal returns the price for the given quantity
func (p *Product) LineTotal(qty int64) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(qty))
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 120 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 120 characters")
	}
	return nil
}
