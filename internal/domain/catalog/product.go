package catalog

import (
	"strings"

	"github.com/almacen/backend/internal/domain/shared"
	"github.com/almacen/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product represents a product/SKU in the catalog
// It is the aggregate root for product-related operations
type Product struct {
	shared.BaseAggregateRoot
	Code          string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	Unit          string          `gorm:"type:varchar(20);not null"`             // Base unit (e.g., "unidad", "kg", "caja")
	PurchasePrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Cost price
	SalePrice     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Selling price
	MinStock      int64           `gorm:"not null;default:0"`                    // Minimum stock level for alerts
	Status        ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(code, name, unit string) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateUnit(unit); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Unit:              unit,
		PurchasePrice:     decimal.Zero,
		SalePrice:         decimal.Zero,
		MinStock:          0,
		Status:            ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// NewProductWithPrices creates a new product with prices
func NewProductWithPrices(code, name, unit string, purchasePrice, salePrice valueobject.Money) (*Product, error) {
	product, err := NewProduct(code, name, unit)
	if err != nil {
		return nil, err
	}

	if err := product.SetPrices(purchasePrice, salePrice); err != nil {
		return nil, err
	}

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description, unit string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validateUnit(unit); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Unit = unit
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetCategory sets the product category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.Touch()
	p.IncrementVersion()
}

// SetPrices sets both purchase and sale prices
func (p *Product) SetPrices(purchasePrice, salePrice valueobject.Money) error {
	if purchasePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}
	if salePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}

	p.PurchasePrice = purchasePrice.Amount()
	p.SalePrice = salePrice.Amount()
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetMinStock sets the minimum stock level for alerts
func (p *Product) SetMinStock(minStock int64) error {
	if minStock < 0 {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock cannot be negative")
	}

	p.MinStock = minStock
	p.Touch()
	p.IncrementVersion()

	return nil
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}

	p.Status = ProductStatusActive
	p.Touch()
	p.IncrementVersion()

	return nil
}

// Deactivate deactivates the product
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}

	p.Status = ProductStatusInactive
	p.Touch()
	p.IncrementVersion()

	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// HasCategory returns true if the product has a category assigned
func (p *Product) HasCategory() bool {
	return p.CategoryID != nil
}

// GetPurchasePriceMoney returns the purchase price as a Money value object
func (p *Product) GetPurchasePriceMoney() valueobject.Money {
	return valueobject.NewMoneyCOP(p.PurchasePrice)
}

// GetSalePriceMoney returns the sale price as a Money value object
func (p *Product) GetSalePriceMoney() valueobject.Money {
	return valueobject.NewMoneyCOP(p.SalePrice)
}

// validateProductCode validates the product code (SKU)
func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Product code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

// validateUnit validates the unit
func validateUnit(unit string) error {
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if len(unit) > 20 {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot exceed 20 characters")
	}
	return nil
}
