package trade

import (
	"time"

	"github.com/almacen/backend/internal/domain/shared"
	"github.com/almacen/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine represents a line item in an order.
// The unit price is captured at line-creation time and does not follow
// later catalog price changes. Lines become immutable once the parent
// order leaves PENDING.
type OrderLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	ProductCode string          `gorm:"type:varchar(50);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(18,2);not null"` // Quantity * UnitPrice
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// NewOrderLine creates a new order line
func NewOrderLine(orderID, productID uuid.UUID, productName, productCode string, quantity int64, unitPrice valueobject.Money) (*OrderLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	price := unitPrice.Amount()

	return &OrderLine{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		ProductCode: productCode,
		Quantity:    quantity,
		UnitPrice:   price,
		Subtotal:    price.Mul(decimal.NewFromInt(quantity)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateQuantity updates the line quantity and recalculates the subtotal
func (l *OrderLine) UpdateQuantity(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	l.Quantity = quantity
	l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(quantity))
	l.UpdatedAt = time.Now()

	return nil
}

// UpdateUnitPrice updates the unit price and recalculates the subtotal
func (l *OrderLine) UpdateUnitPrice(unitPrice valueobject.Money) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	l.UnitPrice = unitPrice.Amount()
	l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
	l.UpdatedAt = time.Now()

	return nil
}

// GetSubtotalMoney returns the subtotal as a Money value object
func (l *OrderLine) GetSubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyCOP(l.Subtotal)
}

// GetUnitPriceMoney returns the unit price as a Money value object
func (l *OrderLine) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyCOP(l.UnitPrice)
}
