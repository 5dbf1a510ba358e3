package inventory

import (
	"github.com/almacen/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockRecord holds the current on-hand quantity for a product.
// It is the aggregate root for stock operations and acts as a cache
// over the movement log: the quantity must always equal the sum of
// signed movement quantities for the product.
type StockRecord struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Quantity  int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (StockRecord) TableName() string {
	return "stock_records"
}

// NewStockRecord creates a new stock record for a product with zero quantity
func NewStockRecord(productID uuid.UUID) (*StockRecord, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	return &StockRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Quantity:          0,
	}, nil
}

// Increase adds quantity to the record
func (r *StockRecord) Increase(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	r.Quantity += quantity
	r.Touch()
	r.IncrementVersion()

	return nil
}

// Decrease removes quantity from the record.
// Returns InsufficientStockError when the requested quantity exceeds
// the current balance; the record is left unchanged in that case.
func (r *StockRecord) Decrease(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if r.Quantity < quantity {
		return NewInsufficientStockError(r.ProductID, quantity, r.Quantity)
	}

	r.Quantity -= quantity
	r.Touch()
	r.IncrementVersion()

	return nil
}

// Apply applies a movement in the given direction
func (r *StockRecord) Apply(direction MovementDirection, quantity int64) error {
	switch direction {
	case MovementDirectionIn:
		return r.Increase(quantity)
	case MovementDirectionOut:
		return r.Decrease(quantity)
	default:
		return shared.NewDomainError("INVALID_DIRECTION", "Invalid movement direction")
	}
}

// SetQuantity overwrites the cached quantity.
// Used only when rebuilding the record from the movement log.
func (r *StockRecord) SetQuantity(quantity int64) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	r.Quantity = quantity
	r.Touch()
	r.IncrementVersion()

	return nil
}

// CanFulfill returns true if the current balance covers the requested quantity
func (r *StockRecord) CanFulfill(quantity int64) bool {
	return r.Quantity >= quantity
}

// IsBelowMinimum returns true if the balance is below the given threshold
func (r *StockRecord) IsBelowMinimum(minStock int64) bool {
	return minStock > 0 && r.Quantity < minStock
}
