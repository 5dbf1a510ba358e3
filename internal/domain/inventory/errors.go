package inventory

import (
	"fmt"

	"github.com/almacen/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InsufficientStockError is returned when an outbound movement would
// drive the on-hand quantity below zero.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested int64
	Available int64
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// Unwrap allows errors.Is checks against the shared sentinel
func (e *InsufficientStockError) Unwrap() error {
	return shared.ErrInsufficientStock
}

// NewInsufficientStockError creates a new InsufficientStockError
func NewInsufficientStockError(productID uuid.UUID, requested, available int64) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID: productID,
		Requested: requested,
		Available: available,
	}
}
