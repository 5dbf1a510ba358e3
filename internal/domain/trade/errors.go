package trade

import (
	"fmt"

	"github.com/almacen/backend/internal/domain/shared"
)

// InvalidTransitionError is returned when an order lifecycle action is
// not allowed from the order's current status.
type InvalidTransitionError struct {
	Current   OrderStatus
	Attempted OrderStatus
}

// Error implements the error interface
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order transition from %s to %s", e.Current, e.Attempted)
}

// Unwrap allows errors.Is checks against the shared sentinel
func (e *InvalidTransitionError) Unwrap() error {
	return shared.ErrInvalidState
}

// NewInvalidTransitionError creates a new InvalidTransitionError
func NewInvalidTransitionError(current, attempted OrderStatus) *InvalidTransitionError {
	return &InvalidTransitionError{
		Current:   current,
		Attempted: attempted,
	}
}
