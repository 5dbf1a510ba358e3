package trade

// OrderStatus represents the lifecycle state of an order.
// Both purchase and sales orders share the same transition table.
type OrderStatus string

const (
	// OrderStatusPending is the initial state; no stock effects yet
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusCompleted means the order's stock effects were applied
	OrderStatusCompleted OrderStatus = "COMPLETED"
	// OrderStatusCancelled is terminal; any applied stock effects were reversed
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusCompleted || target == OrderStatusCancelled
	case OrderStatusCompleted:
		return target == OrderStatusCancelled
	case OrderStatusCancelled:
		return false // Terminal state
	}
	return false
}

// IsTerminal returns true if no further transitions are allowed
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled
}

// AllowsLineMutation returns true if order lines may still be changed
func (s OrderStatus) AllowsLineMutation() bool {
	return s == OrderStatusPending
}
