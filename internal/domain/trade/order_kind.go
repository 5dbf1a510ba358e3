package trade

import "github.com/almacen/backend/internal/domain/inventory"

// OrderKind distinguishes purchase orders from sales orders.
// Both share the same lifecycle; the kind decides which direction
// stock moves when the order is confirmed.
type OrderKind string

const (
	OrderKindPurchase OrderKind = "PURCHASE"
	OrderKindSale     OrderKind = "SALE"
)

// String returns the string representation of OrderKind
func (k OrderKind) String() string {
	return string(k)
}

// IsValid returns true if the order kind is valid
func (k OrderKind) IsValid() bool {
	return k == OrderKindPurchase || k == OrderKindSale
}

// ConfirmDirection returns the stock direction applied when an order
// of this kind is confirmed
func (k OrderKind) ConfirmDirection() inventory.MovementDirection {
	if k == OrderKindPurchase {
		return inventory.MovementDirectionIn
	}
	return inventory.MovementDirectionOut
}

// ReverseDirection returns the stock direction applied when a
// completed order of this kind is cancelled
func (k OrderKind) ReverseDirection() inventory.MovementDirection {
	return k.ConfirmDirection().Opposite()
}

// NumberPrefix returns the document number prefix for this kind
func (k OrderKind) NumberPrefix() string {
	if k == OrderKindPurchase {
		return "COMPRA"
	}
	return "VENTA"
}
