package inventory

import (
	"github.com/almacen/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeStockRecord = "StockRecord"

// Event type constants
const (
	EventTypeStockAdjusted     = "StockAdjusted"
	EventTypeStockBelowMinimum = "StockBelowMinimum"
)

// StockAdjustedEvent is raised when stock is corrected by a manual adjustment
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	OldQuantity int64     `json:"old_quantity"`
	NewQuantity int64     `json:"new_quantity"`
	Reason      string    `json:"reason"`
}

// NewStockAdjustedEvent creates a new StockAdjustedEvent
func NewStockAdjustedEvent(record *StockRecord, oldQuantity int64, reason string) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdjusted, AggregateTypeStockRecord, record.ID),
		ProductID:       record.ProductID,
		OldQuantity:     oldQuantity,
		NewQuantity:     record.Quantity,
		Reason:          reason,
	}
}

// StockBelowMinimumEvent is raised when a movement leaves a product
// below its minimum stock threshold
type StockBelowMinimumEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	MinStock  int64     `json:"min_stock"`
}

// NewStockBelowMinimumEvent creates a new StockBelowMinimumEvent
func NewStockBelowMinimumEvent(record *StockRecord, minStock int64) *StockBelowMinimumEvent {
	return &StockBelowMinimumEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowMinimum, AggregateTypeStockRecord, record.ID),
		ProductID:       record.ProductID,
		Quantity:        record.Quantity,
		MinStock:        minStock,
	}
}
