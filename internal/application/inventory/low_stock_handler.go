package inventory

import (
	"context"
	"fmt"

	"github.com/almacen/backend/internal/domain/inventory"
	"github.com/almacen/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LowStockHandler handles StockBelowMinimumEvent and surfaces
// replenishment warnings. Delivery beyond the log (mail, webhooks)
// is left to external systems tailing it.
type LowStockHandler struct {
	logger *zap.Logger
}

// NewLowStockHandler creates a new handler for low stock events
func NewLowStockHandler(logger *zap.Logger) *LowStockHandler {
	return &LowStockHandler{
		logger: logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowMinimum}
}

// Handle processes a StockBelowMinimumEvent
func (h *LowStockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	lowStockEvent, ok := event.(*inventory.StockBelowMinimumEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", inventory.EventTypeStockBelowMinimum),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeStockBelowMinimum, event.EventType())
	}

	h.logger.Warn("stock below minimum",
		zap.String("product_id", lowStockEvent.ProductID.String()),
		zap.Int64("quantity", lowStockEvent.Quantity),
		zap.Int64("min_stock", lowStockEvent.MinStock),
	)

	return nil
}

// Ensure LowStockHandler implements shared.EventHandler
var _ shared.EventHandler = (*LowStockHandler)(nil)
