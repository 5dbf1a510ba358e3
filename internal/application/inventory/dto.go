package inventory

import (
	"time"

	"github.com/almacen/backend/internal/domain/inventory"
	"github.com/google/uuid"
)

// AdjustStockRequest represents a request for a manual stock
// correction. The caller states the counted quantity; the service
// records the IN or OUT delta against the current cache.
type AdjustStockRequest struct {
	NewQuantity *int64    `json:"new_quantity" binding:"required,gte=0"`
	Reason      string    `json:"reason" binding:"required,min=1,max=500"`
	ActorID     uuid.UUID `json:"actor_id"`
}

// MovementListFilter represents filters for listing stock movements
type MovementListFilter struct {
	ProductID *uuid.UUID `form:"product_id"`
	StartDate *time.Time `form:"start_date"`
	EndDate   *time.Time `form:"end_date"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// StockResponse represents the current stock of a product
type StockResponse struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	ProductCode  string    `json:"product_code,omitempty"`
	ProductName  string    `json:"product_name,omitempty"`
	Quantity     int64     `json:"quantity"`
	MinStock     int64     `json:"min_stock,omitempty"`
	BelowMinimum bool      `json:"below_minimum"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MovementResponse represents a stock movement in responses
type MovementResponse struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	Direction     string    `json:"direction"`
	Quantity      int64     `json:"quantity"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	Reference     string    `json:"reference"`
	Reason        string    `json:"reason,omitempty"`
	ActorID       uuid.UUID `json:"actor_id"`
	MovementDate  time.Time `json:"movement_date"`
	CreatedAt     time.Time `json:"created_at"`
}

// AvailabilityResponse reports whether a quantity can be fulfilled
type AvailabilityResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Requested int64     `json:"requested"`
	Available int64     `json:"available"`
	Fulfills  bool      `json:"fulfills"`
}

// RebuildResponse reports the outcome of a ledger rebuild
type RebuildResponse struct {
	ProductID        uuid.UUID `json:"product_id"`
	MovementCount    int       `json:"movement_count"`
	PreviousQuantity int64     `json:"previous_quantity"`
	Quantity         int64     `json:"quantity"`
	Corrected        bool      `json:"corrected"`
}

// ToStockResponse converts a stock record to a StockResponse
func ToStockResponse(record *inventory.StockRecord) StockResponse {
	return StockResponse{
		ID:        record.ID,
		ProductID: record.ProductID,
		Quantity:  record.Quantity,
		UpdatedAt: record.UpdatedAt,
	}
}

// ToMovementResponse converts a stock movement to a MovementResponse
func ToMovementResponse(movement *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            movement.ID,
		ProductID:     movement.ProductID,
		Direction:     movement.Direction.String(),
		Quantity:      movement.Quantity,
		BalanceBefore: movement.BalanceBefore,
		BalanceAfter:  movement.BalanceAfter,
		Reference:     movement.Reference,
		Reason:        movement.Reason,
		ActorID:       movement.ActorID,
		MovementDate:  movement.MovementDate,
		CreatedAt:     movement.CreatedAt,
	}
}

// ToMovementResponses converts a slice of movements to responses
func ToMovementResponses(movements []inventory.StockMovement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToMovementResponse(&movements[i])
	}
	return responses
}
