package cashbox

import (
	"time"

	"github.com/almacen/backend/internal/domain/cashbox"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordMovementRequest represents a request to record a cash movement
type RecordMovementRequest struct {
	Type      string          `json:"type" binding:"required,oneof=INFLOW OUTFLOW"`
	Method    string          `json:"method" binding:"required,oneof=CASH CARD TRANSFER"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Concept   string          `json:"concept" binding:"required,min=1,max=200"`
	Reference string          `json:"reference" binding:"max=100"`
}

// CashMovementListFilter represents filters for listing cash movements
type CashMovementListFilter struct {
	StartDate *time.Time `form:"start_date"`
	EndDate   *time.Time `form:"end_date"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CashMovementResponse represents a cash movement in API responses
type CashMovementResponse struct {
	ID           uuid.UUID       `json:"id"`
	Type         string          `json:"type"`
	Method       string          `json:"method"`
	Amount       decimal.Decimal `json:"amount"`
	Concept      string          `json:"concept"`
	Reference    string          `json:"reference,omitempty"`
	MovementDate time.Time       `json:"movement_date"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BalanceResponse represents the current cash balance
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
	AsOf    time.Time       `json:"as_of"`
}

// ToCashMovementResponse converts a cash movement to a response
func ToCashMovementResponse(movement *cashbox.CashMovement) CashMovementResponse {
	return CashMovementResponse{
		ID:           movement.ID,
		Type:         string(movement.Type),
		Method:       string(movement.Method),
		Amount:       movement.Amount,
		Concept:      movement.Concept,
		Reference:    movement.Reference,
		MovementDate: movement.MovementDate,
		CreatedAt:    movement.CreatedAt,
	}
}

// ToCashMovementResponses converts a slice of movements to responses
func ToCashMovementResponses(movements []cashbox.CashMovement) []CashMovementResponse {
	responses := make([]CashMovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToCashMovementResponse(&movements[i])
	}
	return responses
}
