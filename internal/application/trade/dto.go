package trade

import (
	"time"

	"github.com/almacen/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents a request to create an order
type CreateOrderRequest struct {
	PartnerID uuid.UUID              `json:"partner_id" binding:"required"`
	Lines     []CreateOrderLineInput `json:"lines" binding:"required,min=1,dive"`
	Notes     string                 `json:"notes"`
	ActorID   uuid.UUID              `json:"actor_id"`
}

// CreateOrderLineInput represents a line in the create order request.
// UnitPrice is optional; when omitted the current catalog price is
// captured (purchase price for purchases, sale price for sales).
type CreateOrderLineInput struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  int64            `json:"quantity" binding:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// AddOrderLineRequest represents a request to add a line to a pending order
type AddOrderLineRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  int64            `json:"quantity" binding:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// UpdateOrderLineRequest represents a request to update a line quantity
type UpdateOrderLineRequest struct {
	Quantity int64 `json:"quantity" binding:"required,gt=0"`
}

// ConfirmOrderRequest represents a request to confirm an order
type ConfirmOrderRequest struct {
	PaymentMethod string    `json:"payment_method" binding:"omitempty,oneof=CASH CARD TRANSFER"`
	ActorID       uuid.UUID `json:"actor_id"`
}

// CancelOrderRequest represents a request to cancel an order
type CancelOrderRequest struct {
	Reason  string    `json:"reason" binding:"required,min=1,max=500"`
	ActorID uuid.UUID `json:"actor_id"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Search    string             `form:"search"`
	PartnerID *uuid.UUID         `form:"partner_id"`
	Status    *trade.OrderStatus `form:"status"`
	StartDate *time.Time         `form:"start_date"`
	EndDate   *time.Time         `form:"end_date"`
	Page      int                `form:"page" binding:"omitempty,min=1"`
	PageSize  int                `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string             `form:"order_by"`
	OrderDir  string             `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductCode string          `json:"product_code"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	Kind         string              `json:"kind"`
	OrderNumber  string              `json:"order_number"`
	PartnerID    uuid.UUID           `json:"partner_id"`
	PartnerName  string              `json:"partner_name"`
	CreatedBy    uuid.UUID           `json:"created_by"`
	Lines        []OrderLineResponse `json:"lines"`
	LineCount    int                 `json:"line_count"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	Status       string              `json:"status"`
	Notes        string              `json:"notes,omitempty"`
	ConfirmedAt  *time.Time          `json:"confirmed_at,omitempty"`
	CancelledAt  *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason string              `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Version      int                 `json:"version"`
}

// OrderListItemResponse represents an order in list responses (less detail)
type OrderListItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Kind        string          `json:"kind"`
	OrderNumber string          `json:"order_number"`
	PartnerID   uuid.UUID       `json:"partner_id"`
	PartnerName string          `json:"partner_name"`
	LineCount   int             `json:"line_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StatusSummaryResponse represents order counts grouped by status
type StatusSummaryResponse struct {
	Kind      string `json:"kind"`
	Pending   int64  `json:"pending"`
	Completed int64  `json:"completed"`
	Cancelled int64  `json:"cancelled"`
}

// ToOrderResponse maps an order to its response representation
func ToOrderResponse(order *trade.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Lines))
	for idx := range order.Lines {
		lines = append(lines, ToOrderLineResponse(&order.Lines[idx]))
	}

	return OrderResponse{
		ID:           order.ID,
		Kind:         order.Kind.String(),
		OrderNumber:  order.OrderNumber,
		PartnerID:    order.PartnerID,
		PartnerName:  order.PartnerName,
		CreatedBy:    order.CreatedBy,
		Lines:        lines,
		LineCount:    len(lines),
		TotalAmount:  order.TotalAmount,
		Status:       order.Status.String(),
		Notes:        order.Notes,
		ConfirmedAt:  order.ConfirmedAt,
		CancelledAt:  order.CancelledAt,
		CancelReason: order.CancelReason,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
		Version:      order.GetVersion(),
	}
}

// ToOrderLineResponse maps an order line to its response representation
func ToOrderLineResponse(line *trade.OrderLine) OrderLineResponse {
	return OrderLineResponse{
		ID:          line.ID,
		ProductID:   line.ProductID,
		ProductName: line.ProductName,
		ProductCode: line.ProductCode,
		Quantity:    line.Quantity,
		UnitPrice:   line.UnitPrice,
		Subtotal:    line.Subtotal,
	}
}

// ToOrderListItemResponse maps an order to its list representation
func ToOrderListItemResponse(order *trade.Order) OrderListItemResponse {
	return OrderListItemResponse{
		ID:          order.ID,
		Kind:        order.Kind.String(),
		OrderNumber: order.OrderNumber,
		PartnerID:   order.PartnerID,
		PartnerName: order.PartnerName,
		LineCount:   len(order.Lines),
		TotalAmount: order.TotalAmount,
		Status:      order.Status.String(),
		CreatedAt:   order.CreatedAt,
	}
}

// ToOrderListItemResponses maps a slice of orders to list responses
func ToOrderListItemResponses(orders []trade.Order) []OrderListItemResponse {
	responses := make([]OrderListItemResponse, 0, len(orders))
	for idx := range orders {
		responses = append(responses, ToOrderListItemResponse(&orders[idx]))
	}
	return responses
}
