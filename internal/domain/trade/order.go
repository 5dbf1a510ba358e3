package trade

import (
	"time"

	"github.com/almacen/backend/internal/domain/shared"
	"github.com/almacen/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order represents a trade document aggregate root. A single type
// covers both purchase and sales orders; the Kind decides the stock
// direction on confirm. Orders start PENDING with no stock effect.
// Stock effects are applied exactly once on confirm and reversed
// symmetrically on cancel of a completed order.
type Order struct {
	shared.BaseAggregateRoot
	Kind         OrderKind       `gorm:"type:varchar(10);not null;index"`
	OrderNumber  string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	PartnerID    uuid.UUID       `gorm:"type:uuid;not null;index"` // Supplier for purchases, customer for sales
	PartnerName  string          `gorm:"type:varchar(200);not null"`
	CreatedBy    uuid.UUID       `gorm:"type:uuid"` // Actor who created the order; zero when unknown
	Lines        []OrderLine     `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Sum of line subtotals
	Status       OrderStatus     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Notes        string          `gorm:"type:text"`
	ConfirmedAt  *time.Time      `gorm:"index"`
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in PENDING status
func NewOrder(kind OrderKind, orderNumber string, partnerID uuid.UUID, partnerName string) (*Order, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Invalid order kind")
	}
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Partner ID cannot be empty")
	}
	if partnerName == "" {
		return nil, shared.NewDomainError("INVALID_PARTNER_NAME", "Partner name cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		OrderNumber:       orderNumber,
		PartnerID:         partnerID,
		PartnerName:       partnerName,
		Lines:             make([]OrderLine, 0),
		TotalAmount:       decimal.Zero,
		Status:            OrderStatusPending,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// AddLine adds a new line to the order.
// Only allowed while the order is PENDING.
func (o *Order) AddLine(productID uuid.UUID, productName, productCode string, quantity int64, unitPrice valueobject.Money) (*OrderLine, error) {
	if !o.Status.AllowsLineMutation() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add lines to a non-pending order")
	}

	for _, line := range o.Lines {
		if line.ProductID == productID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in order, update quantity instead")
		}
	}

	line, err := NewOrderLine(o.ID, productID, productName, productCode, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Lines = append(o.Lines, *line)
	o.recalculateTotal()
	o.Touch()
	o.IncrementVersion()

	return line, nil
}

// UpdateLineQuantity updates the quantity of an existing line.
// Only allowed while the order is PENDING.
func (o *Order) UpdateLineQuantity(lineID uuid.UUID, quantity int64) error {
	if !o.Status.AllowsLineMutation() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update lines of a non-pending order")
	}

	for idx := range o.Lines {
		if o.Lines[idx].ID == lineID {
			if err := o.Lines[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			o.recalculateTotal()
			o.Touch()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Order line not found")
}

// RemoveLine removes a line from the order.
// Only allowed while the order is PENDING.
func (o *Order) RemoveLine(lineID uuid.UUID) error {
	if !o.Status.AllowsLineMutation() {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove lines from a non-pending order")
	}

	for idx, line := range o.Lines {
		if line.ID == lineID {
			o.Lines = append(o.Lines[:idx], o.Lines[idx+1:]...)
			o.recalculateTotal()
			o.Touch()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Order line not found")
}

// SetNotes sets the order notes
func (o *Order) SetNotes(notes string) {
	o.Notes = notes
	o.Touch()
	o.IncrementVersion()
}

// Confirm transitions the order from PENDING to COMPLETED.
// The caller applies the stock effects in the same transaction that
// persists this transition. Requires at least one line.
func (o *Order) Confirm() error {
	if !o.Status.CanTransitionTo(OrderStatusCompleted) {
		return NewInvalidTransitionError(o.Status, OrderStatusCompleted)
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("NO_LINES", "Cannot confirm order without lines")
	}

	now := time.Now()
	o.Status = OrderStatusCompleted
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderConfirmedEvent(o))

	return nil
}

// Cancel transitions the order to CANCELLED and stores the reason.
// Cancelling from COMPLETED means the caller reverses the stock
// effects in the same transaction; cancelling from PENDING has no
// stock effect. Cancelling an already cancelled order fails.
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return NewInvalidTransitionError(o.Status, OrderStatusCancelled)
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancellation reason is required")
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderCancelledEvent(o, reason))

	return nil
}

// FindLine returns the line with the given ID, or nil
func (o *Order) FindLine(lineID uuid.UUID) *OrderLine {
	for idx := range o.Lines {
		if o.Lines[idx].ID == lineID {
			return &o.Lines[idx]
		}
	}
	return nil
}

// FindLineByProduct returns the line for the given product, or nil
func (o *Order) FindLineByProduct(productID uuid.UUID) *OrderLine {
	for idx := range o.Lines {
		if o.Lines[idx].ProductID == productID {
			return &o.Lines[idx]
		}
	}
	return nil
}

// IsPending returns true if the order is pending
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsCompleted returns true if the order is completed
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

// IsCancelled returns true if the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// GetTotalMoney returns the order total as a Money value object
func (o *Order) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyCOP(o.TotalAmount)
}

// recalculateTotal recomputes the total from the line subtotals
func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Subtotal)
	}
	o.TotalAmount = total
}
