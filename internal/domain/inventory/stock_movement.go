package inventory

import (
	"time"

	"github.com/almacen/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementDirection represents the direction of a stock movement
type MovementDirection string

const (
	// MovementDirectionIn represents stock entering inventory
	MovementDirectionIn MovementDirection = "IN"
	// MovementDirectionOut represents stock leaving inventory
	MovementDirectionOut MovementDirection = "OUT"
)

// String returns the string representation of MovementDirection
func (d MovementDirection) String() string {
	return string(d)
}

// IsValid returns true if the direction is valid
func (d MovementDirection) IsValid() bool {
	return d == MovementDirectionIn || d == MovementDirectionOut
}

// Opposite returns the reversing direction
func (d MovementDirection) Opposite() MovementDirection {
	if d == MovementDirectionIn {
		return MovementDirectionOut
	}
	return MovementDirectionIn
}

// StockMovement is an immutable record of a single stock change.
// Movements are append-only: corrections are recorded as new
// movements in the opposite direction, never by editing history.
type StockMovement struct {
	shared.BaseEntity
	ProductID     uuid.UUID         `gorm:"type:uuid;not null;index:idx_stock_movement_product"`
	Direction     MovementDirection `gorm:"type:varchar(3);not null"`
	Quantity      int64             `gorm:"not null"` // Always positive, direction carries the sign
	BalanceBefore int64             `gorm:"not null"` // On-hand quantity before the movement
	BalanceAfter  int64             `gorm:"not null"` // On-hand quantity after the movement
	Reference     string            `gorm:"type:varchar(100);not null;index"` // Source document, e.g. "COMPRA-2026-00001"
	Reason        string            `gorm:"type:varchar(255)"`
	ActorID       uuid.UUID         `gorm:"type:uuid"` // Who caused the movement; zero when recorded by the system
	MovementDate  time.Time         `gorm:"type:timestamptz;not null;index"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a new stock movement
func NewStockMovement(
	productID uuid.UUID,
	direction MovementDirection,
	quantity int64,
	balanceBefore int64,
	balanceAfter int64,
	reference string,
) (*StockMovement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Invalid movement direction")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Reference cannot be empty")
	}

	return &StockMovement{
		BaseEntity:    shared.NewBaseEntity(),
		ProductID:     productID,
		Direction:     direction,
		Quantity:      quantity,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Reference:     reference,
		MovementDate:  time.Now(),
	}, nil
}

// WithReason sets the reason for the movement
func (m *StockMovement) WithReason(reason string) *StockMovement {
	m.Reason = reason
	return m
}

// WithActor records who caused the movement
func (m *StockMovement) WithActor(actorID uuid.UUID) *StockMovement {
	m.ActorID = actorID
	return m
}

// WithMovementDate sets the movement date
func (m *StockMovement) WithMovementDate(date time.Time) *StockMovement {
	m.MovementDate = date
	return m
}

// SignedQuantity returns the quantity with sign based on direction.
// Positive for IN, negative for OUT.
func (m *StockMovement) SignedQuantity() int64 {
	if m.Direction == MovementDirectionOut {
		return -m.Quantity
	}
	return m.Quantity
}

// IsInbound returns true if the movement increases stock
func (m *StockMovement) IsInbound() bool {
	return m.Direction == MovementDirectionIn
}

// IsOutbound returns true if the movement decreases stock
func (m *StockMovement) IsOutbound() bool {
	return m.Direction == MovementDirectionOut
}
