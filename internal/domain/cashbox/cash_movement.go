package cashbox

import (
	"time"

	"github.com/almacen/backend/internal/domain/shared"
	"github.com/almacen/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CashMovementType represents the direction of a cash movement
type CashMovementType string

const (
	// CashMovementInflow represents money entering the cashbox
	CashMovementInflow CashMovementType = "INFLOW"
	// CashMovementOutflow represents money leaving the cashbox
	CashMovementOutflow CashMovementType = "OUTFLOW"
)

// String returns the string representation of CashMovementType
func (t CashMovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is valid
func (t CashMovementType) IsValid() bool {
	return t == CashMovementInflow || t == CashMovementOutflow
}

// PaymentMethod represents how a cash movement was settled
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
)

// IsValid returns true if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	}
	return false
}

// CashMovement is an immutable record of money entering or leaving
// the cashbox. Sales and purchases generate movements referencing the
// order number; manual movements carry only a concept.
type CashMovement struct {
	shared.BaseEntity
	Type         CashMovementType `gorm:"type:varchar(10);not null;index"`
	Method       PaymentMethod    `gorm:"type:varchar(10);not null;default:'CASH'"`
	Amount       decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	Concept      string           `gorm:"type:varchar(255);not null"`
	Reference    string           `gorm:"type:varchar(100);index"` // Source document, e.g. "VENTA-2026-00001"
	MovementDate time.Time        `gorm:"type:timestamptz;not null;index"`
}

// TableName returns the table name for GORM
func (CashMovement) TableName() string {
	return "cash_movements"
}

// NewCashMovement creates a new cash movement
func NewCashMovement(movementType CashMovementType, method PaymentMethod, amount valueobject.Money, concept string) (*CashMovement, error) {
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Invalid cash movement type")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Invalid payment method")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if concept == "" {
		return nil, shared.NewDomainError("INVALID_CONCEPT", "Concept cannot be empty")
	}

	return &CashMovement{
		BaseEntity:   shared.NewBaseEntity(),
		Type:         movementType,
		Method:       method,
		Amount:       amount.Amount(),
		Concept:      concept,
		MovementDate: time.Now(),
	}, nil
}

// WithReference sets the source document reference
func (m *CashMovement) WithReference(reference string) *CashMovement {
	m.Reference = reference
	return m
}

// SignedAmount returns the amount with sign based on type.
// Positive for inflows, negative for outflows.
func (m *CashMovement) SignedAmount() decimal.Decimal {
	if m.Type == CashMovementOutflow {
		return m.Amount.Neg()
	}
	return m.Amount
}

// GetAmountMoney returns the amount as a Money value object
func (m *CashMovement) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyCOP(m.Amount)
}
