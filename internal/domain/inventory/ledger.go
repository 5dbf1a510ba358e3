package inventory

import (
	"github.com/almacen/backend/internal/domain/shared"
)

// Ledger provides domain logic that ties stock records to the
// movement log. Every stock change goes through the ledger so the
// cached quantity and the appended movement stay consistent.
type Ledger struct{}

// NewLedger creates a new Ledger
func NewLedger() *Ledger {
	return &Ledger{}
}

// Apply applies a stock change to the record and returns the movement
// that documents it. The record and the movement must be persisted in
// the same transaction by the caller.
func (l *Ledger) Apply(
	record *StockRecord,
	direction MovementDirection,
	quantity int64,
	reference string,
	reason string,
) (*StockMovement, error) {
	if record == nil {
		return nil, shared.NewDomainError("INVALID_RECORD", "Stock record cannot be nil")
	}

	balanceBefore := record.Quantity

	if err := record.Apply(direction, quantity); err != nil {
		return nil, err
	}

	movement, err := NewStockMovement(
		record.ProductID,
		direction,
		quantity,
		balanceBefore,
		record.Quantity,
		reference,
	)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		movement.WithReason(reason)
	}

	return movement, nil
}

// Reverse applies the opposite of a previously recorded movement.
// Reversing an inbound movement checks that enough stock remains.
func (l *Ledger) Reverse(
	record *StockRecord,
	original *StockMovement,
	reference string,
	reason string,
) (*StockMovement, error) {
	if original == nil {
		return nil, shared.NewDomainError("INVALID_MOVEMENT", "Original movement cannot be nil")
	}

	return l.Apply(record, original.Direction.Opposite(), original.Quantity, reference, reason)
}

// Rebuild recomputes the cached quantity from the full movement log.
// Movements must belong to the record's product. Returns the computed
// balance; the caller persists the corrected record.
func (l *Ledger) Rebuild(record *StockRecord, movements []StockMovement) (int64, error) {
	if record == nil {
		return 0, shared.NewDomainError("INVALID_RECORD", "Stock record cannot be nil")
	}

	var balance int64
	for i := range movements {
		if movements[i].ProductID != record.ProductID {
			return 0, shared.NewDomainError("INVALID_MOVEMENT", "Movement does not belong to this product")
		}
		balance += movements[i].SignedQuantity()
	}

	if balance < 0 {
		return 0, shared.NewDomainError("CORRUPT_LEDGER", "Movement log sums to a negative balance")
	}

	if err := record.SetQuantity(balance); err != nil {
		return 0, err
	}

	return balance, nil
}
