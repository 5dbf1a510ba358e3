package cashbox

import (
	"context"
	"time"

	"github.com/almacen/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashMovementRepository defines the interface for cash movement
// persistence. Movements are append-only.
type CashMovementRepository interface {
	// FindByID finds a cash movement by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CashMovement, error)

	// FindAll finds all movements matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]CashMovement, error)

	// FindByReference finds all movements with the given reference
	FindByReference(ctx context.Context, reference string) ([]CashMovement, error)

	// FindByDateRange finds movements within a date range
	FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]CashMovement, error)

	// Save appends a movement
	Save(ctx context.Context, movement *CashMovement) error

	// Balance returns the net balance (inflows minus outflows)
	Balance(ctx context.Context) (decimal.Decimal, error)

	// Count counts movements matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
