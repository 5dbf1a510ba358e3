package inventory

import (
	"context"
	"time"

	"github.com/almacen/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockRecordRepository defines the interface for stock record persistence
type StockRecordRepository interface {
	// FindByID finds a stock record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockRecord, error)

	// FindByProduct finds the stock record for a product
	FindByProduct(ctx context.Context, productID uuid.UUID) (*StockRecord, error)

	// FindByProductForUpdate finds the stock record for a product and
	// takes a row lock for the duration of the surrounding transaction
	FindByProductForUpdate(ctx context.Context, productID uuid.UUID) (*StockRecord, error)

	// FindByProducts finds stock records for multiple products
	FindByProducts(ctx context.Context, productIDs []uuid.UUID) ([]StockRecord, error)

	// FindAll finds all stock records matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StockRecord, error)

	// GetOrCreate returns the stock record for a product, creating a
	// zero-quantity record if none exists yet
	GetOrCreate(ctx context.Context, productID uuid.UUID) (*StockRecord, error)

	// Save creates or updates a stock record
	Save(ctx context.Context, record *StockRecord) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, record *StockRecord) error

	// Delete deletes a stock record
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts stock records matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// StockMovementRepository defines the interface for stock movement persistence.
// Movements are append-only; there are no update or delete operations.
type StockMovementRepository interface {
	// FindByID finds a movement by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockMovement, error)

	// FindByProduct finds all movements for a product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockMovement, error)

	// FindAllByProduct finds the complete movement log for a product,
	// oldest first, for ledger rebuilds
	FindAllByProduct(ctx context.Context, productID uuid.UUID) ([]StockMovement, error)

	// FindByReference finds all movements with the given reference
	FindByReference(ctx context.Context, reference string) ([]StockMovement, error)

	// FindByDateRange finds movements within a date range
	FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]StockMovement, error)

	// FindAll finds all movements matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StockMovement, error)

	// Save appends a movement to the log
	Save(ctx context.Context, movement *StockMovement) error

	// SaveBatch appends multiple movements to the log
	SaveBatch(ctx context.Context, movements []*StockMovement) error

	// CountByProduct counts movements for a product
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// Count counts movements matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
