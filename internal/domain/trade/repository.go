package trade

import (
	"context"

	"github.com/almacen/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID, including lines
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForUpdate finds an order by ID and takes a row lock on
	// the header for the duration of the surrounding transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByNumber finds an order by its document number
	FindByNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindAll finds all orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByKind finds orders of a specific kind
	FindByKind(ctx context.Context, kind OrderKind, filter shared.Filter) ([]Order, error)

	// FindByStatus finds orders of a kind in a specific status
	FindByStatus(ctx context.Context, kind OrderKind, status OrderStatus, filter shared.Filter) ([]Order, error)

	// FindByPartner finds orders for a specific partner
	FindByPartner(ctx context.Context, partnerID uuid.UUID, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order with its lines
	Save(ctx context.Context, order *Order) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, order *Order) error

	// Delete deletes an order
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts orders of a kind grouped by status
	CountByStatus(ctx context.Context, kind OrderKind) (map[OrderStatus]int64, error)

	// GenerateOrderNumber generates the next sequential document
	// number for the given kind, e.g. "COMPRA-2026-00001"
	GenerateOrderNumber(ctx context.Context, kind OrderKind) (string, error)
}
