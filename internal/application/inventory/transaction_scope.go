package inventory

import (
	"context"

	"github.com/almacen/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the stock
// repositories. Manual adjustments and ledger rebuilds update the
// stock record and the movement log atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories
// scoped to the current transaction.
type TransactionalRepositories interface {
	// StockRecords returns the stock record repository scoped to the current transaction
	StockRecords() inventory.StockRecordRepository
	// StockMovements returns the stock movement repository scoped to the current transaction
	StockMovements() inventory.StockMovementRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually
// use transactions. Useful for tests.
type NoOpTransactionScope struct {
	stockRecordRepo inventory.StockRecordRepository
	movementRepo    inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	stockRecordRepo inventory.StockRecordRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockRecordRepo: stockRecordRepo,
		movementRepo:    movementRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// StockRecords returns the stock record repository
func (s *NoOpTransactionScope) StockRecords() inventory.StockRecordRepository {
	return s.stockRecordRepo
}

// StockMovements returns the stock movement repository
func (s *NoOpTransactionScope) StockMovements() inventory.StockMovementRepository {
	return s.movementRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
