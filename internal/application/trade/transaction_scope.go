package trade

import (
	"context"

	"github.com/almacen/backend/internal/domain/cashbox"
	"github.com/almacen/backend/internal/domain/inventory"
	"github.com/almacen/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories
// involved in order lifecycle transitions. Confirm and cancel must
// update the order header, the stock records and the movement log
// atomically, so all repository operations inside Execute share one
// database transaction.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories
// scoped to the current transaction.
type TransactionalRepositories interface {
	// Orders returns the order repository scoped to the current transaction
	Orders() trade.OrderRepository
	// StockRecords returns the stock record repository scoped to the current transaction
	StockRecords() inventory.StockRecordRepository
	// StockMovements returns the stock movement repository scoped to the current transaction
	StockMovements() inventory.StockMovementRepository
	// CashMovements returns the cash movement repository scoped to the current transaction
	CashMovements() cashbox.CashMovementRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually
// use transactions. Useful for tests.
type NoOpTransactionScope struct {
	orderRepo        trade.OrderRepository
	stockRecordRepo  inventory.StockRecordRepository
	movementRepo     inventory.StockMovementRepository
	cashMovementRepo cashbox.CashMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	orderRepo trade.OrderRepository,
	stockRecordRepo inventory.StockRecordRepository,
	movementRepo inventory.StockMovementRepository,
	cashMovementRepo cashbox.CashMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:        orderRepo,
		stockRecordRepo:  stockRecordRepo,
		movementRepo:     movementRepo,
		cashMovementRepo: cashMovementRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the order repository
func (s *NoOpTransactionScope) Orders() trade.OrderRepository {
	return s.orderRepo
}

// StockRecords returns the stock record repository
func (s *NoOpTransactionScope) StockRecords() inventory.StockRecordRepository {
	return s.stockRecordRepo
}

// StockMovements returns the stock movement repository
func (s *NoOpTransactionScope) StockMovements() inventory.StockMovementRepository {
	return s.movementRepo
}

// CashMovements returns the cash movement repository
func (s *NoOpTransactionScope) CashMovements() cashbox.CashMovementRepository {
	return s.cashMovementRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
