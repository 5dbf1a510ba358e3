package persistence

import (
	"context"

	appinventory "github.com/almacen/backend/internal/application/inventory"
	apptrade "github.com/almacen/backend/internal/application/trade"
	"github.com/almacen/backend/internal/domain/cashbox"
	"github.com/almacen/backend/internal/domain/inventory"
	"github.com/almacen/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTradeTransactionScope implements the trade TransactionScope
// using GORM transactions. Order confirm and cancel update the order
// header, stock records, the movement log and the cashbox atomically.
type GormTradeTransactionScope struct {
	db *gorm.DB
}

// NewGormTradeTransactionScope creates a new GormTradeTransactionScope
func NewGormTradeTransactionScope(db *gorm.DB) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTradeRepositories{tx: tx})
	})
}

type gormTradeRepositories struct {
	tx *gorm.DB
}

// Orders returns the order repository scoped to the current transaction
func (r *gormTradeRepositories) Orders() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// StockRecords returns the stock record repository scoped to the current transaction
func (r *gormTradeRepositories) StockRecords() inventory.StockRecordRepository {
	return NewGormStockRecordRepository(r.tx)
}

// StockMovements returns the stock movement repository scoped to the current transaction
func (r *gormTradeRepositories) StockMovements() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// CashMovements returns the cash movement repository scoped to the current transaction
func (r *gormTradeRepositories) CashMovements() cashbox.CashMovementRepository {
	return NewGormCashMovementRepository(r.tx)
}

// GormInventoryTransactionScope implements the inventory
// TransactionScope using GORM transactions. Stock adjustments and
// ledger rebuilds update the record and the log atomically.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryRepositories{tx: tx})
	})
}

type gormInventoryRepositories struct {
	tx *gorm.DB
}

// StockRecords returns the stock record repository scoped to the current transaction
func (r *gormInventoryRepositories) StockRecords() inventory.StockRecordRepository {
	return NewGormStockRecordRepository(r.tx)
}

// StockMovements returns the stock movement repository scoped to the current transaction
func (r *gormInventoryRepositories) StockMovements() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// Ensure the scopes implement their application ports
var _ apptrade.TransactionScope = (*GormTradeTransactionScope)(nil)
var _ apptrade.TransactionalRepositories = (*gormTradeRepositories)(nil)
var _ appinventory.TransactionScope = (*GormInventoryTransactionScope)(nil)
var _ appinventory.TransactionalRepositories = (*gormInventoryRepositories)(nil)
