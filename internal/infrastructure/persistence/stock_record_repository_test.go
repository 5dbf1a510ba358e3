package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/almacen/backend/internal/domain/inventory"
	"github.com/almacen/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockStockRecordRepository creates a GormStockRecordRepository with a mocked SQL connection
func newMockStockRecordRepository(t *testing.T) (*GormStockRecordRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStockRecordRepository(gormDB), mock, mockDB
}

func stockRecordRows(id, productID uuid.UUID, quantity int64, version int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "created_at", "updated_at", "version", "product_id", "quantity"}).
		AddRow(id, now, now, version, productID, quantity)
}

func TestGormStockRecordRepository_FindByProduct(t *testing.T) {
	t.Run("finds existing record", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_records" WHERE product_id = \$1`).
			WithArgs(productID, 1).
			WillReturnRows(stockRecordRows(recordID, productID, 25, 1))

		record, err := repo.FindByProduct(context.Background(), productID)

		assert.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, recordID, record.ID)
		assert.Equal(t, productID, record.ProductID)
		assert.Equal(t, int64(25), record.Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when record does not exist", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_records" WHERE product_id = \$1`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		record, err := repo.FindByProduct(context.Background(), productID)

		assert.Nil(t, record)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormStockRecordRepository_FindByProductForUpdate(t *testing.T) {
	t.Run("takes a row lock", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_records" WHERE product_id = \$1 .* FOR UPDATE`).
			WithArgs(productID, 1).
			WillReturnRows(stockRecordRows(recordID, productID, 8, 3))

		record, err := repo.FindByProductForUpdate(context.Background(), productID)

		assert.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, int64(8), record.Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockRecordRepository_SaveWithLock(t *testing.T) {
	t.Run("saves when version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		record, err := inventory.NewStockRecord(uuid.New())
		require.NoError(t, err)
		require.NoError(t, record.Increase(10)) // bumps version to 2

		mock.ExpectExec(`UPDATE "stock_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveWithLock(context.Background(), record)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns concurrency conflict when version is stale", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		record, err := inventory.NewStockRecord(uuid.New())
		require.NoError(t, err)
		require.NoError(t, record.Increase(10))

		mock.ExpectExec(`UPDATE "stock_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), record)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormStockRecordRepository_GetOrCreate(t *testing.T) {
	t.Run("returns existing record", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_records" WHERE product_id = \$1 .* FOR UPDATE`).
			WithArgs(productID, 1).
			WillReturnRows(stockRecordRows(recordID, productID, 42, 5))

		record, err := repo.GetOrCreate(context.Background(), productID)

		assert.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, recordID, record.ID)
		assert.Equal(t, int64(42), record.Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("creates zero-quantity record when missing", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_records" WHERE product_id = \$1 .* FOR UPDATE`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		mock.ExpectExec(`INSERT INTO "stock_records"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		record, err := repo.GetOrCreate(context.Background(), productID)

		assert.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, productID, record.ProductID)
		assert.Equal(t, int64(0), record.Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockRecordRepository_Count(t *testing.T) {
	repo, mock, mockDB := newMockStockRecordRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "stock_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count(context.Background(), shared.Filter{})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
