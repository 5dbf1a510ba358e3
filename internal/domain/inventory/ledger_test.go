package inventory

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerApply(t *testing.T) {
	ledger := NewLedger()

	t.Run("inbound movement increases balance and records it", func(t *testing.T) {
		record, err := NewStockRecord(uuid.New())
		require.NoError(t, err)

		movement, err := ledger.Apply(record, MovementDirectionIn, 10, "COMPRA-2026-00001", "")
		require.NoError(t, err)

		assert.Equal(t, int64(10), record.Quantity)
		assert.Equal(t, int64(0), movement.BalanceBefore)
		assert.Equal(t, int64(10), movement.BalanceAfter)
		assert.Equal(t, "COMPRA-2026-00001", movement.Reference)
	})

	t.Run("outbound movement decreases balance", func(t *testing.T) {
		record, err := NewStockRecord(uuid.New())
		require.NoError(t, err)
		_, err = ledger.Apply(record, MovementDirectionIn, 10, "COMPRA-2026-00001", "")
		require.NoError(t, err)

		movement, err := ledger.Apply(record, MovementDirectionOut, 4, "VENTA-2026-00001", "")
		require.NoError(t, err)

		assert.Equal(t, int64(6), record.Quantity)
		assert.Equal(t, int64(10), movement.BalanceBefore)
		assert.Equal(t, int64(6), movement.BalanceAfter)
	})

	t.Run("outbound movement fails on insufficient stock without recording", func(t *testing.T) {
		record, err := NewStockRecord(uuid.New())
		require.NoError(t, err)
		_, err = ledger.Apply(record, MovementDirectionIn, 3, "COMPRA-2026-00001", "")
		require.NoError(t, err)

		movement, err := ledger.Apply(record, MovementDirectionOut, 5, "VENTA-2026-00001", "")
		require.Error(t, err)
		assert.Nil(t, movement)

		var insufficientErr *InsufficientStockError
		require.True(t, errors.As(err, &insufficientErr))
		assert.Equal(t, int64(5), insufficientErr.Requested)
		assert.Equal(t, int64(3), insufficientErr.Available)
		assert.Equal(t, int64(3), record.Quantity)
	})

	t.Run("records reason when provided", func(t *testing.T) {
		record, err := NewStockRecord(uuid.New())
		require.NoError(t, err)

		movement, err := ledger.Apply(record, MovementDirectionIn, 2, "AJUSTE-1", "conteo fisico")
		require.NoError(t, err)
		assert.Equal(t, "conteo fisico", movement.Reason)
	})

	t.Run("fails with nil record", func(t *testing.T) {
		_, err := ledger.Apply(nil, MovementDirectionIn, 1, "REF", "")
		require.Error(t, err)
	})
}

func TestLedgerReverse(t *testing.T) {
	ledger := NewLedger()

	t.Run("reverses an outbound movement", func(t *testing.T) {
		record, err := NewStockRecord(uuid.New())
		require.NoError(t, err)
		_, err = ledger.Apply(record, MovementDirectionIn, 10, "COMPRA-2026-00001", "")
		require.NoError(t, err)
		original, err := ledger.Apply(record, MovementDirectionOut, 4, "VENTA-2026-00001", "")
		require.NoError(t, err)

		reversal, err := ledger.Reverse(record, original, "ANULACION VENTA-2026-00001", "cliente desistio")
		require.NoError(t, err)

		assert.Equal(t, int64(10), record.Quantity)
		assert.Equal(t, MovementDirectionIn, reversal.Direction)
		assert.Equal(t, int64(4), reversal.Quantity)
		assert.Equal(t, "ANULACION VENTA-2026-00001", reversal.Reference)
	})

	t.Run("reversing an inbound movement requires sufficient stock", func(t *testing.T) {
		record, err := NewStockRecord(uuid.New())
		require.NoError(t, err)
		original, err := ledger.Apply(record, MovementDirectionIn, 10, "COMPRA-2026-00001", "")
		require.NoError(t, err)

		// Sell most of the received stock
		_, err = ledger.Apply(record, MovementDirectionOut, 8, "VENTA-2026-00001", "")
		require.NoError(t, err)

		_, err = ledger.Reverse(record, original, "ANULACION COMPRA-2026-00001", "")
		require.Error(t, err)

		var insufficientErr *InsufficientStockError
		require.True(t, errors.As(err, &insufficientErr))
		assert.Equal(t, int64(2), record.Quantity)
	})

	t.Run("fails with nil original movement", func(t *testing.T) {
		record, err := NewStockRecord(uuid.New())
		require.NoError(t, err)

		_, err = ledger.Reverse(record, nil, "REF", "")
		require.Error(t, err)
	})
}

func TestLedgerRebuild(t *testing.T) {
	ledger := NewLedger()

	t.Run("recomputes balance from the movement log", func(t *testing.T) {
		productID := uuid.New()
		record, err := NewStockRecord(productID)
		require.NoError(t, err)

		movements := make([]StockMovement, 0, 3)
		for _, step := range []struct {
			direction MovementDirection
			quantity  int64
		}{
			{MovementDirectionIn, 10},
			{MovementDirectionOut, 3},
			{MovementDirectionIn, 5},
		} {
			m, err := NewStockMovement(productID, step.direction, step.quantity, 0, 0, "REF")
			require.NoError(t, err)
			movements = append(movements, *m)
		}

		// Simulate a corrupted cache
		require.NoError(t, record.SetQuantity(99))

		balance, err := ledger.Rebuild(record, movements)
		require.NoError(t, err)
		assert.Equal(t, int64(12), balance)
		assert.Equal(t, int64(12), record.Quantity)
	})

	t.Run("empty log rebuilds to zero", func(t *testing.T) {
		record, err := NewStockRecord(uuid.New())
		require.NoError(t, err)
		require.NoError(t, record.SetQuantity(7))

		balance, err := ledger.Rebuild(record, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance)
	})

	t.Run("rejects movements from another product", func(t *testing.T) {
		record, err := NewStockRecord(uuid.New())
		require.NoError(t, err)

		foreign, err := NewStockMovement(uuid.New(), MovementDirectionIn, 5, 0, 5, "REF")
		require.NoError(t, err)

		_, err = ledger.Rebuild(record, []StockMovement{*foreign})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not belong")
	})

	t.Run("rejects a log that sums negative", func(t *testing.T) {
		productID := uuid.New()
		record, err := NewStockRecord(productID)
		require.NoError(t, err)

		out, err := NewStockMovement(productID, MovementDirectionOut, 5, 5, 0, "REF")
		require.NoError(t, err)

		_, err = ledger.Rebuild(record, []StockMovement{*out})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "negative balance")
	})
}
