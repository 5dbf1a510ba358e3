package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates active customer", func(t *testing.T) {
		customer, err := NewCustomer("1020456789", "Maria Rodriguez")
		require.NoError(t, err)

		assert.Equal(t, "1020456789", customer.Document)
		assert.Equal(t, "Maria Rodriguez", customer.Name)
		assert.True(t, customer.IsActive())

		events := customer.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCustomerCreated, events[0].EventType())
	})

	t.Run("trims document whitespace", func(t *testing.T) {
		customer, err := NewCustomer("  1020456789  ", "Maria Rodriguez")
		require.NoError(t, err)
		assert.Equal(t, "1020456789", customer.Document)
	})

	t.Run("fails with empty document", func(t *testing.T) {
		_, err := NewCustomer("", "Maria Rodriguez")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Document cannot be empty")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCustomer("1020456789", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Name cannot be empty")
	})
}

func TestCustomerUpdate(t *testing.T) {
	customer, err := NewCustomer("1020456789", "Maria Rodriguez")
	require.NoError(t, err)

	err = customer.Update("Maria Rodriguez Gomez", "3001234567", "maria@example.com", "Calle 45 #12-34")
	require.NoError(t, err)

	assert.Equal(t, "Maria Rodriguez Gomez", customer.Name)
	assert.Equal(t, "3001234567", customer.Phone)
	assert.Equal(t, 2, customer.GetVersion())
}

func TestNewSupplier(t *testing.T) {
	t.Run("creates active supplier", func(t *testing.T) {
		supplier, err := NewSupplier("900123456-7", "Distribuidora La Economia")
		require.NoError(t, err)

		assert.Equal(t, "900123456-7", supplier.Document)
		assert.True(t, supplier.IsActive())
	})

	t.Run("fails with empty document", func(t *testing.T) {
		_, err := NewSupplier("", "Distribuidora La Economia")
		require.Error(t, err)
	})
}

func TestSupplierStatus(t *testing.T) {
	supplier, err := NewSupplier("900123456-7", "Distribuidora La Economia")
	require.NoError(t, err)

	supplier.Deactivate()
	assert.False(t, supplier.IsActive())

	supplier.Activate()
	assert.True(t, supplier.IsActive())
}
