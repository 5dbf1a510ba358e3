package catalog

import (
	"testing"

	"github.com/almacen/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("SKU-001", "Arroz Diana 500g", "unidad")
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "SKU-001", product.Code)
		assert.Equal(t, "Arroz Diana 500g", product.Name)
		assert.Equal(t, "unidad", product.Unit)
		assert.True(t, product.PurchasePrice.IsZero())
		assert.True(t, product.SalePrice.IsZero())
		assert.Equal(t, int64(0), product.MinStock)
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.Nil(t, product.CategoryID)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("converts code to uppercase", func(t *testing.T) {
		product, err := NewProduct("sku-001", "Arroz Diana 500g", "unidad")
		require.NoError(t, err)
		assert.Equal(t, "SKU-001", product.Code)
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct("SKU-002", "Arroz Diana 500g", "unidad")
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())

		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, product.Code, event.Code)
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewProduct("", "Arroz Diana 500g", "unidad")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "code cannot be empty")
	})

	t.Run("fails with invalid code characters", func(t *testing.T) {
		_, err := NewProduct("SKU@001", "Arroz Diana 500g", "unidad")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "can only contain letters")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("SKU-001", "", "unidad")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with empty unit", func(t *testing.T) {
		_, err := NewProduct("SKU-001", "Arroz Diana 500g", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unit cannot be empty")
	})
}

func TestNewProductWithPrices(t *testing.T) {
	t.Run("creates product with prices", func(t *testing.T) {
		purchase := valueobject.NewMoneyCOPFromFloat(1500)
		sale := valueobject.NewMoneyCOPFromFloat(2200)

		product, err := NewProductWithPrices("SKU-001", "Arroz Diana 500g", "unidad", purchase, sale)
		require.NoError(t, err)

		assert.True(t, product.PurchasePrice.Equal(purchase.Amount()))
		assert.True(t, product.SalePrice.Equal(sale.Amount()))
	})

	t.Run("fails with negative sale price", func(t *testing.T) {
		purchase := valueobject.NewMoneyCOPFromFloat(1500)
		sale := valueobject.NewMoneyCOPFromFloat(-1)

		_, err := NewProductWithPrices("SKU-001", "Arroz Diana 500g", "unidad", purchase, sale)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Sale price cannot be negative")
	})
}

func TestProductSetMinStock(t *testing.T) {
	product, err := NewProduct("SKU-001", "Arroz Diana 500g", "unidad")
	require.NoError(t, err)

	t.Run("sets minimum stock", func(t *testing.T) {
		err := product.SetMinStock(10)
		require.NoError(t, err)
		assert.Equal(t, int64(10), product.MinStock)
	})

	t.Run("fails with negative minimum stock", func(t *testing.T) {
		err := product.SetMinStock(-1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})
}

func TestProductStatusTransitions(t *testing.T) {
	t.Run("deactivate then activate", func(t *testing.T) {
		product, err := NewProduct("SKU-001", "Arroz Diana 500g", "unidad")
		require.NoError(t, err)

		require.NoError(t, product.Deactivate())
		assert.False(t, product.IsActive())

		require.NoError(t, product.Activate())
		assert.True(t, product.IsActive())
	})

	t.Run("activate fails when already active", func(t *testing.T) {
		product, err := NewProduct("SKU-001", "Arroz Diana 500g", "unidad")
		require.NoError(t, err)

		err = product.Activate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already active")
	})

	t.Run("deactivate fails when already inactive", func(t *testing.T) {
		product, err := NewProduct("SKU-001", "Arroz Diana 500g", "unidad")
		require.NoError(t, err)
		require.NoError(t, product.Deactivate())

		err = product.Deactivate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already inactive")
	})
}

func TestProductSetCategory(t *testing.T) {
	product, err := NewProduct("SKU-001", "Arroz Diana 500g", "unidad")
	require.NoError(t, err)
	assert.False(t, product.HasCategory())

	categoryID := uuid.New()
	product.SetCategory(&categoryID)

	assert.True(t, product.HasCategory())
	assert.Equal(t, categoryID, *product.CategoryID)
}

func TestNewCategory(t *testing.T) {
	t.Run("creates category with valid inputs", func(t *testing.T) {
		category, err := NewCategory("GRANOS", "Granos y cereales")
		require.NoError(t, err)

		assert.Equal(t, "GRANOS", category.Code)
		assert.Equal(t, "Granos y cereales", category.Name)
		assert.Equal(t, CategoryStatusActive, category.Status)
		assert.True(t, category.IsActive())
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewCategory("", "Granos y cereales")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "code cannot be empty")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("GRANOS", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})
}
