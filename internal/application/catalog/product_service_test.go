package catalog

import (
	"context"
	"testing"

	"github.com/almacen/backend/internal/domain/catalog"
	"github.com/almacen/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByCode(ctx context.Context, code string) (*catalog.Category, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// Tests for ProductService.Create

func TestProductService_Create_Success(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	service := NewProductService(mockProductRepo, mockCategoryRepo)

	ctx := context.Background()
	req := CreateProductRequest{
		Code: "GRA-010",
		Name: "Lenteja 500g",
		Unit: "unidad",
	}

	mockProductRepo.On("ExistsByCode", ctx, req.Code).Return(false, nil)
	mockProductRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	result, err := service.Create(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "GRA-010", result.Code)
	assert.Equal(t, "Lenteja 500g", result.Name)
	assert.Equal(t, "unidad", result.Unit)
	assert.Equal(t, "active", result.Status)
	mockProductRepo.AssertExpectations(t)
}

func TestProductService_Create_WithAllFields(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	service := NewProductService(mockProductRepo, mockCategoryRepo)

	ctx := context.Background()
	category, err := catalog.NewCategory("GRANOS", "Granos y cereales")
	require.NoError(t, err)
	purchasePrice := decimal.NewFromFloat(1800)
	salePrice := decimal.NewFromFloat(2500)
	minStock := int64(10)

	req := CreateProductRequest{
		Code:          "GRA-011",
		Name:          "Arroz Diana 500g",
		Description:   "Arroz blanco premium",
		CategoryID:    &category.ID,
		Unit:          "unidad",
		PurchasePrice: &purchasePrice,
		SalePrice:     &salePrice,
		MinStock:      &minStock,
	}

	mockProductRepo.On("ExistsByCode", ctx, req.Code).Return(false, nil)
	mockCategoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)
	mockProductRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	result, err := service.Create(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, &category.ID, result.CategoryID)
	assert.True(t, result.PurchasePrice.Equal(purchasePrice))
	assert.True(t, result.SalePrice.Equal(salePrice))
	assert.Equal(t, int64(10), result.MinStock)
	mockProductRepo.AssertExpectations(t)
	mockCategoryRepo.AssertExpectations(t)
}

func TestProductService_Create_DuplicateCode(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	service := NewProductService(mockProductRepo, mockCategoryRepo)

	ctx := context.Background()
	req := CreateProductRequest{
		Code: "GRA-001",
		Name: "Arroz Diana 500g",
		Unit: "unidad",
	}

	mockProductRepo.On("ExistsByCode", ctx, req.Code).Return(true, nil)

	result, err := service.Create(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	mockProductRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Create_UnknownCategory(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	service := NewProductService(mockProductRepo, mockCategoryRepo)

	ctx := context.Background()
	categoryID := uuid.New()
	req := CreateProductRequest{
		Code:       "GRA-012",
		Name:       "Avena en hojuelas",
		Unit:       "unidad",
		CategoryID: &categoryID,
	}

	mockProductRepo.On("ExistsByCode", ctx, req.Code).Return(false, nil)
	mockCategoryRepo.On("FindByID", ctx, categoryID).Return(nil, shared.ErrNotFound)

	result, err := service.Create(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

// Tests for ProductService.Update

func TestProductService_Update_Success(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	service := NewProductService(mockProductRepo, mockCategoryRepo)

	ctx := context.Background()
	product, err := catalog.NewProduct("GRA-001", "Arroz Diana 500g", "unidad")
	require.NoError(t, err)

	mockProductRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	mockProductRepo.On("Save", ctx, product).Return(nil)

	result, err := service.Update(ctx, product.ID, UpdateProductRequest{
		Name:        "Arroz Diana 1kg",
		Description: "Presentacion familiar",
		Unit:        "unidad",
	})

	require.NoError(t, err)
	assert.Equal(t, "Arroz Diana 1kg", result.Name)
	assert.Equal(t, "Presentacion familiar", result.Description)
}

// Tests for ProductService.UpdatePrices

func TestProductService_UpdatePrices_RejectsNegative(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	service := NewProductService(mockProductRepo, mockCategoryRepo)

	ctx := context.Background()
	product, err := catalog.NewProduct("GRA-001", "Arroz Diana 500g", "unidad")
	require.NoError(t, err)

	mockProductRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	result, err := service.UpdatePrices(ctx, product.ID, UpdateProductPricesRequest{
		PurchasePrice: decimal.NewFromFloat(-100),
		SalePrice:     decimal.NewFromFloat(200),
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	mockProductRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// Tests for ProductService.Deactivate

func TestProductService_Deactivate_Success(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	service := NewProductService(mockProductRepo, mockCategoryRepo)

	ctx := context.Background()
	product, err := catalog.NewProduct("GRA-001", "Arroz Diana 500g", "unidad")
	require.NoError(t, err)

	mockProductRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	mockProductRepo.On("Save", ctx, product).Return(nil)

	result, err := service.Deactivate(ctx, product.ID)

	require.NoError(t, err)
	assert.Equal(t, "inactive", result.Status)
}

// Tests for CategoryService

func TestCategoryService_Create_Success(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	service := NewCategoryService(mockCategoryRepo, mockProductRepo)

	ctx := context.Background()
	req := CreateCategoryRequest{Code: "LACTEOS", Name: "Lacteos y derivados"}

	mockCategoryRepo.On("ExistsByCode", ctx, req.Code).Return(false, nil)
	mockCategoryRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)

	result, err := service.Create(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "LACTEOS", result.Code)
	assert.Equal(t, "active", result.Status)
	mockCategoryRepo.AssertExpectations(t)
}

func TestCategoryService_Delete_WithProducts(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	service := NewCategoryService(mockCategoryRepo, mockProductRepo)

	ctx := context.Background()
	category, err := catalog.NewCategory("GRANOS", "Granos y cereales")
	require.NoError(t, err)
	product, err := catalog.NewProduct("GRA-001", "Arroz Diana 500g", "unidad")
	require.NoError(t, err)

	mockCategoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)
	mockProductRepo.On("FindByCategory", ctx, category.ID, mock.AnythingOfType("shared.Filter")).
		Return([]catalog.Product{*product}, nil)

	err = service.Delete(ctx, category.ID)

	assert.Error(t, err)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CATEGORY_IN_USE", domainErr.Code)
	mockCategoryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
