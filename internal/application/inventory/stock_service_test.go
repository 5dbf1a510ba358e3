package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/almacen/backend/internal/domain/catalog"
	"github.com/almacen/backend/internal/domain/inventory"
	"github.com/almacen/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStockRecordRepository is a mock implementation of inventory.StockRecordRepository
type MockStockRecordRepository struct {
	mock.Mock
}

func (m *MockStockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*inventory.StockRecord, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindByProductForUpdate(ctx context.Context, productID uuid.UUID) (*inventory.StockRecord, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindByProducts(ctx context.Context, productIDs []uuid.UUID) ([]inventory.StockRecord, error) {
	args := m.Called(ctx, productIDs)
	return args.Get(0).([]inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockRecord, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) GetOrCreate(ctx context.Context, productID uuid.UUID) (*inventory.StockRecord, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) Save(ctx context.Context, record *inventory.StockRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStockRecordRepository) SaveWithLock(ctx context.Context, record *inventory.StockRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStockRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStockRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockStockMovementRepository is a mock implementation of inventory.StockMovementRepository
type MockStockMovementRepository struct {
	mock.Mock

	saved []*inventory.StockMovement
}

func (m *MockStockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, productID, filter)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindAllByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindByReference(ctx context.Context, reference string) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, reference)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, from, to, filter)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	if args.Error(0) == nil {
		m.saved = append(m.saved, movement)
	}
	return args.Error(0)
}

func (m *MockStockMovementRepository) SaveBatch(ctx context.Context, movements []*inventory.StockMovement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *MockStockMovementRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockMovementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
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

// capturingPublisher collects every event published through it
type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

// Test fixtures

type stockFixture struct {
	stockRepo    *MockStockRecordRepository
	movementRepo *MockStockMovementRepository
	productRepo  *MockProductRepository
	service      *StockService
}

func newStockFixture() *stockFixture {
	f := &stockFixture{
		stockRepo:    new(MockStockRecordRepository),
		movementRepo: new(MockStockMovementRepository),
		productRepo:  new(MockProductRepository),
	}
	scope := NewNoOpTransactionScope(f.stockRepo, f.movementRepo)
	f.service = NewStockService(scope, f.stockRepo, f.movementRepo, f.productRepo)
	return f
}

func createTestProduct(t *testing.T, minStock int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("ASE-001", "Jabon Rey 300g", "unidad")
	require.NoError(t, err)
	if minStock > 0 {
		require.NoError(t, product.SetMinStock(minStock))
	}
	return product
}

func createStockRecord(t *testing.T, productID uuid.UUID, quantity int64) *inventory.StockRecord {
	t.Helper()
	record, err := inventory.NewStockRecord(productID)
	require.NoError(t, err)
	if quantity > 0 {
		require.NoError(t, record.Increase(quantity))
	}
	return record
}

// Tests for StockService.GetStock

func TestStockService_GetStock_WithRecord(t *testing.T) {
	f := newStockFixture()
	ctx := context.Background()

	product := createTestProduct(t, 5)
	record := createStockRecord(t, product.ID, 12)

	f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	f.stockRepo.On("FindByProduct", ctx, product.ID).Return(record, nil)

	result, err := f.service.GetStock(ctx, product.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(12), result.Quantity)
	assert.Equal(t, "ASE-001", result.ProductCode)
	assert.Equal(t, int64(5), result.MinStock)
	assert.False(t, result.BelowMinimum)
}

func TestStockService_GetStock_NoRecordReportsZero(t *testing.T) {
	f := newStockFixture()
	ctx := context.Background()

	product := createTestProduct(t, 5)

	f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	f.stockRepo.On("FindByProduct", ctx, product.ID).Return(nil, shared.ErrNotFound)

	result, err := f.service.GetStock(ctx, product.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Quantity)
	assert.True(t, result.BelowMinimum)
}

func TestStockService_GetStock_UnknownProduct(t *testing.T) {
	f := newStockFixture()
	ctx := context.Background()
	productID := uuid.New()

	f.productRepo.On("FindByID", ctx, productID).Return(nil, shared.ErrNotFound)

	result, err := f.service.GetStock(ctx, productID)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

// Tests for StockService.AdjustStock

func TestStockService_AdjustStock_Increase(t *testing.T) {
	f := newStockFixture()
	ctx := context.Background()

	product := createTestProduct(t, 0)
	record := createStockRecord(t, product.ID, 3)
	actorID := uuid.New()

	f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	f.stockRepo.On("GetOrCreate", ctx, product.ID).Return(record, nil)
	f.stockRepo.On("SaveWithLock", ctx, record).Return(nil)
	f.movementRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)

	newQty := int64(10)
	result, err := f.service.AdjustStock(ctx, product.ID, AdjustStockRequest{
		NewQuantity: &newQty,
		Reason:      "conteo fisico",
		ActorID:     actorID,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), result.Quantity)

	require.Len(t, f.movementRepo.saved, 1)
	movement := f.movementRepo.saved[0]
	assert.Equal(t, inventory.MovementDirectionIn, movement.Direction)
	assert.Equal(t, int64(7), movement.Quantity)
	assert.Equal(t, "AJUSTE MANUAL", movement.Reference)
	assert.Equal(t, "conteo fisico", movement.Reason)
	assert.Equal(t, actorID, movement.ActorID)
	assert.Equal(t, int64(3), movement.BalanceBefore)
	assert.Equal(t, int64(10), movement.BalanceAfter)
}

func TestStockService_AdjustStock_Decrease(t *testing.T) {
	f := newStockFixture()
	ctx := context.Background()

	product := createTestProduct(t, 0)
	record := createStockRecord(t, product.ID, 8)

	f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	f.stockRepo.On("GetOrCreate", ctx, product.ID).Return(record, nil)
	f.stockRepo.On("SaveWithLock", ctx, record).Return(nil)
	f.movementRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)

	newQty := int64(2)
	result, err := f.service.AdjustStock(ctx, product.ID, AdjustStockRequest{
		NewQuantity: &newQty,
		Reason:      "merma",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Quantity)

	require.Len(t, f.movementRepo.saved, 1)
	movement := f.movementRepo.saved[0]
	assert.Equal(t, inventory.MovementDirectionOut, movement.Direction)
	assert.Equal(t, int64(6), movement.Quantity)
	assert.Equal(t, int64(8), movement.BalanceBefore)
	assert.Equal(t, int64(2), movement.BalanceAfter)
}

func TestStockService_AdjustStock_PublishesAdjustedEvent(t *testing.T) {
	f := newStockFixture()
	publisher := new(capturingPublisher)
	f.service.SetEventPublisher(publisher)
	ctx := context.Background()

	product := createTestProduct(t, 0)
	record := createStockRecord(t, product.ID, 3)

	f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	f.stockRepo.On("GetOrCreate", ctx, product.ID).Return(record, nil)
	f.stockRepo.On("SaveWithLock", ctx, record).Return(nil)
	f.movementRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)

	newQty := int64(10)
	_, err := f.service.AdjustStock(ctx, product.ID, AdjustStockRequest{
		NewQuantity: &newQty,
		Reason:      "conteo fisico",
	})

	require.NoError(t, err)
	require.Len(t, publisher.events, 1)
	adjusted, ok := publisher.events[0].(*inventory.StockAdjustedEvent)
	require.True(t, ok)
	assert.Equal(t, product.ID, adjusted.ProductID)
	assert.Equal(t, int64(3), adjusted.OldQuantity)
	assert.Equal(t, int64(10), adjusted.NewQuantity)
	assert.Equal(t, "conteo fisico", adjusted.Reason)
}

func TestStockService_AdjustStock_NoChangeRecordsNothing(t *testing.T) {
	f := newStockFixture()
	publisher := new(capturingPublisher)
	f.service.SetEventPublisher(publisher)
	ctx := context.Background()

	product := createTestProduct(t, 0)
	record := createStockRecord(t, product.ID, 5)

	f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	f.stockRepo.On("GetOrCreate", ctx, product.ID).Return(record, nil)

	newQty := int64(5)
	result, err := f.service.AdjustStock(ctx, product.ID, AdjustStockRequest{
		NewQuantity: &newQty,
		Reason:      "conteo sin novedad",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Quantity)
	f.stockRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	f.movementRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Empty(t, publisher.events)
}

func TestStockService_AdjustStock_InvalidQuantity(t *testing.T) {
	f := newStockFixture()
	ctx := context.Background()

	negative := int64(-1)
	for name, req := range map[string]AdjustStockRequest{
		"missing":  {Reason: "x"},
		"negative": {NewQuantity: &negative, Reason: "x"},
	} {
		t.Run(name, func(t *testing.T) {
			result, err := f.service.AdjustStock(ctx, uuid.New(), req)

			assert.Error(t, err)
			assert.Nil(t, result)
			var domainErr *shared.DomainError
			assert.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
		})
	}
}

// Tests for StockService.Rebuild

func TestStockService_Rebuild_CorrectsDriftedCache(t *testing.T) {
	f := newStockFixture()
	ctx := context.Background()

	productID := uuid.New()
	record := createStockRecord(t, productID, 99)

	in, err := inventory.NewStockMovement(productID, inventory.MovementDirectionIn, 10, 0, 10, "COMPRA-2026-00001")
	require.NoError(t, err)
	out, err := inventory.NewStockMovement(productID, inventory.MovementDirectionOut, 4, 10, 6, "VENTA-2026-00001")
	require.NoError(t, err)

	f.stockRepo.On("GetOrCreate", ctx, productID).Return(record, nil)
	f.movementRepo.On("FindAllByProduct", ctx, productID).Return([]inventory.StockMovement{*in, *out}, nil)
	f.stockRepo.On("SaveWithLock", ctx, record).Return(nil)

	result, err := f.service.Rebuild(ctx, productID)

	require.NoError(t, err)
	assert.Equal(t, int64(99), result.PreviousQuantity)
	assert.Equal(t, int64(6), result.Quantity)
	assert.Equal(t, 2, result.MovementCount)
	assert.True(t, result.Corrected)
	assert.Equal(t, int64(6), record.Quantity)
}

func TestStockService_Rebuild_EmptyLogResetsToZero(t *testing.T) {
	f := newStockFixture()
	ctx := context.Background()

	productID := uuid.New()
	record := createStockRecord(t, productID, 5)

	f.stockRepo.On("GetOrCreate", ctx, productID).Return(record, nil)
	f.movementRepo.On("FindAllByProduct", ctx, productID).Return([]inventory.StockMovement{}, nil)
	f.stockRepo.On("SaveWithLock", ctx, record).Return(nil)

	result, err := f.service.Rebuild(ctx, productID)

	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Quantity)
	assert.True(t, result.Corrected)
}

// Tests for StockService.CheckAvailability

func TestStockService_CheckAvailability(t *testing.T) {
	f := newStockFixture()
	ctx := context.Background()

	productID := uuid.New()
	record := createStockRecord(t, productID, 8)

	f.stockRepo.On("FindByProduct", ctx, productID).Return(record, nil)

	result, err := f.service.CheckAvailability(ctx, productID, 5)

	require.NoError(t, err)
	assert.True(t, result.Fulfills)
	assert.Equal(t, int64(8), result.Available)
}

func TestStockService_CheckAvailability_NoRecord(t *testing.T) {
	f := newStockFixture()
	ctx := context.Background()
	productID := uuid.New()

	f.stockRepo.On("FindByProduct", ctx, productID).Return(nil, shared.ErrNotFound)

	result, err := f.service.CheckAvailability(ctx, productID, 5)

	require.NoError(t, err)
	assert.False(t, result.Fulfills)
	assert.Equal(t, int64(0), result.Available)
}

// Tests for StockService.ListBelowMinimum

func TestStockService_ListBelowMinimum(t *testing.T) {
	f := newStockFixture()
	ctx := context.Background()

	low := createTestProduct(t, 10)
	fine, err := catalog.NewProduct("ASE-002", "Detergente 1kg", "unidad")
	require.NoError(t, err)
	require.NoError(t, fine.SetMinStock(5))
	untracked, err := catalog.NewProduct("ASE-003", "Esponja", "unidad")
	require.NoError(t, err)

	lowRecord := createStockRecord(t, low.ID, 4)
	fineRecord := createStockRecord(t, fine.ID, 20)

	f.productRepo.On("FindActive", ctx, mock.AnythingOfType("shared.Filter")).
		Return([]catalog.Product{*low, *fine, *untracked}, nil)
	f.stockRepo.On("FindByProducts", ctx, mock.AnythingOfType("[]uuid.UUID")).
		Return([]inventory.StockRecord{*lowRecord, *fineRecord}, nil)

	result, err := f.service.ListBelowMinimum(ctx)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, low.ID, result[0].ProductID)
	assert.Equal(t, int64(4), result[0].Quantity)
	assert.True(t, result[0].BelowMinimum)
}
