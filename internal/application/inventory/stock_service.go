package inventory

import (
	"context"
	"errors"

	"github.com/almacen/backend/internal/domain/catalog"
	"github.com/almacen/backend/internal/domain/inventory"
	"github.com/almacen/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockService handles stock queries, manual adjustments and ledger
// rebuilds. Order confirmations do not come through here; they apply
// their stock effects inside the order transaction.
type StockService struct {
	scope          TransactionScope
	stockRepo      inventory.StockRecordRepository
	movementRepo   inventory.StockMovementRepository
	productRepo    catalog.ProductRepository
	ledger         *inventory.Ledger
	eventPublisher shared.EventPublisher
}

// NewStockService creates a new StockService
func NewStockService(
	scope TransactionScope,
	stockRepo inventory.StockRecordRepository,
	movementRepo inventory.StockMovementRepository,
	productRepo catalog.ProductRepository,
) *StockService {
	return &StockService{
		scope:        scope,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		productRepo:  productRepo,
		ledger:       inventory.NewLedger(),
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetStock returns the current stock of a product. A product without
// a stock record reports zero.
func (s *StockService) GetStock(ctx context.Context, productID uuid.UUID) (*StockResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	record, err := s.stockRepo.FindByProduct(ctx, productID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		response := StockResponse{
			ProductID:    productID,
			ProductCode:  product.Code,
			ProductName:  product.Name,
			Quantity:     0,
			MinStock:     product.MinStock,
			BelowMinimum: product.MinStock > 0,
		}
		return &response, nil
	}

	response := ToStockResponse(record)
	response.ProductCode = product.Code
	response.ProductName = product.Name
	response.MinStock = product.MinStock
	response.BelowMinimum = record.IsBelowMinimum(product.MinStock)
	return &response, nil
}

// ListStock returns stock records with product information attached
func (s *StockService) ListStock(ctx context.Context, filter shared.Filter) ([]StockResponse, int64, error) {
	records, err := s.stockRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.stockRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses, err := s.attachProducts(ctx, records)
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// ListBelowMinimum returns the stock of active products at or under
// their minimum, for the replenishment report
func (s *StockService) ListBelowMinimum(ctx context.Context) ([]StockResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 1000

	products, err := s.productRepo.FindActive(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(products))
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		if products[i].MinStock <= 0 {
			continue
		}
		ids = append(ids, products[i].ID)
		byID[products[i].ID] = &products[i]
	}
	if len(ids) == 0 {
		return []StockResponse{}, nil
	}

	records, err := s.stockRepo.FindByProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	recorded := make(map[uuid.UUID]*inventory.StockRecord, len(records))
	for i := range records {
		recorded[records[i].ProductID] = &records[i]
	}

	var responses []StockResponse
	for _, id := range ids {
		product := byID[id]
		record, ok := recorded[id]
		if ok && !record.IsBelowMinimum(product.MinStock) {
			continue
		}
		response := StockResponse{
			ProductID:    id,
			ProductCode:  product.Code,
			ProductName:  product.Name,
			MinStock:     product.MinStock,
			BelowMinimum: true,
		}
		if ok {
			response.ID = record.ID
			response.Quantity = record.Quantity
			response.UpdatedAt = record.UpdatedAt
		}
		responses = append(responses, response)
	}
	return responses, nil
}

// AdjustStock corrects a product's stock to a counted quantity. The
// delta against the current cache is recorded as one IN or OUT
// movement; the record update and the movement commit in one
// transaction. Adjusting to the current quantity records nothing.
func (s *StockService) AdjustStock(ctx context.Context, productID uuid.UUID, req AdjustStockRequest) (*StockResponse, error) {
	if req.NewQuantity == nil || *req.NewQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "New quantity must be zero or positive")
	}
	newQuantity := *req.NewQuantity

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	var (
		adjusted *inventory.StockRecord
		previous int64
		changed  bool
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		record, err := repos.StockRecords().GetOrCreate(ctx, productID)
		if err != nil {
			return err
		}
		previous = record.Quantity

		delta := newQuantity - record.Quantity
		if delta == 0 {
			adjusted = record
			return nil
		}
		changed = true

		direction := inventory.MovementDirectionIn
		if delta < 0 {
			direction = inventory.MovementDirectionOut
			delta = -delta
		}

		movement, err := s.ledger.Apply(record, direction, delta, "AJUSTE MANUAL", req.Reason)
		if err != nil {
			return err
		}
		movement.WithActor(req.ActorID)

		if err := repos.StockRecords().SaveWithLock(ctx, record); err != nil {
			return err
		}
		if err := repos.StockMovements().Save(ctx, movement); err != nil {
			return err
		}

		adjusted = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed && s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, inventory.NewStockAdjustedEvent(adjusted, previous, req.Reason))
	}
	s.notifyIfBelowMinimum(ctx, adjusted, product)

	response := ToStockResponse(adjusted)
	response.ProductCode = product.Code
	response.ProductName = product.Name
	response.MinStock = product.MinStock
	response.BelowMinimum = adjusted.IsBelowMinimum(product.MinStock)
	return &response, nil
}

// Rebuild recomputes a product's cached quantity from its full
// movement log and persists the corrected record
func (s *StockService) Rebuild(ctx context.Context, productID uuid.UUID) (*RebuildResponse, error) {
	var result *RebuildResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		record, err := repos.StockRecords().GetOrCreate(ctx, productID)
		if err != nil {
			return err
		}

		movements, err := repos.StockMovements().FindAllByProduct(ctx, productID)
		if err != nil {
			return err
		}

		previous := record.Quantity
		balance, err := s.ledger.Rebuild(record, movements)
		if err != nil {
			return err
		}

		if err := repos.StockRecords().SaveWithLock(ctx, record); err != nil {
			return err
		}

		result = &RebuildResponse{
			ProductID:        productID,
			MovementCount:    len(movements),
			PreviousQuantity: previous,
			Quantity:         balance,
			Corrected:        previous != balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CheckAvailability reports whether a quantity of a product can be
// fulfilled from current stock
func (s *StockService) CheckAvailability(ctx context.Context, productID uuid.UUID, quantity int64) (*AvailabilityResponse, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	response := &AvailabilityResponse{ProductID: productID, Requested: quantity}

	record, err := s.stockRepo.FindByProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return response, nil
		}
		return nil, err
	}

	response.Available = record.Quantity
	response.Fulfills = record.CanFulfill(quantity)
	return response, nil
}

// ListMovements returns the movement log, optionally restricted to a
// product or a date range, newest first
func (s *StockService) ListMovements(ctx context.Context, filter MovementListFilter) ([]MovementResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	var (
		movements []inventory.StockMovement
		err       error
	)
	switch {
	case filter.ProductID != nil:
		movements, err = s.movementRepo.FindByProduct(ctx, *filter.ProductID, domainFilter)
	case filter.StartDate != nil && filter.EndDate != nil:
		movements, err = s.movementRepo.FindByDateRange(ctx, *filter.StartDate, *filter.EndDate, domainFilter)
	default:
		movements, err = s.movementRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if filter.ProductID != nil {
		total, err = s.movementRepo.CountByProduct(ctx, *filter.ProductID)
	} else {
		total, err = s.movementRepo.Count(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	return ToMovementResponses(movements), total, nil
}

// attachProducts enriches stock responses with product code and name
func (s *StockService) attachProducts(ctx context.Context, records []inventory.StockRecord) ([]StockResponse, error) {
	ids := make([]uuid.UUID, len(records))
	for i := range records {
		ids[i] = records[i].ProductID
	}

	responses := make([]StockResponse, len(records))
	for i := range records {
		responses[i] = ToStockResponse(&records[i])
	}
	if len(ids) == 0 {
		return responses, nil
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for i := range responses {
		if product, ok := byID[responses[i].ProductID]; ok {
			responses[i].ProductCode = product.Code
			responses[i].ProductName = product.Name
			responses[i].MinStock = product.MinStock
			responses[i].BelowMinimum = records[i].IsBelowMinimum(product.MinStock)
		}
	}
	return responses, nil
}

// notifyIfBelowMinimum publishes a low stock event after a manual
// adjustment drops a product to or under its minimum
func (s *StockService) notifyIfBelowMinimum(ctx context.Context, record *inventory.StockRecord, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	if !record.IsBelowMinimum(product.MinStock) {
		return
	}
	event := inventory.NewStockBelowMinimumEvent(record, product.MinStock)
	_ = s.eventPublisher.Publish(ctx, event)
}
