package trade

import (
	"context"
	"fmt"

	"github.com/almacen/backend/internal/domain/cashbox"
	"github.com/almacen/backend/internal/domain/catalog"
	"github.com/almacen/backend/internal/domain/inventory"
	"github.com/almacen/backend/internal/domain/partner"
	"github.com/almacen/backend/internal/domain/shared"
	"github.com/almacen/backend/internal/domain/shared/valueobject"
	"github.com/almacen/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// OrderService handles order business operations. Creation has no
// stock effects; confirm and cancel run inside a transaction scope so
// the status transition, the stock records and the movement log
// commit or roll back together.
type OrderService struct {
	scope          TransactionScope
	orderRepo      trade.OrderRepository
	productRepo    catalog.ProductRepository
	customerRepo   partner.CustomerRepository
	supplierRepo   partner.SupplierRepository
	ledger         *inventory.Ledger
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(
	scope TransactionScope,
	orderRepo trade.OrderRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	supplierRepo partner.SupplierRepository,
) *OrderService {
	return &OrderService{
		scope:        scope,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		ledger:       inventory.NewLedger(),
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreatePurchase creates a new purchase order in PENDING status
func (s *OrderService) CreatePurchase(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, req.PartnerID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsActive() {
		return nil, shared.NewDomainError("INACTIVE_PARTNER", "Supplier is not active")
	}
	return s.create(ctx, trade.OrderKindPurchase, req, supplier.Name)
}

// CreateSale creates a new sales order in PENDING status
func (s *OrderService) CreateSale(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.PartnerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive() {
		return nil, shared.NewDomainError("INACTIVE_PARTNER", "Customer is not active")
	}
	return s.create(ctx, trade.OrderKindSale, req, customer.Name)
}

// create builds, validates and persists a new order. No stock effects
// happen here; stock only moves on confirm.
func (s *OrderService) create(ctx context.Context, kind trade.OrderKind, req CreateOrderRequest, partnerName string) (*OrderResponse, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("NO_LINES", "Order must have at least one line")
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx, kind)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewOrder(kind, orderNumber, req.PartnerID, partnerName)
	if err != nil {
		return nil, err
	}
	order.CreatedBy = req.ActorID

	for _, input := range req.Lines {
		product, unitPrice, err := s.resolveLine(ctx, kind, input)
		if err != nil {
			return nil, err
		}
		if _, err := order.AddLine(product.ID, product.Name, product.Code, input.Quantity, unitPrice); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		order.SetNotes(req.Notes)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// resolveLine validates the product and resolves the unit price.
// When the request omits the price, the current catalog price is
// captured: purchase price for purchases, sale price for sales.
func (s *OrderService) resolveLine(ctx context.Context, kind trade.OrderKind, input CreateOrderLineInput) (*catalog.Product, valueobject.Money, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, valueobject.Money{}, err
	}
	if !product.IsActive() {
		return nil, valueobject.Money{}, shared.NewDomainError("INACTIVE_PRODUCT", fmt.Sprintf("Product %s is not active", product.Code))
	}

	if input.UnitPrice != nil {
		return product, valueobject.NewMoneyCOP(*input.UnitPrice), nil
	}
	if kind == trade.OrderKindPurchase {
		return product, product.GetPurchasePriceMoney(), nil
	}
	return product, product.GetSalePriceMoney(), nil
}

// Confirm transitions a pending order to COMPLETED, applying its
// stock effects exactly once. For every line the ledger applies the
// direction of the order kind (purchase: IN, sale: OUT); if any line
// fails the whole transaction rolls back and the order stays PENDING.
func (s *OrderService) Confirm(ctx context.Context, orderID uuid.UUID, req ConfirmOrderRequest) (*OrderResponse, error) {
	var (
		confirmed *trade.Order
		depleted  []*inventory.StockRecord
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		// Validate the transition before touching stock
		if err := order.Confirm(); err != nil {
			return err
		}

		direction := order.Kind.ConfirmDirection()
		for idx := range order.Lines {
			line := &order.Lines[idx]
			record, err := s.applyMovement(ctx, repos, line.ProductID, direction, line.Quantity, order.OrderNumber, "", req.ActorID)
			if err != nil {
				return err
			}
			if direction == inventory.MovementDirectionOut {
				depleted = append(depleted, record)
			}
		}

		if err := repos.Orders().SaveWithLock(ctx, order); err != nil {
			return err
		}

		if err := s.recordCashMovement(ctx, repos, order, req.PaymentMethod, false); err != nil {
			return err
		}

		confirmed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, confirmed)
	s.notifyBelowMinimum(ctx, depleted)

	response := ToOrderResponse(confirmed)
	return &response, nil
}

// Cancel transitions an order to CANCELLED. A completed order has its
// stock effects reversed symmetrically (purchase cancel: OUT, sale
// cancel: IN) in the same transaction; reversing a purchase fails if
// the received stock was already consumed. A pending order cancels
// with no stock effect.
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	var (
		cancelled *trade.Order
		depleted  []*inventory.StockRecord
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		wasCompleted := order.IsCompleted()

		if err := order.Cancel(req.Reason); err != nil {
			return err
		}

		if wasCompleted {
			direction := order.Kind.ReverseDirection()
			reference := fmt.Sprintf("ANULACION %s", order.OrderNumber)
			for idx := range order.Lines {
				line := &order.Lines[idx]
				record, err := s.applyMovement(ctx, repos, line.ProductID, direction, line.Quantity, reference, req.Reason, req.ActorID)
				if err != nil {
					return err
				}
				if direction == inventory.MovementDirectionOut {
					depleted = append(depleted, record)
				}
			}
			if err := s.recordCashMovement(ctx, repos, order, "", true); err != nil {
				return err
			}
		}

		if err := repos.Orders().SaveWithLock(ctx, order); err != nil {
			return err
		}

		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, cancelled)
	s.notifyBelowMinimum(ctx, depleted)

	response := ToOrderResponse(cancelled)
	return &response, nil
}

// applyMovement locks the product's stock record, applies the change
// and appends the documenting movement, all within the surrounding
// transaction. The updated record is returned so callers can inspect
// the resulting balance.
func (s *OrderService) applyMovement(
	ctx context.Context,
	repos TransactionalRepositories,
	productID uuid.UUID,
	direction inventory.MovementDirection,
	quantity int64,
	reference string,
	reason string,
	actorID uuid.UUID,
) (*inventory.StockRecord, error) {
	record, err := repos.StockRecords().GetOrCreate(ctx, productID)
	if err != nil {
		return nil, err
	}

	movement, err := s.ledger.Apply(record, direction, quantity, reference, reason)
	if err != nil {
		return nil, err
	}
	movement.WithActor(actorID)

	if err := repos.StockRecords().SaveWithLock(ctx, record); err != nil {
		return nil, err
	}
	if err := repos.StockMovements().Save(ctx, movement); err != nil {
		return nil, err
	}
	return record, nil
}

// recordCashMovement records the payment side of a confirm or the
// refund side of a cancel. Zero-total orders produce no movement.
func (s *OrderService) recordCashMovement(
	ctx context.Context,
	repos TransactionalRepositories,
	order *trade.Order,
	paymentMethod string,
	reversal bool,
) error {
	if !order.TotalAmount.IsPositive() {
		return nil
	}

	method := cashbox.PaymentMethod(paymentMethod)
	if !method.IsValid() {
		method = cashbox.PaymentMethodCash
	}

	// Sales bring money in on confirm; purchases send it out.
	// Cancellation reverses the flow.
	movementType := cashbox.CashMovementInflow
	concept := fmt.Sprintf("Venta %s", order.OrderNumber)
	if order.Kind == trade.OrderKindPurchase {
		movementType = cashbox.CashMovementOutflow
		concept = fmt.Sprintf("Compra %s", order.OrderNumber)
	}
	reference := order.OrderNumber
	if reversal {
		if movementType == cashbox.CashMovementInflow {
			movementType = cashbox.CashMovementOutflow
		} else {
			movementType = cashbox.CashMovementInflow
		}
		concept = fmt.Sprintf("Anulacion %s", order.OrderNumber)
		reference = fmt.Sprintf("ANULACION %s", order.OrderNumber)
	}

	movement, err := cashbox.NewCashMovement(movementType, method, order.GetTotalMoney(), concept)
	if err != nil {
		return err
	}
	movement.WithReference(reference)

	return repos.CashMovements().Save(ctx, movement)
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetByNumber retrieves an order by document number
func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders of a kind with filtering and pagination
func (s *OrderService) List(ctx context.Context, kind trade.OrderKind, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	domainFilter := s.buildFilter(filter)

	var (
		orders []trade.Order
		err    error
	)
	switch {
	case filter.Status != nil:
		orders, err = s.orderRepo.FindByStatus(ctx, kind, *filter.Status, domainFilter)
	case filter.PartnerID != nil:
		orders, err = s.orderRepo.FindByPartner(ctx, *filter.PartnerID, domainFilter)
	default:
		orders, err = s.orderRepo.FindByKind(ctx, kind, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	domainFilter.Filters["kind"] = kind.String()
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderListItemResponses(orders), total, nil
}

// StatusSummary returns order counts grouped by status for a kind
func (s *OrderService) StatusSummary(ctx context.Context, kind trade.OrderKind) (*StatusSummaryResponse, error) {
	counts, err := s.orderRepo.CountByStatus(ctx, kind)
	if err != nil {
		return nil, err
	}

	return &StatusSummaryResponse{
		Kind:      kind.String(),
		Pending:   counts[trade.OrderStatusPending],
		Completed: counts[trade.OrderStatusCompleted],
		Cancelled: counts[trade.OrderStatusCancelled],
	}, nil
}

// AddLine adds a line to a pending order
func (s *OrderService) AddLine(ctx context.Context, orderID uuid.UUID, req AddOrderLineRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	input := CreateOrderLineInput{ProductID: req.ProductID, Quantity: req.Quantity, UnitPrice: req.UnitPrice}
	product, unitPrice, err := s.resolveLine(ctx, order.Kind, input)
	if err != nil {
		return nil, err
	}

	if _, err := order.AddLine(product.ID, product.Name, product.Code, req.Quantity, unitPrice); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateLine updates the quantity of a line on a pending order
func (s *OrderService) UpdateLine(ctx context.Context, orderID, lineID uuid.UUID, req UpdateOrderLineRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.UpdateLineQuantity(lineID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// RemoveLine removes a line from a pending order
func (s *OrderService) RemoveLine(ctx context.Context, orderID, lineID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.RemoveLine(lineID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// buildFilter applies defaults and maps the list filter
func (s *OrderService) buildFilter(filter OrderListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}
	return domainFilter
}

// notifyBelowMinimum publishes a low stock event for every record an
// outbound movement left at or under its product's minimum threshold
func (s *OrderService) notifyBelowMinimum(ctx context.Context, records []*inventory.StockRecord) {
	if s.eventPublisher == nil || len(records) == 0 {
		return
	}

	ids := make([]uuid.UUID, len(records))
	for i, record := range records {
		ids[i] = record.ProductID
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return
	}
	minByProduct := make(map[uuid.UUID]int64, len(products))
	for i := range products {
		minByProduct[products[i].ID] = products[i].MinStock
	}

	for _, record := range records {
		minStock := minByProduct[record.ProductID]
		if !record.IsBelowMinimum(minStock) {
			continue
		}
		_ = s.eventPublisher.Publish(ctx, inventory.NewStockBelowMinimumEvent(record, minStock))
	}
}

// publishDomainEvents publishes and clears an order's pending events
func (s *OrderService) publishDomainEvents(ctx context.Context, order *trade.Order) {
	if s.eventPublisher == nil || order == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Publish errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
	order.ClearDomainEvents()
}
