package cashbox

import (
	"context"
	"time"

	"github.com/almacen/backend/internal/domain/cashbox"
	"github.com/almacen/backend/internal/domain/shared"
	"github.com/almacen/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CashService handles the cash box: manual inflows and outflows and
// balance queries. Movements tied to orders are recorded by the order
// service inside the order transaction.
type CashService struct {
	movementRepo cashbox.CashMovementRepository
}

// NewCashService creates a new CashService
func NewCashService(movementRepo cashbox.CashMovementRepository) *CashService {
	return &CashService{movementRepo: movementRepo}
}

// RecordMovement records a manual cash movement
func (s *CashService) RecordMovement(ctx context.Context, req RecordMovementRequest) (*CashMovementResponse, error) {
	movement, err := cashbox.NewCashMovement(
		cashbox.CashMovementType(req.Type),
		cashbox.PaymentMethod(req.Method),
		valueobject.NewMoneyCOP(req.Amount),
		req.Concept,
	)
	if err != nil {
		return nil, err
	}
	if req.Reference != "" {
		movement.WithReference(req.Reference)
	}

	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, err
	}

	response := ToCashMovementResponse(movement)
	return &response, nil
}

// GetByID retrieves a cash movement by ID
func (s *CashService) GetByID(ctx context.Context, id uuid.UUID) (*CashMovementResponse, error) {
	movement, err := s.movementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCashMovementResponse(movement)
	return &response, nil
}

// List retrieves cash movements, optionally restricted to a date range
func (s *CashService) List(ctx context.Context, filter CashMovementListFilter) ([]CashMovementResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	var (
		movements []cashbox.CashMovement
		err       error
	)
	if filter.StartDate != nil && filter.EndDate != nil {
		movements, err = s.movementRepo.FindByDateRange(ctx, *filter.StartDate, *filter.EndDate, domainFilter)
	} else {
		movements, err = s.movementRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.movementRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCashMovementResponses(movements), total, nil
}

// ListByReference retrieves the cash movements tied to a document,
// e.g. an order number
func (s *CashService) ListByReference(ctx context.Context, reference string) ([]CashMovementResponse, error) {
	movements, err := s.movementRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	return ToCashMovementResponses(movements), nil
}

// Balance returns the current net cash balance
func (s *CashService) Balance(ctx context.Context) (*BalanceResponse, error) {
	balance, err := s.movementRepo.Balance(ctx)
	if err != nil {
		return nil, err
	}
	return &BalanceResponse{Balance: balance, AsOf: time.Now()}, nil
}
