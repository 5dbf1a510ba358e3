package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/almacen/backend/internal/domain/cashbox"
	"github.com/almacen/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCashMovementRepository implements CashMovementRepository using
// GORM. Cash movements are append-only.
type GormCashMovementRepository struct {
	db *gorm.DB
}

// NewGormCashMovementRepository creates a new GormCashMovementRepository
func NewGormCashMovementRepository(db *gorm.DB) *GormCashMovementRepository {
	return &GormCashMovementRepository{db: db}
}

// FindByID finds a cash movement by its ID
func (r *GormCashMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*cashbox.CashMovement, error) {
	var movement cashbox.CashMovement
	if err := r.db.WithContext(ctx).First(&movement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindAll finds all movements matching the filter
func (r *GormCashMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]cashbox.CashMovement, error) {
	var movements []cashbox.CashMovement
	query := applyCashMovementConditions(r.db.WithContext(ctx).Model(&cashbox.CashMovement{}), filter)
	query = applyPagination(query, filter)
	query = applyOrdering(query, filter, "movement_date DESC")
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByReference finds all movements with the given reference
func (r *GormCashMovementRepository) FindByReference(ctx context.Context, reference string) ([]cashbox.CashMovement, error) {
	var movements []cashbox.CashMovement
	if err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		Order("movement_date ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByDateRange finds movements within a date range
func (r *GormCashMovementRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]cashbox.CashMovement, error) {
	var movements []cashbox.CashMovement
	query := applyCashMovementConditions(
		r.db.WithContext(ctx).Model(&cashbox.CashMovement{}).
			Where("movement_date >= ? AND movement_date <= ?", from, to),
		filter,
	)
	query = applyPagination(query, filter)
	query = applyOrdering(query, filter, "movement_date DESC")
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// Save appends a movement
func (r *GormCashMovementRepository) Save(ctx context.Context, movement *cashbox.CashMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// Balance returns the net balance (inflows minus outflows)
func (r *GormCashMovementRepository) Balance(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&cashbox.CashMovement{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0) as total", cashbox.CashMovementInflow).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Count counts movements matching the filter
func (r *GormCashMovementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyCashMovementConditions(r.db.WithContext(ctx).Model(&cashbox.CashMovement{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyCashMovementConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("concept ILIKE ? OR reference ILIKE ?", search, search)
	}
	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "method":
			query = query.Where("method = ?", value)
		case "reference":
			query = query.Where("reference = ?", value)
		}
	}
	return query
}

// Ensure GormCashMovementRepository implements CashMovementRepository
var _ cashbox.CashMovementRepository = (*GormCashMovementRepository)(nil)
