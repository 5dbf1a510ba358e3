package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/almacen/backend/internal/domain/inventory"
	"github.com/almacen/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements StockMovementRepository using
// GORM. The movement log is append-only: rows are created, never
// updated or deleted.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// FindByID finds a movement by its ID
func (r *GormStockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	var movement inventory.StockMovement
	if err := r.db.WithContext(ctx).First(&movement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindByProduct finds all movements for a product, newest first
func (r *GormStockMovementRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := applyMovementFilter(
		r.db.WithContext(ctx).Model(&inventory.StockMovement{}).
			Where("product_id = ?", productID),
		filter,
	)
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindAllByProduct finds the complete movement log for a product,
// oldest first. Used for ledger rebuilds, so no pagination.
func (r *GormStockMovementRepository) FindAllByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("movement_date ASC, created_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByReference finds all movements with the given reference
func (r *GormStockMovementRepository) FindByReference(ctx context.Context, reference string) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		Order("movement_date ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByDateRange finds movements within a date range
func (r *GormStockMovementRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := applyMovementFilter(
		r.db.WithContext(ctx).Model(&inventory.StockMovement{}).
			Where("movement_date >= ? AND movement_date <= ?", from, to),
		filter,
	)
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindAll finds all movements matching the filter
func (r *GormStockMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := applyMovementFilter(r.db.WithContext(ctx).Model(&inventory.StockMovement{}), filter)
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// Save appends a movement to the log
func (r *GormStockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// SaveBatch appends multiple movements to the log
func (r *GormStockMovementRepository) SaveBatch(ctx context.Context, movements []*inventory.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(movements).Error
}

// CountByProduct counts movements for a product
func (r *GormStockMovementRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Count counts movements matching the filter
func (r *GormStockMovementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyMovementConditions(r.db.WithContext(ctx).Model(&inventory.StockMovement{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyMovementFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applyMovementConditions(query, filter)
	query = applyPagination(query, filter)
	return applyOrdering(query, filter, "movement_date DESC")
}

func applyMovementConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "direction":
			query = query.Where("direction = ?", value)
		case "reference":
			query = query.Where("reference = ?", value)
		}
	}
	return query
}

// Ensure GormStockMovementRepository implements StockMovementRepository
var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
