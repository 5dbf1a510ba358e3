package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/almacen/backend/internal/domain/inventory"
	"github.com/almacen/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRecordRepository implements StockRecordRepository using GORM
type GormStockRecordRepository struct {
	db *gorm.DB
}

// NewGormStockRecordRepository creates a new GormStockRecordRepository
func NewGormStockRecordRepository(db *gorm.DB) *GormStockRecordRepository {
	return &GormStockRecordRepository{db: db}
}

// FindByID finds a stock record by its ID
func (r *GormStockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockRecord, error) {
	var record inventory.StockRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByProduct finds the stock record for a product
func (r *GormStockRecordRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*inventory.StockRecord, error) {
	var record inventory.StockRecord
	if err := r.db.WithContext(ctx).First(&record, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByProductForUpdate finds the stock record for a product and takes
// a row lock. Must be called inside a transaction.
func (r *GormStockRecordRepository) FindByProductForUpdate(ctx context.Context, productID uuid.UUID) (*inventory.StockRecord, error) {
	var record inventory.StockRecord
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&record, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByProducts finds stock records for multiple products
func (r *GormStockRecordRepository) FindByProducts(ctx context.Context, productIDs []uuid.UUID) ([]inventory.StockRecord, error) {
	if len(productIDs) == 0 {
		return []inventory.StockRecord{}, nil
	}

	var records []inventory.StockRecord
	if err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindAll finds all stock records matching the filter
func (r *GormStockRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockRecord, error) {
	var records []inventory.StockRecord
	query := applyStockRecordFilter(r.db.WithContext(ctx).Model(&inventory.StockRecord{}), filter)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetOrCreate returns the stock record for a product, creating a
// zero-quantity record if none exists yet.
func (r *GormStockRecordRepository) GetOrCreate(ctx context.Context, productID uuid.UUID) (*inventory.StockRecord, error) {
	record, err := r.FindByProductForUpdate(ctx, productID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	record, err = inventory.NewStockRecord(productID)
	if err != nil {
		return nil, err
	}

	// ON CONFLICT handles the race where two transactions create the
	// record for the same product at once.
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoNothing: true,
		}).
		Create(record)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return r.FindByProductForUpdate(ctx, productID)
	}

	return record, nil
}

// Save creates or updates a stock record
func (r *GormStockRecordRepository) Save(ctx context.Context, record *inventory.StockRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormStockRecordRepository) SaveWithLock(ctx context.Context, record *inventory.StockRecord) error {
	result := r.db.WithContext(ctx).
		Model(record).
		Where("id = ? AND version = ?", record.ID, record.Version-1).
		Updates(map[string]interface{}{
			"quantity":   record.Quantity,
			"version":    record.Version,
			"updated_at": record.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a stock record
func (r *GormStockRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.StockRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts stock records matching the filter
func (r *GormStockRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyStockRecordConditions(r.db.WithContext(ctx).Model(&inventory.StockRecord{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyStockRecordFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applyStockRecordConditions(query, filter)
	query = applyPagination(query, filter)
	return applyOrdering(query, filter, "updated_at DESC")
}

func applyStockRecordConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "has_stock":
			if value == true {
				query = query.Where("quantity > 0")
			}
		case "no_stock":
			if value == true {
				query = query.Where("quantity = 0")
			}
		}
	}
	return query
}

// applyPagination applies page/page-size limits shared by all repositories
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// applyOrdering applies the filter's ordering, falling back to the default
func applyOrdering(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	if filter.OrderBy == "" {
		return query.Order(defaultOrder)
	}
	orderDir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		orderDir = "DESC"
	}
	return query.Order(filter.OrderBy + " " + orderDir)
}

// Ensure GormStockRecordRepository implements StockRecordRepository
var _ inventory.StockRecordRepository = (*GormStockRecordRepository)(nil)
