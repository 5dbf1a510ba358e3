package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/almacen/backend/internal/domain/shared"
	"github.com/almacen/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID, including lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate finds an order by ID and takes a row lock on the
// header. Must be called inside a transaction. Lines are loaded with
// a separate query; they are never modified concurrently because all
// line mutations go through the locked header.
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", order.ID).
		Order("created_at ASC").
		Find(&order.Lines).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByNumber finds an order by its document number
func (r *GormOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.Order{}).Preload("Lines"), filter)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByKind finds orders of a specific kind
func (r *GormOrderRepository) FindByKind(ctx context.Context, kind trade.OrderKind, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.Order{}).Preload("Lines").
			Where("kind = ?", kind),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds orders of a kind in a specific status
func (r *GormOrderRepository) FindByStatus(ctx context.Context, kind trade.OrderKind, status trade.OrderStatus, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.Order{}).Preload("Lines").
			Where("kind = ? AND status = ?", kind, status),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByPartner finds orders for a specific partner
func (r *GormOrderRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.Order{}).Preload("Lines").
			Where("partner_id = ?", partnerID),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order with its lines
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(order).Error
}

// SaveWithLock saves with optimistic locking (checks version).
// Lines are replaced wholesale; removed lines are deleted.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *trade.Order) error {
	result := r.db.WithContext(ctx).
		Model(order).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]interface{}{
			"total_amount":  order.TotalAmount,
			"status":        order.Status,
			"notes":         order.Notes,
			"confirmed_at":  order.ConfirmedAt,
			"cancelled_at":  order.CancelledAt,
			"cancel_reason": order.CancelReason,
			"version":       order.Version,
			"updated_at":    order.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}

	return r.saveLines(ctx, order)
}

func (r *GormOrderRepository) saveLines(ctx context.Context, order *trade.Order) error {
	keep := make([]uuid.UUID, 0, len(order.Lines))
	for i := range order.Lines {
		line := &order.Lines[i]
		if err := r.db.WithContext(ctx).Save(line).Error; err != nil {
			return err
		}
		keep = append(keep, line.ID)
	}

	query := r.db.WithContext(ctx).Where("order_id = ?", order.ID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(&trade.OrderLine{}).Error
}

// Delete deletes an order with its lines
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&trade.OrderLine{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&trade.Order{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts orders of a kind grouped by status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, kind trade.OrderKind) (map[trade.OrderStatus]int64, error) {
	var rows []struct {
		Status trade.OrderStatus
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Select("status, COUNT(*) as total").
		Where("kind = ?", kind).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[trade.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// GenerateOrderNumber generates the next sequential document number
// for the given kind. Format: PREFIX-YYYY-NNNNN, e.g. "VENTA-2026-00001".
func (r *GormOrderRepository) GenerateOrderNumber(ctx context.Context, kind trade.OrderKind) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("%s-%d-", kind.NumberPrefix(), year)

	var lastOrder trade.Order
	err := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Where("order_number LIKE ?", prefix+"%").
		Order("order_number DESC").
		First(&lastOrder).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastOrder.OrderNumber != "" {
		parts := strings.Split(lastOrder.OrderNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)
	query = applyPagination(query, filter)
	return applyOrdering(query, filter, "created_at DESC")
}

func (r *GormOrderRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR partner_name ILIKE ?", search, search)
	}
	for key, value := range filter.Filters {
		switch key {
		case "kind":
			query = query.Where("kind = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "partner_id":
			query = query.Where("partner_id = ?", value)
		case "confirmed_after":
			query = query.Where("confirmed_at >= ?", value)
		case "confirmed_before":
			query = query.Where("confirmed_at <= ?", value)
		}
	}
	return query
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
