package orderrepo

import (
	"context"
	"errors"
	"time"

	"ordersync/internal/adapters/out/postgres/dberr"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts a new order. A duplicate number is a conflict.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return errs.NewConflictError("productionOrder", dto.ProductionOrder, "already exists")
		}
		return dberr.Wrap("create order", err)
	}

	return nil
}

// Update writes the editable fields. The status is never written here.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("production_order = ?", aggregate.ProductionOrder()).
		Updates(map[string]any{
			"slitter":               aggregate.Slitter(),
			"last_modificator_user": aggregate.LastModificatorUser(),
			"modified_at":           aggregate.ModifiedAt(),
		})
	if result.Error != nil {
		return dberr.Wrap("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("productionOrder", aggregate.ProductionOrder())
	}

	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, productionOrder int) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "production_order = ?", productionOrder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("productionOrder", productionOrder)
		}
		return nil, dberr.Wrap("get order", err)
	}

	return toDomain(dto), nil
}

func (r *GormOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("created_at DESC, production_order DESC").Find(&dtos).Error; err != nil {
		return nil, dberr.Wrap("list orders", err)
	}

	return toDomainList(dtos), nil
}

func (r *GormOrderRepository) UpdateStatus(ctx context.Context, productionOrder int, status order.Status) error {
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("production_order = ?", productionOrder).
		Update("status", int(status))
	if result.Error != nil {
		return dberr.Wrap("update order status", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("productionOrder", productionOrder)
	}

	return nil
}

func (r *GormOrderRepository) MarkStopped(ctx context.Context, productionOrder int, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("production_order = ?", productionOrder).
		Updates(map[string]any{"stopped_at": at, "modified_at": at})
	if result.Error != nil {
		return dberr.Wrap("stop order", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("productionOrder", productionOrder)
	}

	return nil
}

// Delete soft-deletes the row: the status moves to the terminal range so a
// second delete is answered with a conflict instead of a not-found.
func (r *GormOrderRepository) Delete(ctx context.Context, productionOrder int, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("production_order = ?", productionOrder).
		Updates(map[string]any{
			"status":      int(order.StatusDeleted),
			"removed_at":  at,
			"modified_at": at,
		})
	if result.Error != nil {
		return 0, dberr.Wrap("delete order", result.Error)
	}

	return result.RowsAffected, nil
}

// GetRegistrationCandidates returns pending orders: codes below 900 except
// the duplicate marker, which the remote system already holds.
func (r *GormOrderRepository) GetRegistrationCandidates(ctx context.Context, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status >= 0 AND status < ? AND status <> ?", int(order.StatusRegistered), int(order.StatusDuplicateRemote)).
		Order("created_at, production_order").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, dberr.Wrap("get registration candidates", err)
	}

	return toDomainList(dtos), nil
}

func toDomainList(dtos []OrderDTO) []*order.Order {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		orders = append(orders, toDomain(dto))
	}
	return orders
}
