package queries

import (
	"context"

	"ordersync/internal/pkg/errs"

	"gorm.io/gorm"
)

type ValidateOrderExistsQueryHandler struct {
	db *gorm.DB
}

func NewValidateOrderExistsQueryHandler(db *gorm.DB) ValidateOrderExistsQueryHandler {
	return ValidateOrderExistsQueryHandler{db: db}
}

func (h ValidateOrderExistsQueryHandler) Handle(ctx context.Context, query ValidateOrderExistsQuery) (bool, error) {
	if err := query.Validate(); err != nil {
		return false, err
	}

	db, err := conn(h.db)
	if err != nil {
		return false, err
	}

	var count int64
	if err = db.WithContext(ctx).Raw(`
		SELECT COUNT(1)
		FROM production_orders
		WHERE production_order = ?
	`, query.ProductionOrder()).Scan(&count).Error; err != nil {
		return false, errs.NewPersistenceError("validate order", err)
	}

	return count > 0, nil
}
