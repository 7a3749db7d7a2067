package queries

import (
	"context"
	"database/sql"
	"errors"

	"ordersync/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order or ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	db, err := conn(h.db)
	if err != nil {
		return OrderView{}, err
	}

	row := db.WithContext(ctx).Raw(selectOrders+`
	WHERE production_order = ?`, query.ProductionOrder()).Row()

	view, err := scanOrderView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderView{}, errs.NewObjectNotFoundError("productionOrder", query.ProductionOrder())
	}
	if err != nil {
		return OrderView{}, errs.NewPersistenceError("get order", err)
	}

	return view, nil
}
