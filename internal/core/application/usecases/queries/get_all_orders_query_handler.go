package queries

import (
	"context"

	"ordersync/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetAllOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetAllOrdersQueryHandler(db *gorm.DB) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db}
}

func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db, err := conn(h.db)
	if err != nil {
		return nil, err
	}

	rows, err := db.WithContext(ctx).Raw(selectOrders + `
	ORDER BY created_at DESC, production_order DESC`).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("list orders", err)
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	for rows.Next() {
		view, scanErr := scanOrderView(rows)
		if scanErr != nil {
			return nil, errs.NewPersistenceError("list orders", scanErr)
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("list orders", err)
	}

	return views, nil
}
