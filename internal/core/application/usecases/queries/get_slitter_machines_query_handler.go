package queries

import (
	"context"

	"ordersync/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetSlitterMachinesQueryHandler struct {
	db *gorm.DB
}

func NewGetSlitterMachinesQueryHandler(db *gorm.DB) GetSlitterMachinesQueryHandler {
	return GetSlitterMachinesQueryHandler{db: db}
}

func (h GetSlitterMachinesQueryHandler) Handle(ctx context.Context, query GetSlitterMachinesQuery) ([]SlitterMachineView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db, err := conn(h.db)
	if err != nil {
		return nil, err
	}

	machines := make([]SlitterMachineView, 0)
	if err = db.WithContext(ctx).Raw(`
		SELECT id, code, name
		FROM slitter_machines
		WHERE active = ?
		ORDER BY code
	`, true).Scan(&machines).Error; err != nil {
		return nil, errs.NewPersistenceError("list slitter machines", err)
	}

	return machines, nil
}
