// Package queries contains read operations. Handlers read the record store
// directly with SQL and return flat views; nothing here changes state.
package queries

import (
	"database/sql"
	"time"

	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/pkg/errs"

	"gorm.io/gorm"
)

// OrderView is an order as shown to callers.
type OrderView struct {
	ProductionOrder     int
	Slitter             string
	CreatorUser         int
	LastModificatorUser int
	CreatedAt           time.Time
	ModifiedAt          time.Time
	Status              int
	State               string
	CorrelationID       string
}

const selectOrders = `
	SELECT
		production_order,
		slitter,
		creator_user,
		last_modificator_user,
		created_at,
		modified_at,
		status,
		correlation_id
	FROM production_orders`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderView(row rowScanner) (OrderView, error) {
	var (
		view          OrderView
		slitter       sql.NullString
		correlationID sql.NullString
	)

	if err := row.Scan(
		&view.ProductionOrder,
		&slitter,
		&view.CreatorUser,
		&view.LastModificatorUser,
		&view.CreatedAt,
		&view.ModifiedAt,
		&view.Status,
		&correlationID,
	); err != nil {
		return OrderView{}, err
	}

	view.Slitter = slitter.String
	view.CorrelationID = correlationID.String
	view.State = string(order.Status(view.Status).State())
	return view, nil
}

// conn returns the connection or ErrNotConfigured when the record store
// settings were missing at startup.
func conn(db *gorm.DB) (*gorm.DB, error) {
	if db == nil {
		return nil, errs.ErrNotConfigured
	}
	return db, nil
}
