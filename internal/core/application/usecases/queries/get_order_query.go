package queries

import (
	"errors"
	"fmt"

	"ordersync/internal/pkg/errs"
	"ordersync/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order by number.
type GetOrderQuery struct {
	productionOrder int

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(productionOrder int) (GetOrderQuery, error) {
	if productionOrder <= 0 {
		return GetOrderQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"productionOrder", fmt.Errorf("%d is not greater than 0", productionOrder))
	}

	return GetOrderQuery{
		productionOrder: productionOrder,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) ProductionOrder() int {
	return q.productionOrder
}
