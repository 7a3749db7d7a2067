package queries

import (
	"errors"

	"ordersync/internal/pkg/guard"
)

var ErrValidateOrderExistsQueryIsNotConstructed = errors.New(
	"ValidateOrderExistsQuery must be created via NewValidateOrderExistsQuery constructor",
)

// ValidateOrderExistsQuery checks whether an order number is taken locally.
// Any number is accepted, including ones outside the creation range.
type ValidateOrderExistsQuery struct {
	productionOrder int

	guard guard.ConstructorGuard
}

func NewValidateOrderExistsQuery(productionOrder int) ValidateOrderExistsQuery {
	return ValidateOrderExistsQuery{
		productionOrder: productionOrder,
		guard:           guard.NewConstructorGuard(),
	}
}

func (q ValidateOrderExistsQuery) Validate() error {
	return q.guard.Validate(ErrValidateOrderExistsQueryIsNotConstructed)
}

func (q ValidateOrderExistsQuery) ProductionOrder() int {
	return q.productionOrder
}
