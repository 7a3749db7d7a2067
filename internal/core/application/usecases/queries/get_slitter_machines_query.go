package queries

import (
	"errors"

	"ordersync/internal/pkg/guard"
)

var ErrGetSlitterMachinesQueryIsNotConstructed = errors.New(
	"GetSlitterMachinesQuery must be created via NewGetSlitterMachinesQuery constructor",
)

// GetSlitterMachinesQuery lists the active slitter machines.
type GetSlitterMachinesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetSlitterMachinesQuery() GetSlitterMachinesQuery {
	return GetSlitterMachinesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetSlitterMachinesQuery) Validate() error {
	return q.guard.Validate(ErrGetSlitterMachinesQueryIsNotConstructed)
}

type SlitterMachineView struct {
	ID   int
	Code string
	Name string
}
