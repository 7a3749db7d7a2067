package commands

import (
	"errors"
	"fmt"

	"ordersync/internal/pkg/errs"
	"ordersync/internal/pkg/guard"
)

var (
	ErrStartOrderCommandIsNotConstructed = errors.New(
		"StartOrderCommand must be created via NewStartOrderCommand constructor",
	)
	ErrStopOrderCommandIsNotConstructed = errors.New(
		"StopOrderCommand must be created via NewStopOrderCommand constructor",
	)
	ErrDeleteOrderCommandIsNotConstructed = errors.New(
		"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
	)
)

// orderCommand addresses an existing order on behalf of a user. The user is
// optional: 0 records a system action.
type orderCommand struct {
	productionOrder int
	userID          int

	guard guard.ConstructorGuard
}

func newOrderCommand(productionOrder, userID int) (orderCommand, error) {
	if productionOrder <= 0 {
		return orderCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"productionOrder", fmt.Errorf("%d is not greater than 0", productionOrder))
	}
	if userID < 0 {
		return orderCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"userId", fmt.Errorf("%d is negative", userID))
	}

	return orderCommand{
		productionOrder: productionOrder,
		userID:          userID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c orderCommand) ProductionOrder() int {
	return c.productionOrder
}

func (c orderCommand) UserID() int {
	return c.userID
}

// StartOrderCommand asks the remote system to start a registered order.
type StartOrderCommand struct {
	orderCommand
}

func NewStartOrderCommand(productionOrder, userID int) (StartOrderCommand, error) {
	c, err := newOrderCommand(productionOrder, userID)
	if err != nil {
		return StartOrderCommand{}, err
	}
	return StartOrderCommand{orderCommand: c}, nil
}

func (c StartOrderCommand) Validate() error {
	return c.guard.Validate(ErrStartOrderCommandIsNotConstructed)
}

// StopOrderCommand asks the remote system to stop an order, then stops it locally.
type StopOrderCommand struct {
	orderCommand
}

func NewStopOrderCommand(productionOrder, userID int) (StopOrderCommand, error) {
	c, err := newOrderCommand(productionOrder, userID)
	if err != nil {
		return StopOrderCommand{}, err
	}
	return StopOrderCommand{orderCommand: c}, nil
}

func (c StopOrderCommand) Validate() error {
	return c.guard.Validate(ErrStopOrderCommandIsNotConstructed)
}

// DeleteOrderCommand removes an order, remotely first when it was registered.
type DeleteOrderCommand struct {
	orderCommand
}

func NewDeleteOrderCommand(productionOrder, userID int) (DeleteOrderCommand, error) {
	c, err := newOrderCommand(productionOrder, userID)
	if err != nil {
		return DeleteOrderCommand{}, err
	}
	return DeleteOrderCommand{orderCommand: c}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}
