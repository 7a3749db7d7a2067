package commands

import (
	"errors"
	"fmt"

	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/pkg/errs"
	"ordersync/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand requests a new production order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(7, 60000)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID          int
	productionOrder int

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the requesting user and the order number
// (50000 < n < 1000000) before anything else happens.
func NewCreateOrderCommand(userID, productionOrder int) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setProductionOrder(productionOrder),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) UserID() int {
	return c.userID
}

func (c CreateOrderCommand) ProductionOrder() int {
	return c.productionOrder
}

func (c *CreateOrderCommand) setUserID(userID int) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("userId", fmt.Errorf("%d is not greater than 0", userID))
	}

	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setProductionOrder(n int) error {
	if err := order.ValidateProductionOrder(n); err != nil {
		return err
	}

	c.productionOrder = n
	return nil
}
