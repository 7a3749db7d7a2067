package commands

import (
	"errors"
	"fmt"
	"strings"

	"ordersync/internal/pkg/errs"
	"ordersync/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

const maxSlitterLength = 64

// UpdateOrderCommand changes the slitter an order runs on. The status is
// not writable through it: only lifecycle commands move the status.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	productionOrder int
	slitter         string
	userID          int

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(productionOrder int, slitter string, userID int) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductionOrder(productionOrder),
		cmd.setSlitter(slitter),
		cmd.setUserID(userID),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) ProductionOrder() int {
	return c.productionOrder
}

func (c UpdateOrderCommand) Slitter() string {
	return c.slitter
}

func (c UpdateOrderCommand) UserID() int {
	return c.userID
}

func (c *UpdateOrderCommand) setProductionOrder(n int) error {
	if n <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("productionOrder", fmt.Errorf("%d is not greater than 0", n))
	}

	c.productionOrder = n
	return nil
}

func (c *UpdateOrderCommand) setSlitter(slitter string) error {
	slitter = strings.TrimSpace(slitter)
	if len(slitter) > maxSlitterLength {
		return errs.NewValueIsInvalidErrorWithCause("slitter", fmt.Errorf("longer than %d characters", maxSlitterLength))
	}

	c.slitter = slitter
	return nil
}

func (c *UpdateOrderCommand) setUserID(userID int) error {
	if userID <= 0 {
		return errs.NewValueIsRequiredError("lastModificatorUser")
	}

	c.userID = userID
	return nil
}
