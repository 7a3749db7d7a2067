package commands

import (
	"context"

	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
)

// UpdateOrderCommandHandler reassigns an order to another slitter.
type UpdateOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      ports.Clock
}

func NewUpdateOrderCommandHandler(uowFactory ports.UnitOfWorkFactory, clock ports.Clock) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clockOrSystem(clock),
	}
}

// Handle returns the updated order, or ObjectNotFoundError when it does not exist.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	repo := orders(h.uowFactory)
	current, err := repo.Get(ctx, cmd.ProductionOrder())
	if err != nil {
		return nil, err
	}

	if err = current.Reassign(cmd.Slitter(), cmd.UserID(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, current); err != nil {
		return nil, err
	}

	return current, nil
}
