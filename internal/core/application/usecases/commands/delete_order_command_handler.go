package commands

import (
	"context"
	"log/slog"

	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/errs"
)

// DeleteOrderCommandHandler deletes an order. Registered orders (900..999)
// are deleted on the remote system first; a remote failure aborts the
// operation before anything changes locally.
type DeleteOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	remote     ports.RemoteExecutionClient
	audit      auditor
	clock      ports.Clock
	logger     *slog.Logger
}

func NewDeleteOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	remote ports.RemoteExecutionClient,
	sink ports.AuditSink,
	clock ports.Clock,
	logger *slog.Logger,
) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		remote:     remote,
		audit:      auditor{sink: sink},
		clock:      clockOrSystem(clock),
		logger:     logger.With("component", "delete_order"),
	}
}

// Handle returns ConflictError for orders already in the terminal range,
// without calling the remote system or touching the record store.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	repo := orders(h.uowFactory)
	current, err := repo.Get(ctx, cmd.ProductionOrder())
	if err != nil {
		return err
	}

	if err = current.ValidateDelete(); err != nil {
		return err
	}

	messageID := current.MessageID()
	params := orderParam(current.ProductionOrder())

	remoteDelete := current.RequiresRemoteDelete()
	if remoteDelete {
		resp, callErr := h.remote.DeleteOrder(ctx, ports.OrderCommand{
			MessageID:       messageID,
			ProductionOrder: current.ProductionOrder(),
			Slitter:         current.Slitter(),
		})
		if failure := remoteFailure(remoteDeleteOrder, resp, callErr, true); failure != nil {
			h.audit.record(ctx, cmd.UserID(), ActionDeleteOrderFailed, params, messageID, failure)
			return failure
		}
	}

	if _, err = current.Apply(order.EventDeleted); err != nil {
		return err
	}

	affected, err := repo.Delete(ctx, current.ProductionOrder(), h.clock.Now())
	if err == nil && affected == 0 {
		err = errs.NewObjectNotFoundError("productionOrder", current.ProductionOrder())
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "local delete failed",
			"production_order", current.ProductionOrder(), "remote_deleted", remoteDelete, "error", err)
		h.audit.record(ctx, cmd.UserID(), ActionDeleteOrderFailed, params, messageID, err)
		return err
	}

	h.audit.record(ctx, cmd.UserID(), ActionDeleteOrder, params, messageID, nil)
	return nil
}
