package commands

import (
	"context"
	"log/slog"

	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
)

// StartOrderCommandHandler starts a registered order on the remote system.
//
// The status must lie in 900..999, otherwise nothing is sent. A failed start
// (no response, non-2xx or a logical error) moves the order to 901; a
// successful one to 1300.
type StartOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	remote     ports.RemoteExecutionClient
	audit      auditor
	logger     *slog.Logger
}

func NewStartOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	remote ports.RemoteExecutionClient,
	sink ports.AuditSink,
	logger *slog.Logger,
) StartOrderCommandHandler {
	return StartOrderCommandHandler{
		uowFactory: uowFactory,
		remote:     remote,
		audit:      auditor{sink: sink},
		logger:     logger.With("component", "start_order"),
	}
}

func (h *StartOrderCommandHandler) Handle(ctx context.Context, cmd StartOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	repo := orders(h.uowFactory)
	current, err := repo.Get(ctx, cmd.ProductionOrder())
	if err != nil {
		return err
	}

	if err = current.ValidateStart(); err != nil {
		return err
	}

	messageID := current.MessageID()
	params := orderParam(current.ProductionOrder())

	resp, callErr := h.remote.StartOrder(ctx, ports.OrderCommand{
		MessageID:       messageID,
		ProductionOrder: current.ProductionOrder(),
		Slitter:         current.Slitter(),
	})

	if failure := remoteFailure(remoteStartOrder, resp, callErr, false); failure != nil {
		h.persist(ctx, repo, current, order.EventStartFailed)
		h.audit.record(ctx, cmd.UserID(), ActionStartOrderFailed, params, messageID, failure)
		return failure
	}

	if err = h.persist(ctx, repo, current, order.EventStarted); err != nil {
		h.audit.record(ctx, cmd.UserID(), ActionStartOrderFailed, params, messageID, err)
		return err
	}

	h.audit.record(ctx, cmd.UserID(), ActionStartOrder, params, messageID, nil)
	return nil
}

// persist applies event and writes the resulting code. Errors are logged and
// returned; on the failure path the remote error takes precedence.
func (h *StartOrderCommandHandler) persist(ctx context.Context, repo ports.OrderRepository, o *order.Order, event order.Event) error {
	next, err := o.Apply(event)
	if err == nil {
		err = repo.UpdateStatus(ctx, o.ProductionOrder(), next)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update order status",
			"production_order", o.ProductionOrder(), "event", string(event), "error", err)
	}
	return err
}
