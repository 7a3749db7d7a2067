package commands

import (
	"context"
	"log/slog"

	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
)

// StopResult reports a stop that got past the remote stage. LocalStopError is
// set when the remote system stopped the order but the local stop action
// failed; Status is then 920 instead of 930.
type StopResult struct {
	ProductionOrder int
	Status          order.Status
	LocalStopError  string
	Messages        []string
}

// StopOrderCommandHandler stops an order remotely and then locally.
//
// Unlike start, no status window is checked before the remote call: the
// remote system decides whether the order can be stopped. Remote failures
// leave the local status untouched.
type StopOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	remote     ports.RemoteExecutionClient
	audit      auditor
	clock      ports.Clock
	logger     *slog.Logger
}

func NewStopOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	remote ports.RemoteExecutionClient,
	sink ports.AuditSink,
	clock ports.Clock,
	logger *slog.Logger,
) StopOrderCommandHandler {
	return StopOrderCommandHandler{
		uowFactory: uowFactory,
		remote:     remote,
		audit:      auditor{sink: sink},
		clock:      clockOrSystem(clock),
		logger:     logger.With("component", "stop_order"),
	}
}

// Handle returns:
//   - ObjectNotFoundError when the order does not exist locally (no remote call)
//   - RemoteError with NotFound set when the remote system does not know the order
//   - RemoteError for transport, non-2xx and logical failures
//   - the record store error when the final status write fails
func (h *StopOrderCommandHandler) Handle(ctx context.Context, cmd StopOrderCommand) (StopResult, error) {
	if err := cmd.Validate(); err != nil {
		return StopResult{}, err
	}

	repo := orders(h.uowFactory)
	current, err := repo.Get(ctx, cmd.ProductionOrder())
	if err != nil {
		return StopResult{}, err
	}

	messageID := current.MessageID()
	params := orderParam(current.ProductionOrder())

	resp, callErr := h.remote.StopOrder(ctx, ports.OrderCommand{
		MessageID:       messageID,
		ProductionOrder: current.ProductionOrder(),
		Slitter:         current.Slitter(),
	})

	if failure := remoteFailure(remoteStopOrder, resp, callErr, true); failure != nil {
		h.audit.record(ctx, cmd.UserID(), ActionStopOrderExternalFailed, params, messageID, failure)
		return StopResult{}, failure
	}

	h.audit.record(ctx, cmd.UserID(), ActionStopOrderExternal, remoteParams(params, resp.Messages), messageID, nil)

	result := StopResult{
		ProductionOrder: current.ProductionOrder(),
		Messages:        resp.Messages,
	}

	event := order.EventStopped
	if stopErr := repo.MarkStopped(ctx, current.ProductionOrder(), h.clock.Now()); stopErr != nil {
		h.logger.WarnContext(ctx, "local stop failed after remote stop",
			"production_order", current.ProductionOrder(), "error", stopErr)
		h.audit.record(ctx, cmd.UserID(), ActionStopOrderLocalFailed, params, messageID, stopErr)

		event = order.EventStopFailedLocal
		result.LocalStopError = stopErr.Error()
	}

	next, err := current.Apply(event)
	if err == nil {
		err = repo.UpdateStatus(ctx, current.ProductionOrder(), next)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update order status after stop",
			"production_order", current.ProductionOrder(), "error", err)
		h.audit.record(ctx, cmd.UserID(), ActionStopOrderLocalFailed, params, messageID, err)
		return StopResult{}, err
	}

	result.Status = next
	h.audit.record(ctx, cmd.UserID(), ActionStopOrder, params, messageID, nil)
	return result, nil
}
