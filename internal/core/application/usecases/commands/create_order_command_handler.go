package commands

import (
	"context"
	"errors"
	"log/slog"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/errs"
)

// CreateOrderCommandHandler creates orders locally. Registration on the
// remote system is left to the synchronizer.
//
// When duplicate checking is enabled the remote system is asked first; an
// order it already knows is refused with a conflict and, if it exists
// locally as pending, marked as a remote duplicate.
type CreateOrderCommandHandler struct {
	uowFactory      ports.UnitOfWorkFactory
	remote          ports.RemoteExecutionClient
	audit           auditor
	clock           ports.Clock
	logger          *slog.Logger
	checkDuplicates bool
}

func NewCreateOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	remote ports.RemoteExecutionClient,
	sink ports.AuditSink,
	clock ports.Clock,
	logger *slog.Logger,
	checkDuplicates bool,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:      uowFactory,
		remote:          remote,
		audit:           auditor{sink: sink},
		clock:           clockOrSystem(clock),
		logger:          logger.With("component", "create_order"),
		checkDuplicates: checkDuplicates,
	}
}

// Handle creates the order and returns it.
//
// Returns:
//   - ConflictError when the remote system or the record store already holds the number
//   - the record store error when the insert fails
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	correlationID := kernel.NewUUID()
	params := orderParam(cmd.ProductionOrder())
	repo := orders(h.uowFactory)

	if h.checkDuplicates && h.existsRemotely(ctx, cmd.ProductionOrder()) {
		h.markDuplicate(ctx, repo, cmd.ProductionOrder())

		err := errs.NewConflictError("productionOrder", cmd.ProductionOrder(), "already exists on the remote system")
		h.audit.record(ctx, cmd.UserID(), ActionCreateOrderDuplicate, params, correlationID, err)
		return nil, err
	}

	created, err := order.NewOrder(cmd.ProductionOrder(), cmd.UserID(), correlationID, h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, created); err != nil {
		h.audit.record(ctx, cmd.UserID(), ActionCreateOrderFailed, params, correlationID, err)
		return nil, err
	}

	h.audit.record(ctx, cmd.UserID(), ActionCreateOrder, params, correlationID, nil)
	return created, nil
}

// existsRemotely treats transport failures and non-2xx answers as absent.
func (h *CreateOrderCommandHandler) existsRemotely(ctx context.Context, productionOrder int) bool {
	resp, err := h.remote.GetOrder(ctx, productionOrder)
	if err != nil {
		h.logger.WarnContext(ctx, "duplicate check failed, creating anyway",
			"production_order", productionOrder, "error", err)
		return false
	}
	return resp.IsSuccessStatus()
}

// markDuplicate sets 201 on a local non-terminal row with the same number.
// It is best effort: failures are logged only.
func (h *CreateOrderCommandHandler) markDuplicate(ctx context.Context, repo ports.OrderRepository, productionOrder int) {
	existing, err := repo.Get(ctx, productionOrder)
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.WarnContext(ctx, "failed to load order for duplicate mark",
				"production_order", productionOrder, "error", err)
		}
		return
	}

	next, err := existing.Apply(order.EventDuplicateDetected)
	if err != nil {
		h.logger.InfoContext(ctx, "order not marked as duplicate",
			"production_order", productionOrder, "status", existing.Status().String(), "error", err)
		return
	}

	if err = repo.UpdateStatus(ctx, productionOrder, next); err != nil {
		h.logger.WarnContext(ctx, "failed to mark order as duplicate",
			"production_order", productionOrder, "error", err)
	}
}
