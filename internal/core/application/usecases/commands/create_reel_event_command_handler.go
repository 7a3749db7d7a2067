package commands

import (
	"context"
	"errors"
	"log/slog"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/reel"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/errs"
	"ordersync/internal/pkg/metrics"
)

// Reel event outcomes, also used as metric labels.
const (
	reelOutcomeOK           = "ok"
	reelOutcomeDBFailed     = "db_failed"
	reelOutcomeRemoteFailed = "remote_failed"
)

// CreateReelEventCommandHandler stores a reel event and registers it on the
// remote system as one unit.
//
// The header and detail rows are inserted inside a transaction that is only
// committed after the remote system accepted the set. A remote failure or a
// store failure rolls everything back.
type CreateReelEventCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	remote     ports.RemoteExecutionClient
	audit      auditor
	clock      ports.Clock
	logger     *slog.Logger
}

func NewCreateReelEventCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	remote ports.RemoteExecutionClient,
	sink ports.AuditSink,
	clock ports.Clock,
	logger *slog.Logger,
) CreateReelEventCommandHandler {
	return CreateReelEventCommandHandler{
		uowFactory: uowFactory,
		remote:     remote,
		audit:      auditor{sink: sink},
		clock:      clockOrSystem(clock),
		logger:     logger.With("component", "reel_events"),
	}
}

// Handle returns the message id of the stored event.
//
// Returns:
//   - PersistenceError with RolledBack set when a local insert fails
//   - RemoteError when the remote call fails; the transaction is rolled back
//   - PersistenceError when the commit fails after the remote system accepted the set
func (h *CreateReelEventCommandHandler) Handle(ctx context.Context, cmd CreateReelEventCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	event, err := reel.NewEvent(kernel.NewUUID(), cmd.Shape(), cmd.Details(), h.clock.Now())
	if err != nil {
		return kernel.UUID{}, err
	}

	messageID := event.MessageID()
	params := orderParam(event.ProductionOrder())

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ReelEventRepository().Add(ctx, event); err != nil {
		err = h.rollback(ctx, uow, err)
		metrics.IncReelEvent(reelOutcomeDBFailed)
		h.audit.record(ctx, event.UserID(), ActionCreateReelEventDBFailed, params, messageID, err)
		return kernel.UUID{}, err
	}

	resp, callErr := h.remote.CreateSet(ctx, createSetRequest(event))
	if failure := remoteFailure(remoteCreateSet, resp, callErr, false); failure != nil {
		_ = h.rollback(ctx, uow, failure)
		metrics.IncReelEvent(reelOutcomeRemoteFailed)
		h.audit.record(ctx, event.UserID(), ActionCreateSetExternalFailed, params, messageID, failure)
		return kernel.UUID{}, failure
	}

	h.audit.record(ctx, event.UserID(), ActionCreateSetExternal, remoteParams(params, resp.Messages), messageID, nil)

	if err = uow.Commit(ctx); err != nil {
		h.logger.ErrorContext(ctx, "commit failed after the remote system accepted the set",
			"message_id", messageID.String(), "production_order", event.ProductionOrder(), "error", err)
		metrics.IncReelEvent(reelOutcomeDBFailed)
		h.audit.record(ctx, event.UserID(), ActionCreateReelEventDBFailed, params, messageID, err)
		return kernel.UUID{}, err
	}

	metrics.IncReelEvent(reelOutcomeOK)
	h.audit.record(ctx, event.UserID(), ActionCreateReelEvent, params, messageID, nil)
	return messageID, nil
}

// rollback undoes the transaction and marks cause as rolled back when it is
// a persistence error.
func (h *CreateReelEventCommandHandler) rollback(ctx context.Context, uow ports.UnitOfWork, cause error) error {
	if err := uow.Rollback(ctx); err != nil {
		h.logger.ErrorContext(ctx, "rollback failed", "error", err, "cause", cause)
		return cause
	}

	var persistenceErr *errs.PersistenceError
	if errors.As(cause, &persistenceErr) {
		persistenceErr.RolledBack = true
	}
	return cause
}

func createSetRequest(event *reel.Event) ports.CreateSetRequest {
	details := event.Details()
	records := make([]ports.ReelRecord, 0, len(details))
	for _, d := range details {
		records = append(records, ports.ReelRecord{
			SlitterShaft:   d.Shaft(),
			ManualExit:     d.ManualExit(),
			ProductionCode: d.ProductCode(),
			EdgeTrim:       d.EdgeTrim(),
		})
	}

	return ports.CreateSetRequest{
		MessageID:       event.MessageID(),
		ProductionOrder: event.ProductionOrder(),
		UpperShaftReels: event.UpperShaftReels(),
		LowerShaftReels: event.LowerShaftReels(),
		ReelLength:      event.ReelLength(),
		EndOfLot:        event.EndOfLot(),
		Records:         records,
	}
}
