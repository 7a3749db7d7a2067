package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/errs"
	"ordersync/internal/pkg/metrics"

	"github.com/cenkalti/backoff/v4"
)

// Per-order sync outcomes, also used as metric labels.
const (
	SyncOutcomeRegistered = "registered"
	SyncOutcomeFailed     = "failed"
	SyncOutcomeNotWritten = "status_not_written"
)

const (
	statusWriteRetries        = 2
	defaultStatusWriteBackoff = 200 * time.Millisecond
)

// SyncReport summarises one iteration.
type SyncReport struct {
	Candidates int
	Processed  int
	Registered int
	Failed     int
	Cancelled  bool
}

// SyncPendingOrdersCommandHandler pushes orders awaiting their initial
// registration to the remote system, one at a time.
//
// A successful push moves the order to 900; any failure writes 200 so the
// order stays below 900 and is picked up again by a later iteration. A
// failing order never aborts the batch. Once ctx is cancelled no new order
// is started, and an order whose push was interrupted by the cancellation
// keeps its status.
type SyncPendingOrdersCommandHandler struct {
	uowFactory   ports.UnitOfWorkFactory
	remote       ports.RemoteExecutionClient
	audit        auditor
	clock        ports.Clock
	logger       *slog.Logger
	retryBackoff time.Duration
}

func NewSyncPendingOrdersCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	remote ports.RemoteExecutionClient,
	sink ports.AuditSink,
	clock ports.Clock,
	logger *slog.Logger,
) SyncPendingOrdersCommandHandler {
	return SyncPendingOrdersCommandHandler{
		uowFactory:   uowFactory,
		remote:       remote,
		audit:        auditor{sink: sink},
		clock:        clockOrSystem(clock),
		logger:       logger.With("component", "order_sync"),
		retryBackoff: defaultStatusWriteBackoff,
	}
}

// WithRetryBackoff returns a copy that waits d before the first status write retry.
func (h SyncPendingOrdersCommandHandler) WithRetryBackoff(d time.Duration) SyncPendingOrdersCommandHandler {
	h.retryBackoff = d
	return h
}

// Handle runs one iteration. The returned error is an iteration-level
// failure (the candidate query); per-order failures are only reported.
func (h *SyncPendingOrdersCommandHandler) Handle(ctx context.Context, cmd SyncPendingOrdersCommand) (SyncReport, error) {
	if err := cmd.Validate(); err != nil {
		return SyncReport{}, err
	}

	started := h.clock.Now()
	iterationID := kernel.NewUUID()
	h.audit.record(ctx, systemUser, ActionSyncStart, started.UTC().Format(time.RFC3339), iterationID, nil)

	var report SyncReport
	defer func() {
		h.audit.record(ctx, systemUser, ActionSyncEnd,
			fmt.Sprintf("processed=%d registered=%d failed=%d", report.Processed, report.Registered, report.Failed),
			iterationID, nil)
	}()

	repo := orders(h.uowFactory)
	candidates, err := repo.GetRegistrationCandidates(ctx, cmd.BatchSize())
	if err != nil {
		metrics.IncSyncIteration("failed")
		return report, fmt.Errorf("load registration candidates: %w", err)
	}
	report.Candidates = len(candidates)

	for _, candidate := range candidates {
		if ctx.Err() != nil {
			report.Cancelled = true
			break
		}

		outcome, stop := h.syncOne(ctx, repo, candidate)
		if stop {
			report.Cancelled = true
			break
		}

		report.Processed++
		if outcome == SyncOutcomeRegistered {
			report.Registered++
		} else {
			report.Failed++
		}
		metrics.IncSyncOrder(outcome)
	}

	if report.Cancelled {
		metrics.IncSyncIteration("cancelled")
	} else {
		metrics.IncSyncIteration("completed")
	}

	h.logger.InfoContext(ctx, "sync iteration finished",
		"candidates", report.Candidates,
		"processed", report.Processed,
		"registered", report.Registered,
		"failed", report.Failed,
		"cancelled", report.Cancelled,
		"elapsed", h.clock.Now().Sub(started),
	)

	return report, nil
}

// syncOne pushes one order. stop is true when the push was cut short by
// cancellation; the status is then left as it was.
func (h *SyncPendingOrdersCommandHandler) syncOne(
	ctx context.Context,
	repo ports.OrderRepository,
	pending *order.Order,
) (outcome string, stop bool) {
	messageID := pending.MessageID()
	params := orderParam(pending.ProductionOrder())

	resp, callErr := h.remote.CreateOrder(ctx, ports.CreateOrderRequest{
		MessageID: messageID,
		Records: []ports.OrderRecord{{
			ProductionOrder: pending.ProductionOrder(),
			Slitter:         pending.Slitter(),
			CreatorUser:     pending.CreatorUser(),
		}},
	})
	if callErr != nil && ctx.Err() != nil {
		h.logger.InfoContext(ctx, "sync interrupted", "production_order", pending.ProductionOrder())
		return "", true
	}

	event := order.EventRegistered
	failure := remoteFailure(remoteCreateOrder, resp, callErr, false)
	if failure != nil {
		event = order.EventRegistrationFailed
		h.audit.record(ctx, systemUser, ActionSyncSend, params, messageID, failure)
	} else {
		h.audit.record(ctx, systemUser, ActionSyncSend, params+" "+resp.Curl, messageID, nil)
	}

	next, err := pending.Apply(event)
	if err == nil {
		err = h.writeStatus(ctx, repo, pending.ProductionOrder(), next)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to write sync status",
			"production_order", pending.ProductionOrder(), "event", string(event), "error", err)
		return SyncOutcomeNotWritten, false
	}

	if failure != nil {
		h.logger.WarnContext(ctx, "order registration failed",
			"production_order", pending.ProductionOrder(), "error", failure)
		return SyncOutcomeFailed, false
	}
	return SyncOutcomeRegistered, false
}

// writeStatus retries transient store failures a few times. A missing row
// is not retried.
func (h *SyncPendingOrdersCommandHandler) writeStatus(
	ctx context.Context,
	repo ports.OrderRepository,
	productionOrder int,
	status order.Status,
) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = h.retryBackoff

	return backoff.Retry(func() error {
		err := repo.UpdateStatus(ctx, productionOrder, status)
		if errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, errs.ErrNotConfigured) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, statusWriteRetries), ctx))
}
