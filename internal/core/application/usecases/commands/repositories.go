// Package commands contains the operations that change order state.
//
// Every command follows the same pattern: a command value built through its
// constructor (validation happens there), and a handler that loads what it
// needs from the record store, talks to the remote execution system and
// persists the outcome. Lifecycle handlers use repositories outside of a
// transaction: each read and status write commits on its own. Reel event
// ingestion is the only handler that opens a transaction.
//
// Every handler reports to the audit sink; the sink never fails a command.
package commands

import (
	"context"
	"fmt"
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/ports"
)

// Audit action tags.
const (
	ActionCreateOrder          = "CREATE_MANUAL_ORDER"
	ActionCreateOrderFailed    = "CREATE_MANUAL_ORDER_FAILED"
	ActionCreateOrderDuplicate = "CREATE_MANUAL_ORDER_DUPLICATE"

	ActionStartOrder       = "START_ORDER"
	ActionStartOrderFailed = "START_ORDER_FAILED"

	ActionStopOrder               = "STOP_ORDER"
	ActionStopOrderExternal       = "STOP_ORDER_EXTERNAL"
	ActionStopOrderExternalFailed = "STOP_ORDER_EXTERNAL_FAILED"
	ActionStopOrderLocalFailed    = "STOP_ORDER_LOCAL_FAILED"

	ActionDeleteOrder       = "DELETE_ORDER"
	ActionDeleteOrderFailed = "DELETE_ORDER_FAILED"

	ActionSyncStart = "RECURRING_SERVICE_START"
	ActionSyncSend  = "RECURRING_SERVICE_SEND"
	ActionSyncEnd   = "RECURRING_SERVICE_END"

	ActionCreateReelEvent         = "CREATE_REEL_EVENT"
	ActionCreateReelEventDBFailed = "CREATE_REEL_EVENT_DB_FAILED"
	ActionCreateSetExternal       = "CREATE_SET_EXTERNAL"
	ActionCreateSetExternalFailed = "CREATE_SET_EXTERNAL_FAILED"
)

// Remote command names used in errors.
const (
	remoteGetOrder    = "GetOrder"
	remoteCreateOrder = "CreateOrder"
	remoteStartOrder  = "StartOrder"
	remoteStopOrder   = "StopOrder"
	remoteDeleteOrder = "DeleteOrder"
	remoteCreateSet   = "CreateSet"
)

// systemUser is recorded for actions without a requesting user.
const systemUser = 0

// orders returns a repository whose calls commit independently.
func orders(factory ports.UnitOfWorkFactory) ports.OrderRepository {
	return factory.Create().OrderRepository()
}

func orderParam(productionOrder int) string {
	return fmt.Sprintf("Production_Order=%d", productionOrder)
}

// auditor wraps the sink so handlers can report in one line.
type auditor struct {
	sink ports.AuditSink
}

func (a auditor) record(ctx context.Context, userID int, action, params string, correlationID kernel.UUID, err error) {
	if a.sink == nil {
		return
	}

	entry := ports.AuditEntry{
		UserID:        userID,
		Action:        action,
		Params:        params,
		CorrelationID: correlationID,
	}
	if err != nil {
		entry.ErrorText = errorText(err)
	}

	a.sink.Append(ctx, entry)
}

// systemClock is used when a handler is built without a clock.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func clockOrSystem(clock ports.Clock) ports.Clock {
	if clock == nil {
		return systemClock{}
	}
	return clock
}
