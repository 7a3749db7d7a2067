package ports

import (
	"context"

	"ordersync/internal/core/domain/model/kernel"
)

// AuditEntry is one line of the operational log (bitacora).
type AuditEntry struct {
	UserID        int
	Action        string
	Params        string
	CorrelationID kernel.UUID
	ErrorText     string
}

// AuditSink appends entries to the operational log. It never fails the
// caller: implementations log their own errors and return.
type AuditSink interface {
	Append(ctx context.Context, entry AuditEntry)
}
