package ports

import (
	"context"
	"strings"

	"ordersync/internal/core/domain/model/kernel"
)

// Remote command message types.
const (
	MessageTypeCreateOrder = "CREATE_ORDER"
	MessageTypeStartOrder  = "START_ORDER"
	MessageTypeStopOrder   = "STOP_ORDER"
	MessageTypeDeleteOrder = "DELETE_ORDER"
	MessageTypeCreateSet   = "CREATE_SET"
)

const ResultOK = "OK"

// RemoteResponse is what came back from the remote execution system. Result
// and Messages are only meaningful when Parsed is true. Curl renders the
// request that produced the response, for the audit trail.
type RemoteResponse struct {
	StatusCode int
	Body       string
	Parsed     bool
	Result     string
	Messages   []string
	Curl       string
}

// IsSuccessStatus reports a 2xx HTTP status.
func (r RemoteResponse) IsSuccessStatus() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsNotFound reports a 404 HTTP status.
func (r RemoteResponse) IsNotFound() bool {
	return r.StatusCode == 404
}

// Accepted reports a logical success: a 2xx status whose body carries no
// result other than OK. Unparseable or result-less 2xx bodies count as success.
func (r RemoteResponse) Accepted() bool {
	if !r.IsSuccessStatus() {
		return false
	}
	return !r.Parsed || r.Result == "" || strings.EqualFold(r.Result, ResultOK)
}

// OrderRecord is one order pushed by CreateOrder.
type OrderRecord struct {
	ProductionOrder int
	Slitter         string
	CreatorUser     int
}

// CreateOrderRequest registers orders on the remote system.
type CreateOrderRequest struct {
	MessageID kernel.UUID
	Records   []OrderRecord
}

// OrderCommand drives a registered order (start, stop, delete).
type OrderCommand struct {
	MessageID       kernel.UUID
	ProductionOrder int
	Slitter         string
}

// ReelRecord is one reel of a CreateSet request.
type ReelRecord struct {
	SlitterShaft   int
	ManualExit     bool
	ProductionCode string
	EdgeTrim       int
}

// CreateSetRequest registers a produced set of reels.
type CreateSetRequest struct {
	MessageID       kernel.UUID
	ProductionOrder int
	UpperShaftReels int
	LowerShaftReels int
	ReelLength      int
	EndOfLot        bool
	Records         []ReelRecord
}

// RemoteExecutionClient talks to the remote execution system. A non-nil error
// means no response was received (transport failure); any HTTP answer,
// including non-2xx, is returned as a RemoteResponse.
type RemoteExecutionClient interface {
	GetOrder(ctx context.Context, productionOrder int) (RemoteResponse, error)
	CreateOrder(ctx context.Context, req CreateOrderRequest) (RemoteResponse, error)
	StartOrder(ctx context.Context, cmd OrderCommand) (RemoteResponse, error)
	StopOrder(ctx context.Context, cmd OrderCommand) (RemoteResponse, error)
	DeleteOrder(ctx context.Context, cmd OrderCommand) (RemoteResponse, error)
	CreateSet(ctx context.Context, req CreateSetRequest) (RemoteResponse, error)

	// Ping checks that the remote endpoint answers at all.
	Ping(ctx context.Context) error
}
