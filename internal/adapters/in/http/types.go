package http

import (
	"time"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/application/usecases/queries"
	"ordersync/internal/core/domain/model/order"
)

// Order mirrors the Order schema of openapi.yaml.
type Order struct {
	ProductionOrder     int       `json:"productionOrder"`
	Slitter             string    `json:"slitter"`
	CreatorUser         int       `json:"creatorUser"`
	LastModificatorUser int       `json:"lastModificatorUser"`
	CreatedAt           time.Time `json:"createdAt"`
	ModifiedAt          time.Time `json:"modifiedAt"`
	Status              int       `json:"status"`
	State               string    `json:"state"`
	CorrelationID       string    `json:"correlationId,omitempty"`
}

func orderFromView(v queries.OrderView) Order {
	return Order{
		ProductionOrder:     v.ProductionOrder,
		Slitter:             v.Slitter,
		CreatorUser:         v.CreatorUser,
		LastModificatorUser: v.LastModificatorUser,
		CreatedAt:           v.CreatedAt,
		ModifiedAt:          v.ModifiedAt,
		Status:              v.Status,
		State:               v.State,
		CorrelationID:       v.CorrelationID,
	}
}

func orderFromDomain(o *order.Order) Order {
	resp := Order{
		ProductionOrder:     o.ProductionOrder(),
		Slitter:             o.Slitter(),
		CreatorUser:         o.CreatorUser(),
		LastModificatorUser: o.LastModificatorUser(),
		CreatedAt:           o.CreatedAt(),
		ModifiedAt:          o.ModifiedAt(),
		Status:              int(o.Status()),
		State:               string(o.State()),
	}
	if id := o.CorrelationID(); !id.IsZero() {
		resp.CorrelationID = id.String()
	}
	return resp
}

type NewOrder struct {
	UserID int `json:"userId"`
	Order  int `json:"order"`
}

type OrderUpdate struct {
	Slitter             string `json:"slitter"`
	LastModificatorUser int    `json:"lastModificatorUser"`
}

type Exists struct {
	Exists bool `json:"exists"`
}

type StopResult struct {
	ProductionOrder int      `json:"productionOrder"`
	Status          int      `json:"status"`
	State           string   `json:"state"`
	LocalStopError  string   `json:"localStopError,omitempty"`
	Messages        []string `json:"messages"`
}

func stopResultFrom(r commands.StopResult) StopResult {
	messages := r.Messages
	if messages == nil {
		messages = []string{}
	}
	return StopResult{
		ProductionOrder: r.ProductionOrder,
		Status:          int(r.Status),
		State:           string(r.Status.State()),
		LocalStopError:  r.LocalStopError,
		Messages:        messages,
	}
}

// NewReelEvent keeps the field names the slitter terminals already send.
type NewReelEvent struct {
	ProductionOrder int       `json:"productionOrder"`
	UserID          int       `json:"userID"`
	UpperShaftReels int       `json:"cantReelsEjeSup"`
	LowerShaftReels int       `json:"cantReelsEjeInf"`
	ReelLength      int       `json:"reelLength"`
	EndOfLot        bool      `json:"endLot"`
	Reels           []NewReel `json:"reels"`
}

// NewReel is one reel of a NewReelEvent. A client supplied messageId is
// ignored: the id is generated server side.
type NewReel struct {
	MessageID   string `json:"messageId,omitempty"`
	Shaft       int    `json:"eje"`
	Position    int    `json:"pos"`
	ProductCode string `json:"productCode"`
	ManualExit  bool   `json:"manualExit"`
	EdgeTrim    int    `json:"edgeTrim"`
}

type ReelEventCreated struct {
	MessageID       string `json:"messageId"`
	ProductionOrder int    `json:"productionOrder"`
}

type SlitterMachine struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// UserParams carries the optional userId query parameter of the lifecycle
// operations.
type UserParams struct {
	UserID *int `form:"userId,omitempty" json:"userId,omitempty"`
}

func (p UserParams) user() int {
	if p.UserID == nil {
		return 0
	}
	return *p.UserID
}
