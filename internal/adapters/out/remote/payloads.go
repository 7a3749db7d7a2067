package remote

import (
	"strconv"

	"ordersync/internal/core/ports"
)

type orderRecordPayload struct {
	ProductionOrder string `json:"productionOrder"`
	Slitter         string `json:"slitter,omitempty"`
	CreatorUser     int    `json:"creatorUser,omitempty"`
}

type createOrderPayload struct {
	MessageType string               `json:"messageType"`
	MessageID   string               `json:"messageId"`
	Records     []orderRecordPayload `json:"records"`
}

type orderCommandPayload struct {
	MessageType     string `json:"messageType"`
	MessageID       string `json:"messageId"`
	ProductionOrder string `json:"productionOrder"`
	Slitter         string `json:"slitter,omitempty"`
}

type reelRecordPayload struct {
	SlitterShaft   int    `json:"slitterShaft"`
	ManualExit     int    `json:"manualExit"`
	ProductionCode string `json:"productionCode"`
	EdgeTrim       int    `json:"edgeTrim"`
}

// createSetPayload keeps the remote field names, including "reelsLenght".
type createSetPayload struct {
	MessageType       string              `json:"messageType"`
	MessageID         string              `json:"messageId"`
	ProductionOrder   string              `json:"productionOrder"`
	ReelsOnUpperShaft int                 `json:"reelsOnUpperShaft"`
	ReelsOnLowerShaft int                 `json:"reelsOnLowerShaft"`
	ReelsLength       int                 `json:"reelsLenght"`
	EndOfLot          int                 `json:"endOfLot"`
	Records           []reelRecordPayload `json:"records"`
}

func newCreateOrderPayload(req ports.CreateOrderRequest) createOrderPayload {
	records := make([]orderRecordPayload, 0, len(req.Records))
	for _, r := range req.Records {
		records = append(records, orderRecordPayload{
			ProductionOrder: strconv.Itoa(r.ProductionOrder),
			Slitter:         r.Slitter,
			CreatorUser:     r.CreatorUser,
		})
	}

	return createOrderPayload{
		MessageType: ports.MessageTypeCreateOrder,
		MessageID:   req.MessageID.String(),
		Records:     records,
	}
}

func newOrderCommandPayload(messageType string, cmd ports.OrderCommand) orderCommandPayload {
	return orderCommandPayload{
		MessageType:     messageType,
		MessageID:       cmd.MessageID.String(),
		ProductionOrder: strconv.Itoa(cmd.ProductionOrder),
		Slitter:         cmd.Slitter,
	}
}

func newCreateSetPayload(req ports.CreateSetRequest) createSetPayload {
	records := make([]reelRecordPayload, 0, len(req.Records))
	for _, r := range req.Records {
		records = append(records, reelRecordPayload{
			SlitterShaft:   r.SlitterShaft,
			ManualExit:     boolToInt(r.ManualExit),
			ProductionCode: r.ProductionCode,
			EdgeTrim:       r.EdgeTrim,
		})
	}

	return createSetPayload{
		MessageType:       ports.MessageTypeCreateSet,
		MessageID:         req.MessageID.String(),
		ProductionOrder:   strconv.Itoa(req.ProductionOrder),
		ReelsOnUpperShaft: req.UpperShaftReels,
		ReelsOnLowerShaft: req.LowerShaftReels,
		ReelsLength:       req.ReelLength,
		EndOfLot:          boolToInt(req.EndOfLot),
		Records:           records,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
