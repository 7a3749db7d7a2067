// Package reelrepo persists reel events and their details with gorm.
package reelrepo

import (
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/reel"

	"github.com/google/uuid"
)

// EventDTO is the reel_events header row.
type EventDTO struct {
	MessageID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductionOrder int       `gorm:"index"`
	UserID          int
	UpperShaftReels int
	LowerShaftReels int
	ReelLength      int
	EndOfLot        bool
	CreatedAt       time.Time
	Details         []DetailDTO `gorm:"foreignKey:MessageID;references:MessageID"`
}

func (EventDTO) TableName() string {
	return "reel_events"
}

// DetailDTO is one reel_event_details row. Seq keeps the request order.
type DetailDTO struct {
	ID          uint      `gorm:"primaryKey"`
	MessageID   uuid.UUID `gorm:"type:uuid;index"`
	Seq         int
	Shaft       int
	Position    int
	ProductCode string `gorm:"size:64"`
	ManualExit  bool
	EdgeTrim    int
}

func (DetailDTO) TableName() string {
	return "reel_event_details"
}

func fromDomain(e *reel.Event) (EventDTO, []DetailDTO) {
	id := e.MessageID().Value()

	header := EventDTO{
		MessageID:       id,
		ProductionOrder: e.ProductionOrder(),
		UserID:          e.UserID(),
		UpperShaftReels: e.UpperShaftReels(),
		LowerShaftReels: e.LowerShaftReels(),
		ReelLength:      e.ReelLength(),
		EndOfLot:        e.EndOfLot(),
		CreatedAt:       e.CreatedAt(),
	}

	details := make([]DetailDTO, 0, len(e.Details()))
	for i, d := range e.Details() {
		details = append(details, DetailDTO{
			MessageID:   id,
			Seq:         i + 1,
			Shaft:       d.Shaft(),
			Position:    d.Position(),
			ProductCode: d.ProductCode(),
			ManualExit:  d.ManualExit(),
			EdgeTrim:    d.EdgeTrim(),
		})
	}

	return header, details
}

func toDomain(dto EventDTO) (*reel.Event, error) {
	details := make([]reel.Detail, 0, len(dto.Details))
	for _, d := range dto.Details {
		detail, err := reel.NewDetail(d.Shaft, d.Position, d.ProductCode, d.ManualExit, d.EdgeTrim)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	return reel.NewEvent(
		kernel.UUIDFromValue(dto.MessageID),
		reel.Shape{
			ProductionOrder: dto.ProductionOrder,
			UserID:          dto.UserID,
			UpperShaftReels: dto.UpperShaftReels,
			LowerShaftReels: dto.LowerShaftReels,
			ReelLength:      dto.ReelLength,
			EndOfLot:        dto.EndOfLot,
		},
		details,
		dto.CreatedAt,
	)
}
