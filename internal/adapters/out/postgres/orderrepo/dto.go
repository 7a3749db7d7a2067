// Package orderrepo persists production orders with gorm.
package orderrepo

import (
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the production_orders row. Status keeps the numeric lifecycle
// code shared with existing data.
type OrderDTO struct {
	ProductionOrder     int    `gorm:"primaryKey;autoIncrement:false"`
	Slitter             string `gorm:"size:64"`
	CreatorUser         int
	LastModificatorUser int
	CreatedAt           time.Time
	ModifiedAt          time.Time
	Status              int        `gorm:"index"`
	CorrelationID       *uuid.UUID `gorm:"type:uuid"`
	StoppedAt           *time.Time
	RemovedAt           *time.Time
}

func (OrderDTO) TableName() string {
	return "production_orders"
}

func fromDomain(o *order.Order) OrderDTO {
	var correlationID *uuid.UUID
	if id := o.CorrelationID(); !id.IsZero() {
		raw := id.Value()
		correlationID = &raw
	}

	return OrderDTO{
		ProductionOrder:     o.ProductionOrder(),
		Slitter:             o.Slitter(),
		CreatorUser:         o.CreatorUser(),
		LastModificatorUser: o.LastModificatorUser(),
		CreatedAt:           o.CreatedAt(),
		ModifiedAt:          o.ModifiedAt(),
		Status:              int(o.Status()),
		CorrelationID:       correlationID,
	}
}

func toDomain(dto OrderDTO) *order.Order {
	var correlationID kernel.UUID
	if dto.CorrelationID != nil {
		correlationID = kernel.UUIDFromValue(*dto.CorrelationID)
	}

	return order.RestoreOrder(
		dto.ProductionOrder,
		dto.Slitter,
		dto.CreatorUser,
		dto.LastModificatorUser,
		dto.CreatedAt,
		dto.ModifiedAt,
		order.Status(dto.Status),
		correlationID,
	)
}
