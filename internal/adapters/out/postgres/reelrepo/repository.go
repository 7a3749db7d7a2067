package reelrepo

import (
	"context"
	"errors"

	"ordersync/internal/adapters/out/postgres/dberr"
	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/reel"
	"ordersync/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReelEventRepository implements ports.ReelEventRepository using GORM.
// Atomicity of header and details comes from the caller's transaction.
type GormReelEventRepository struct {
	db *gorm.DB
}

func NewGormReelEventRepository(db *gorm.DB) *GormReelEventRepository {
	return &GormReelEventRepository{db: db}
}

// Add inserts the header, then the details in request order.
func (r *GormReelEventRepository) Add(ctx context.Context, event *reel.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	header, details := fromDomain(event)
	db := r.db.WithContext(ctx)

	if err := db.Omit(clause.Associations).Create(&header).Error; err != nil {
		return dberr.Wrap("insert reel event", err)
	}

	for i := range details {
		if err := db.Create(&details[i]).Error; err != nil {
			return dberr.Wrap("insert reel event detail", err)
		}
	}

	return nil
}

func (r *GormReelEventRepository) Get(ctx context.Context, messageID kernel.UUID) (*reel.Event, error) {
	var dto EventDTO
	err := r.db.WithContext(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		First(&dto, "message_id = ?", messageID.Value()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("messageId", messageID.String())
		}
		return nil, dberr.Wrap("get reel event", err)
	}

	return toDomain(dto)
}
