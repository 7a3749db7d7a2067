package ports

import (
	"context"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/reel"
)

// ReelEventRepository stores reel events with their details.
type ReelEventRepository interface {
	// Add inserts the event header and every detail row.
	Add(ctx context.Context, event *reel.Event) error

	// Get returns the event with its details or ObjectNotFoundError.
	Get(ctx context.Context, messageID kernel.UUID) (*reel.Event, error)
}
