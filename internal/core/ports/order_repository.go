package ports

import (
	"context"
	"time"

	"ordersync/internal/core/domain/model/order"
)

// OrderRepository is the record store for production orders. Every call is a
// short, independently committed operation unless the repository was taken
// from a unit of work with an open transaction.
type OrderRepository interface {
	// Add creates the order. A number that already exists locally yields a
	// ConflictError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists slitter, last modificator and modification time.
	// Returns ObjectNotFoundError when no row matched.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or ObjectNotFoundError.
	Get(ctx context.Context, productionOrder int) (*order.Order, error)

	// GetAll returns every order, newest first.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// UpdateStatus writes the lifecycle code. Returns ObjectNotFoundError when
	// no row matched.
	UpdateStatus(ctx context.Context, productionOrder int, status order.Status) error

	// MarkStopped records the local stop of a production run.
	MarkStopped(ctx context.Context, productionOrder int, at time.Time) error

	// Delete soft-deletes the order and returns the affected row count.
	Delete(ctx context.Context, productionOrder int, at time.Time) (int64, error)

	// GetRegistrationCandidates returns up to limit orders awaiting their
	// initial remote registration, oldest first.
	GetRegistrationCandidates(ctx context.Context, limit int) ([]*order.Order, error)
}
