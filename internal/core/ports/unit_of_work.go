package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction boundary over the record store. Repositories
// taken before Begin run each call in its own implicit transaction.
type UnitOfWork interface {
	// Begin starts a transaction. Calling it twice is a no-op.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls the current transaction back. Returns an error when no
	// transaction is active, so it is safe to defer after Commit.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ReelEventRepository() ReelEventRepository
}
