package commands

import (
	"errors"
	"fmt"

	"ordersync/internal/pkg/errs"
	"ordersync/internal/pkg/guard"
)

var ErrSyncPendingOrdersCommandIsNotConstructed = errors.New(
	"SyncPendingOrdersCommand must be created via NewSyncPendingOrdersCommand constructor",
)

// DefaultSyncBatchSize bounds the candidates pushed by one iteration.
const DefaultSyncBatchSize = 500

// SyncPendingOrdersCommand runs one synchronizer iteration.
type SyncPendingOrdersCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewSyncPendingOrdersCommand(batchSize int) (SyncPendingOrdersCommand, error) {
	if batchSize <= 0 {
		return SyncPendingOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"batchSize", fmt.Errorf("%d is not greater than 0", batchSize))
	}

	return SyncPendingOrdersCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SyncPendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSyncPendingOrdersCommandIsNotConstructed)
}

func (c SyncPendingOrdersCommand) BatchSize() int {
	return c.batchSize
}
