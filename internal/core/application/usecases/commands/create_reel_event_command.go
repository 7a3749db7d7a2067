package commands

import (
	"errors"
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/reel"
	"ordersync/internal/pkg/guard"
)

var ErrCreateReelEventCommandIsNotConstructed = errors.New(
	"CreateReelEventCommand must be created via NewCreateReelEventCommand constructor",
)

// CreateReelEventCommand records a produced set of reels.
type CreateReelEventCommand struct {
	shape   reel.Shape
	details []reel.Detail

	guard guard.ConstructorGuard
}

// NewCreateReelEventCommand checks the event exactly as the aggregate will,
// so invalid input is refused before a transaction is opened.
func NewCreateReelEventCommand(shape reel.Shape, details []reel.Detail) (CreateReelEventCommand, error) {
	if _, err := reel.NewEvent(kernel.NewUUID(), shape, details, time.Time{}); err != nil {
		return CreateReelEventCommand{}, err
	}

	return CreateReelEventCommand{
		shape:   shape,
		details: append([]reel.Detail(nil), details...),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateReelEventCommand) Validate() error {
	return c.guard.Validate(ErrCreateReelEventCommandIsNotConstructed)
}

func (c CreateReelEventCommand) Shape() reel.Shape {
	return c.shape
}

func (c CreateReelEventCommand) Details() []reel.Detail {
	return append([]reel.Detail(nil), c.details...)
}
