package postgres

import (
	"context"
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/domain/model/reel"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/errs"
)

// NotConfiguredUnitOfWorkFactory stands in for the record store when no
// connection settings were given. Every operation fails with
// errs.ErrNotConfigured so callers answer a configuration error at once.
type NotConfiguredUnitOfWorkFactory struct{}

func (NotConfiguredUnitOfWorkFactory) Create() ports.UnitOfWork {
	return notConfiguredUoW{}
}

type notConfiguredUoW struct{}

func (notConfiguredUoW) Begin(context.Context) error    { return errs.ErrNotConfigured }
func (notConfiguredUoW) Commit(context.Context) error   { return errs.ErrNotConfigured }
func (notConfiguredUoW) Rollback(context.Context) error { return errs.ErrNotConfigured }

func (notConfiguredUoW) OrderRepository() ports.OrderRepository {
	return notConfiguredOrders{}
}

func (notConfiguredUoW) ReelEventRepository() ports.ReelEventRepository {
	return notConfiguredReels{}
}

type notConfiguredOrders struct{}

func (notConfiguredOrders) Add(context.Context, *order.Order) error    { return errs.ErrNotConfigured }
func (notConfiguredOrders) Update(context.Context, *order.Order) error { return errs.ErrNotConfigured }

func (notConfiguredOrders) Get(context.Context, int) (*order.Order, error) {
	return nil, errs.ErrNotConfigured
}

func (notConfiguredOrders) GetAll(context.Context) ([]*order.Order, error) {
	return nil, errs.ErrNotConfigured
}

func (notConfiguredOrders) UpdateStatus(context.Context, int, order.Status) error {
	return errs.ErrNotConfigured
}

func (notConfiguredOrders) MarkStopped(context.Context, int, time.Time) error {
	return errs.ErrNotConfigured
}

func (notConfiguredOrders) Delete(context.Context, int, time.Time) (int64, error) {
	return 0, errs.ErrNotConfigured
}

func (notConfiguredOrders) GetRegistrationCandidates(context.Context, int) ([]*order.Order, error) {
	return nil, errs.ErrNotConfigured
}

type notConfiguredReels struct{}

func (notConfiguredReels) Add(context.Context, *reel.Event) error { return errs.ErrNotConfigured }

func (notConfiguredReels) Get(context.Context, kernel.UUID) (*reel.Event, error) {
	return nil, errs.ErrNotConfigured
}
