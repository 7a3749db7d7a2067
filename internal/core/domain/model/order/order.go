package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/errs"
)

// Bounds of a production order number accepted at creation, both exclusive.
const (
	MinProductionOrder = 50000
	MaxProductionOrder = 1000000
)

var ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of the lifecycle domain. It is identified by
// its production order number and owned by the record store: handlers load
// it per request, apply an outcome and persist the resulting status.
type Order struct {
	// productionOrder is the externally meaningful order number
	productionOrder int

	// slitter identifies the machine/shaft the order runs on
	slitter string

	creatorUser         int
	lastModificatorUser int
	createdAt           time.Time
	modifiedAt          time.Time

	// status is the persisted lifecycle code
	status Status

	// correlationID ties the order to the last remote conversation that
	// touched it; zero when none was recorded
	correlationID kernel.UUID

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates an order requested by a user.
//
// Parameters:
//   - productionOrder: order number, must satisfy 50000 < n < 1000000
//   - creatorUser: id of the requesting user, must be positive
//   - correlationID: id of the request that creates the order
//   - now: creation time
//
// Returns:
//   - *Order in StatusCreated when all checks pass
//   - error joining every failed check otherwise
func NewOrder(productionOrder, creatorUser int, correlationID kernel.UUID, now time.Time) (*Order, error) {
	o := &Order{
		status:        StatusCreated,
		createdAt:     now,
		modifiedAt:    now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setProductionOrder(productionOrder),
		o.setCreatorUser(creatorUser),
		o.setCorrelationID(correlationID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order read from the record store. Stored data is
// trusted: the creation range is not re-checked so legacy numbers load.
func RestoreOrder(
	productionOrder int,
	slitter string,
	creatorUser, lastModificatorUser int,
	createdAt, modifiedAt time.Time,
	status Status,
	correlationID kernel.UUID,
) *Order {
	return &Order{
		productionOrder:     productionOrder,
		slitter:             slitter,
		creatorUser:         creatorUser,
		lastModificatorUser: lastModificatorUser,
		createdAt:           createdAt,
		modifiedAt:          modifiedAt,
		status:              status,
		correlationID:       correlationID,
		isConstructed:       true,
	}
}

// ValidateProductionOrder checks the creation range of an order number.
func ValidateProductionOrder(n int) error {
	if n <= MinProductionOrder || n >= MaxProductionOrder {
		return errs.NewValueIsOutOfRangeError("productionOrder", n, MinProductionOrder, MaxProductionOrder)
	}
	return nil
}

// Validate ensures the Order was built through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ProductionOrder() int {
	return o.productionOrder
}

func (o *Order) Slitter() string {
	return o.slitter
}

func (o *Order) CreatorUser() int {
	return o.creatorUser
}

func (o *Order) LastModificatorUser() int {
	return o.lastModificatorUser
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) ModifiedAt() time.Time {
	return o.modifiedAt
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) State() State {
	return o.status.State()
}

// CorrelationID returns the stored correlation id, zero when none was recorded.
func (o *Order) CorrelationID() kernel.UUID {
	return o.correlationID
}

// MessageID returns the id to send with the next remote command: the stored
// correlation id when present, a fresh one otherwise.
func (o *Order) MessageID() kernel.UUID {
	return o.correlationID.OrNew()
}

// ValidateStart returns a validation error unless the status lies in the
// start window. The remote system must not be called when it fails.
func (o *Order) ValidateStart() error {
	if err := o.status.ValidateStart(); err != nil {
		return fmt.Errorf("order %d: %w", o.productionOrder, err)
	}
	return nil
}

// ValidateDelete rejects orders in the terminal range with a conflict.
func (o *Order) ValidateDelete() error {
	if o.status.IsTerminal() {
		return errs.NewConflictError("productionOrder", o.productionOrder, "is already deleted")
	}
	return nil
}

// RequiresRemoteDelete reports whether the remote system may still hold the
// order. Only registered orders (900..999) were ever pushed.
func (o *Order) RequiresRemoteDelete() bool {
	return o.status.InStartWindow()
}

// Apply moves the order through the transition table and returns the code
// that must be persisted.
func (o *Order) Apply(event Event) (Status, error) {
	next, err := o.status.Apply(event)
	if err != nil {
		return 0, err
	}
	o.status = next
	return next, nil
}

// Reassign changes the slitter and records who modified the order.
func (o *Order) Reassign(slitter string, user int, now time.Time) error {
	if err := o.setLastModificatorUser(user); err != nil {
		return err
	}
	o.slitter = strings.TrimSpace(slitter)
	o.modifiedAt = now
	return nil
}

func (o *Order) setProductionOrder(n int) error {
	if err := ValidateProductionOrder(n); err != nil {
		return err
	}
	o.productionOrder = n
	return nil
}

func (o *Order) setCreatorUser(user int) error {
	if user <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("creatorUser", fmt.Errorf("%d is not greater than 0", user))
	}
	o.creatorUser = user
	o.lastModificatorUser = user
	return nil
}

func (o *Order) setLastModificatorUser(user int) error {
	if user <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("lastModificatorUser", fmt.Errorf("%d is not greater than 0", user))
	}
	o.lastModificatorUser = user
	return nil
}

func (o *Order) setCorrelationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.correlationID = id
	return nil
}
