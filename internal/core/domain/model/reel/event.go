// Package reel models the reel events reported by a slitter: one event per
// produced set, with one detail per reel on the shafts.
package reel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/errs"
)

var ErrEventIsNotConstructed = errors.New("reel event must be created via NewEvent")

// Detail is one reel of a set. It has no lifecycle of its own: it is stored
// and discarded together with its Event.
type Detail struct {
	shaft       int
	position    int
	productCode string
	manualExit  bool
	edgeTrim    int
}

// NewDetail validates a reel detail.
func NewDetail(shaft, position int, productCode string, manualExit bool, edgeTrim int) (Detail, error) {
	productCode = strings.TrimSpace(productCode)

	var checks []error
	if shaft <= 0 {
		checks = append(checks, errs.NewValueIsInvalidErrorWithCause("shaft", fmt.Errorf("%d is not greater than 0", shaft)))
	}
	if position <= 0 {
		checks = append(checks, errs.NewValueIsInvalidErrorWithCause("position", fmt.Errorf("%d is not greater than 0", position)))
	}
	if productCode == "" {
		checks = append(checks, errs.NewValueIsRequiredError("productCode"))
	}
	if edgeTrim < 0 {
		checks = append(checks, errs.NewValueIsInvalidErrorWithCause("edgeTrim", fmt.Errorf("%d is negative", edgeTrim)))
	}
	if err := errors.Join(checks...); err != nil {
		return Detail{}, err
	}

	return Detail{
		shaft:       shaft,
		position:    position,
		productCode: productCode,
		manualExit:  manualExit,
		edgeTrim:    edgeTrim,
	}, nil
}

func (d Detail) Shaft() int          { return d.shaft }
func (d Detail) Position() int       { return d.position }
func (d Detail) ProductCode() string { return d.productCode }
func (d Detail) ManualExit() bool    { return d.manualExit }
func (d Detail) EdgeTrim() int       { return d.edgeTrim }

// Event is a produced set of reels for a production order. The order is
// referenced by number only.
type Event struct {
	messageID       kernel.UUID
	productionOrder int
	userID          int
	upperShaftReels int
	lowerShaftReels int
	reelLength      int
	endOfLot        bool
	details         []Detail
	createdAt       time.Time

	isConstructed bool
}

// Shape carries the header values of a new event.
type Shape struct {
	ProductionOrder int
	UserID          int
	UpperShaftReels int
	LowerShaftReels int
	ReelLength      int
	EndOfLot        bool
}

// NewEvent builds an event with a server generated message id. At least one
// detail is required.
func NewEvent(messageID kernel.UUID, shape Shape, details []Detail, now time.Time) (*Event, error) {
	var checks []error
	if err := messageID.Validate(); err != nil {
		checks = append(checks, err)
	}
	if shape.ProductionOrder <= 0 {
		checks = append(checks, errs.NewValueIsInvalidErrorWithCause("productionOrder", fmt.Errorf("%d is not greater than 0", shape.ProductionOrder)))
	}
	if shape.UserID <= 0 {
		checks = append(checks, errs.NewValueIsInvalidErrorWithCause("userId", fmt.Errorf("%d is not greater than 0", shape.UserID)))
	}
	if shape.UpperShaftReels < 0 || shape.LowerShaftReels < 0 {
		checks = append(checks, errs.NewValueIsInvalidErrorWithCause("reelCount",
			fmt.Errorf("upper %d, lower %d must not be negative", shape.UpperShaftReels, shape.LowerShaftReels)))
	}
	if shape.ReelLength <= 0 {
		checks = append(checks, errs.NewValueIsInvalidErrorWithCause("reelLength", fmt.Errorf("%d is not greater than 0", shape.ReelLength)))
	}
	if len(details) == 0 {
		checks = append(checks, errs.NewValueIsRequiredErrorWithCause("reels", errors.New("at least one reel must be provided")))
	}
	if err := errors.Join(checks...); err != nil {
		return nil, err
	}

	return &Event{
		messageID:       messageID,
		productionOrder: shape.ProductionOrder,
		userID:          shape.UserID,
		upperShaftReels: shape.UpperShaftReels,
		lowerShaftReels: shape.LowerShaftReels,
		reelLength:      shape.ReelLength,
		endOfLot:        shape.EndOfLot,
		details:         append([]Detail(nil), details...),
		createdAt:       now,
		isConstructed:   true,
	}, nil
}

func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

func (e *Event) MessageID() kernel.UUID { return e.messageID }
func (e *Event) ProductionOrder() int   { return e.productionOrder }
func (e *Event) UserID() int            { return e.userID }
func (e *Event) UpperShaftReels() int   { return e.upperShaftReels }
func (e *Event) LowerShaftReels() int   { return e.lowerShaftReels }
func (e *Event) ReelLength() int        { return e.reelLength }
func (e *Event) EndOfLot() bool         { return e.endOfLot }
func (e *Event) CreatedAt() time.Time   { return e.createdAt }

// Details returns the reels in their original order.
func (e *Event) Details() []Detail {
	return append([]Detail(nil), e.details...)
}
