package order

import (
	"context"
	"errors"
	"fmt"

	"ordersync/internal/pkg/errs"

	"github.com/looplab/fsm"
)

// Status is the persisted lifecycle code of an order. Codes are graded
// integers shared with the remote execution system and existing data, so
// they only exist at the persistence boundary. Everything that reasons
// about the lifecycle goes through State and the transition table.
//
// Code ranges:
//
//	< 900        created locally, not yet registered remotely (201 = duplicate on remote)
//	900 .. 999   registered; the only window in which Start is legal
//	1300         running
//	> 1000       terminal; Delete is rejected
type Status int

const (
	// StatusCreated is written by the store when an order is created locally.
	StatusCreated Status = 100

	// StatusRegistrationFailed marks an order whose registration push failed.
	// It stays below 900 so the synchronizer picks it up again.
	StatusRegistrationFailed Status = 200

	// StatusDuplicateRemote marks an order number the remote system already knows.
	StatusDuplicateRemote Status = 201

	// StatusRegistered is set by the synchronizer after a successful push.
	StatusRegistered Status = 900

	// StatusStartFailed is set when the remote start command fails.
	StatusStartFailed Status = 901

	// StatusStopFailedLocal is set when the remote stopped the order but the
	// local stop action failed.
	StatusStopFailedLocal Status = 920

	// StatusStopped is set when both the remote and the local stop succeeded.
	StatusStopped Status = 930

	// StatusDeleted is written by the local soft delete.
	StatusDeleted Status = 1100

	// StatusRunning is set when the remote start command succeeded.
	StatusRunning Status = 1300
)

const (
	startWindowMin    Status = 900
	startWindowMax    Status = 999
	terminalThreshold Status = 1000
)

// State is the tagged lifecycle state derived from a Status code.
type State string

const (
	StateUnknown         State = "unknown"
	StatePending         State = "pending"
	StateDuplicateRemote State = "duplicate_remote"
	StateRegistered      State = "registered"
	StateStartFailed     State = "start_failed"
	StateRunning         State = "running"
	StateStopFailedLocal State = "stop_failed_local"
	StateStopped         State = "stopped"
	StateDeleted         State = "deleted"
)

// Event is an outcome that moves an order to a new state.
type Event string

const (
	EventRegistered         Event = "registered"
	EventRegistrationFailed Event = "registration_failed"
	EventDuplicateDetected  Event = "duplicate_detected"
	EventStarted            Event = "started"
	EventStartFailed        Event = "start_failed"
	EventStopped            Event = "stopped"
	EventStopFailedLocal    Event = "stop_failed_local"
	EventDeleted            Event = "deleted"
)

// eventStatuses is the code written for each event. Several codes can map
// to the same state, so the code comes from the event and not from the
// destination state.
var eventStatuses = map[Event]Status{
	EventRegistered:         StatusRegistered,
	EventRegistrationFailed: StatusRegistrationFailed,
	EventDuplicateDetected:  StatusDuplicateRemote,
	EventStarted:            StatusRunning,
	EventStartFailed:        StatusStartFailed,
	EventStopped:            StatusStopped,
	EventStopFailedLocal:    StatusStopFailedLocal,
	EventDeleted:            StatusDeleted,
}

func states(ss ...State) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		out = append(out, string(s))
	}
	return out
}

var (
	startWindowStates = states(StateRegistered, StateStartFailed, StateStopFailedLocal, StateStopped)

	// Stop has no state precondition: the remote system decides.
	stoppableStates = states(
		StateUnknown, StatePending, StateDuplicateRemote, StateRegistered, StateStartFailed,
		StateRunning, StateStopFailedLocal, StateStopped, StateDeleted,
	)

	// Non-terminal states: deletable, and markable as a remote duplicate.
	deletableStates = states(
		StateUnknown, StatePending, StateDuplicateRemote, StateRegistered,
		StateStartFailed, StateStopFailedLocal, StateStopped,
	)
)

// transitions is the order lifecycle transition table.
//
//	pending ──registered──> registered ──started──> running
//	      └─registration_failed─┘ │   └─start_failed─> start_failed
//	any non-terminal ──duplicate_detected─> duplicate_remote
//	any ──stopped / stop_failed_local──> stopped / stop_failed_local
//	any non-terminal ──deleted──> deleted
var transitions = fsm.Events{
	{Name: string(EventRegistered), Src: states(StatePending), Dst: string(StateRegistered)},
	{Name: string(EventRegistrationFailed), Src: states(StatePending), Dst: string(StatePending)},
	{Name: string(EventDuplicateDetected), Src: deletableStates, Dst: string(StateDuplicateRemote)},
	{Name: string(EventStarted), Src: startWindowStates, Dst: string(StateRunning)},
	{Name: string(EventStartFailed), Src: startWindowStates, Dst: string(StateStartFailed)},
	{Name: string(EventStopped), Src: stoppableStates, Dst: string(StateStopped)},
	{Name: string(EventStopFailedLocal), Src: stoppableStates, Dst: string(StateStopFailedLocal)},
	{Name: string(EventDeleted), Src: deletableStates, Dst: string(StateDeleted)},
}

// State maps the persisted code to its lifecycle state.
//
// Any code in 900..999 without a dedicated meaning counts as registered,
// any code above 1000 other than running counts as deleted. Negative codes
// and exactly 1000 have no meaning and map to StateUnknown.
func (s Status) State() State {
	switch {
	case s == StatusDuplicateRemote:
		return StateDuplicateRemote
	case s >= 0 && s < startWindowMin:
		return StatePending
	case s == StatusStartFailed:
		return StateStartFailed
	case s == StatusStopFailedLocal:
		return StateStopFailedLocal
	case s == StatusStopped:
		return StateStopped
	case s.InStartWindow():
		return StateRegistered
	case s == StatusRunning:
		return StateRunning
	case s.IsTerminal():
		return StateDeleted
	default:
		return StateUnknown
	}
}

// String returns the state name together with the code, e.g. "registered(950)".
func (s Status) String() string {
	return fmt.Sprintf("%s(%d)", s.State(), int(s))
}

// InStartWindow reports whether the code lies in 900..999 inclusive.
func (s Status) InStartWindow() bool {
	return s >= startWindowMin && s <= startWindowMax
}

// IsTerminal reports whether the code lies above 1000.
func (s Status) IsTerminal() bool {
	return s > terminalThreshold
}

// IsRegistrationCandidate reports whether the synchronizer should push the
// order to the remote system.
func (s Status) IsRegistrationCandidate() bool {
	return s.State() == StatePending
}

// ValidateStart checks the start window without performing a transition.
//
// Returns:
//   - nil when the code lies in 900..999
//   - ValueIsInvalidError otherwise
func (s Status) ValidateStart() error {
	if !s.InStartWindow() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to start, expected %d..%d", s, startWindowMin, startWindowMax),
		)
	}
	return nil
}

// Apply runs event through the transition table.
//
// Returns:
//   - (code, nil) with the code to persist when the event is legal from s
//   - (0, ValueIsInvalidError) when the table has no such transition
//
// Example:
//
//	next, err := order.Status(950).Apply(order.EventStarted)
//	// next == order.StatusRunning
func (s Status) Apply(event Event) (Status, error) {
	code, ok := eventStatuses[event]
	if !ok {
		return 0, errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%q is not a known event", event))
	}

	machine := fsm.NewFSM(string(s.State()), transitions, fsm.Callbacks{})
	if err := machine.Event(context.Background(), string(event)); err != nil {
		var noTransition fsm.NoTransitionError
		if !errors.As(err, &noTransition) {
			return 0, errs.NewValueIsInvalidErrorWithCause(
				"status",
				fmt.Errorf("%s is not a valid status to apply %s: %w", s, event, err),
			)
		}
	}

	return code, nil
}
