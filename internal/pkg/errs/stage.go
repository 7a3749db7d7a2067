package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Stage names the step of an operation that failed. Callers use it to decide
// whether a retry makes sense.
type Stage string

const (
	StageValidation    Stage = "validation"
	StageTransport     Stage = "transport"
	StageRemote        Stage = "remote"
	StageLocal         Stage = "local"
	StageConfiguration Stage = "configuration"
)

var (
	ErrConflict      = errors.New("conflict")
	ErrRemoteFailed  = errors.New("remote call failed")
	ErrPersistence   = errors.New("persistence failed")
	ErrNotConfigured = errors.New("connection is not configured")
)

// ConflictError reports a request that contradicts the current state of a record.
type ConflictError struct {
	ParamName string
	ID        any
	Reason    string
}

func NewConflictError(paramName string, id any, reason string) *ConflictError {
	return &ConflictError{
		ParamName: paramName,
		ID:        id,
		Reason:    reason,
	}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %v %s", ErrConflict, e.ParamName, e.ID, e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// RemoteError reports a failed exchange with the remote execution system.
// Stage is StageTransport when no response arrived and StageRemote when the
// remote answered with a non-2xx status or a logical error.
type RemoteError struct {
	Stage      Stage
	Command    string
	StatusCode int
	Messages   []string
	Body       string
	NotFound   bool
	Cause      error
}

func NewTransportError(command string, cause error) *RemoteError {
	return &RemoteError{
		Stage:   StageTransport,
		Command: command,
		Cause:   cause,
	}
}

func NewRemoteRejectedError(command string, statusCode int, messages []string, body string) *RemoteError {
	return &RemoteError{
		Stage:      StageRemote,
		Command:    command,
		StatusCode: statusCode,
		Messages:   messages,
		Body:       body,
	}
}

func NewRemoteNotFoundError(command string, messages []string, body string) *RemoteError {
	e := NewRemoteRejectedError(command, 404, messages, body)
	e.NotFound = true
	return e
}

// Detail is the text shown to callers: joined messages, else the raw body.
func (e *RemoteError) Detail() string {
	if len(e.Messages) > 0 {
		return strings.Join(e.Messages, " | ")
	}
	if e.Body != "" {
		return e.Body
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return ErrRemoteFailed.Error()
}

func (e *RemoteError) Error() string {
	if e.Stage == StageTransport {
		return fmt.Sprintf("%s: %s: %v", ErrRemoteFailed, e.Command, e.Cause)
	}
	return fmt.Sprintf("%s: %s returned %d: %s", ErrRemoteFailed, e.Command, e.StatusCode, e.Detail())
}

func (e *RemoteError) Unwrap() error {
	return ErrRemoteFailed
}

// PersistenceError reports a failure of the local store. DBErrorNumber carries
// the engine error code when the driver exposes one.
type PersistenceError struct {
	Operation     string
	DBErrorNumber string
	RolledBack    bool
	Cause         error
}

func NewPersistenceError(operation string, cause error) *PersistenceError {
	return &PersistenceError{
		Operation: operation,
		Cause:     cause,
	}
}

func (e *PersistenceError) Error() string {
	if e.DBErrorNumber != "" {
		return fmt.Sprintf("%s: %s [%s]: %v", ErrPersistence, e.Operation, e.DBErrorNumber, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %v", ErrPersistence, e.Operation, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return ErrPersistence
}

// StageOf classifies err for error payloads.
func StageOf(err error) Stage {
	var remoteErr *RemoteError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotConfigured):
		return StageConfiguration
	case errors.As(err, &remoteErr):
		return remoteErr.Stage
	case IsValidation(err):
		return StageValidation
	default:
		return StageLocal
	}
}
