// Package errs defines the error types shared by the domain, the use cases and
// the adapters.
//
// Each type pairs a sentinel (ErrObjectNotFound, ErrConflict, ...) with a struct
// carrying details, and Unwrap returns the sentinel so callers can branch with
// errors.Is while adapters read the details with errors.As.
//
// Two groups exist:
//   - value errors (ValueIsInvalidError, ValueIsOutOfRangeError, ValueIsRequiredError,
//     ObjectNotFoundError) raised by domain checks;
//   - stage errors (RemoteError, PersistenceError, ConflictError, ErrNotConfigured)
//     raised by use cases when a remote call or the local store fails.
//
// StageOf maps any error to the Stage reported to HTTP callers.
package errs
