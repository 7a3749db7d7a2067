package commands

import (
	"errors"
	"strings"

	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/errs"
)

const (
	errorMarker = "ERROR =>"
	errorLabel  = "ZANCANER "
)

// relabel rewrites messages that carry the remote error marker so callers
// can tell remote errors apart: "x ERROR => y" becomes "ZANCANER ERROR => y".
func relabel(messages []string) []string {
	if len(messages) == 0 {
		return messages
	}

	out := make([]string, 0, len(messages))
	for _, m := range messages {
		if idx := strings.Index(m, errorMarker); idx >= 0 {
			m = errorLabel + m[idx:]
		}
		out = append(out, m)
	}
	return out
}

// remoteFailure classifies a remote call. It returns nil when the call
// succeeded logically, a transport RemoteError when no response arrived and
// a rejected RemoteError otherwise. With notFound set, a 404 answer becomes a
// not-found RemoteError whose messages are relabelled.
func remoteFailure(command string, resp ports.RemoteResponse, callErr error, notFound bool) error {
	switch {
	case callErr != nil:
		return errs.NewTransportError(command, callErr)
	case notFound && resp.IsNotFound():
		return errs.NewRemoteNotFoundError(command, relabel(resp.Messages), resp.Body)
	case !resp.Accepted():
		return errs.NewRemoteRejectedError(command, resp.StatusCode, resp.Messages, resp.Body)
	default:
		return nil
	}
}

// errorText is the text written to the audit log for err.
func errorText(err error) string {
	var remoteErr *errs.RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.Detail()
	}
	return err.Error()
}

// remoteParams appends informational remote messages to audit params.
func remoteParams(params string, messages []string) string {
	if len(messages) == 0 {
		return params
	}
	return params + " " + strings.Join(messages, " | ")
}
