package http

import (
	"errors"
	"net/http"
	"strings"

	"ordersync/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request. Stage tells the caller
// which step failed so it can decide whether a retry makes sense.
type ErrorResponse struct {
	Stage         errs.Stage `json:"stage"`
	Code          int        `json:"code"`
	Message       string     `json:"message"`
	Messages      []string   `json:"messages,omitempty"`
	DBErrorNumber string     `json:"dbErrorNumber,omitempty"`
	Rollback      bool       `json:"rollback,omitempty"`
}

// NewErrorResponse maps err to its HTTP status and body.
//
//	validation                      400
//	not found (local or remote 404) 404
//	conflict                        409
//	remote transport or rejection   502
//	persistence, configuration      500
func NewErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{
		Stage:   errs.StageOf(err),
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}

	var (
		remoteErr      *errs.RemoteError
		persistenceErr *errs.PersistenceError
	)

	switch {
	case errors.Is(err, errs.ErrNotConfigured):
		resp.Message = errs.ErrNotConfigured.Error()
	case errors.As(err, &remoteErr):
		resp.Code = http.StatusBadGateway
		if remoteErr.NotFound {
			resp.Code = http.StatusNotFound
		}
		resp.Message = remoteErr.Detail()
		resp.Messages = remoteErr.Messages
	case errs.IsValidation(err):
		resp.Code = http.StatusBadRequest
		if resp.Messages = joinedMessages(err); len(resp.Messages) > 0 {
			resp.Message = strings.Join(resp.Messages, "; ")
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		resp.Code = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		resp.Code = http.StatusConflict
	case errors.As(err, &persistenceErr):
		resp.DBErrorNumber = persistenceErr.DBErrorNumber
		resp.Rollback = persistenceErr.RolledBack
	}

	return resp
}

// joinedMessages lists the individual checks of an errors.Join result.
func joinedMessages(err error) []string {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return nil
	}

	var messages []string
	for _, e := range joined.Unwrap() {
		messages = append(messages, strings.TrimSpace(e.Error()))
	}
	return messages
}

func writeError(c echo.Context, err error) error {
	resp := NewErrorResponse(err)
	return c.JSON(resp.Code, resp)
}

// HTTPErrorHandler renders errors that escape the handlers, including echo's
// own routing errors, in the ErrorResponse shape.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		_ = writeError(c, err)
		return
	}

	resp := ErrorResponse{
		Stage:   errs.StageLocal,
		Code:    httpErr.Code,
		Message: http.StatusText(httpErr.Code),
	}
	if msg, ok := httpErr.Message.(string); ok {
		resp.Message = msg
	}
	if httpErr.Code == http.StatusBadRequest {
		resp.Stage = errs.StageValidation
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(resp.Code)
		return
	}
	_ = c.JSON(resp.Code, resp)
}
