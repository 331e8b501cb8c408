// Package respond defines the API response envelope and the error taxonomy
// shared by every handler: successes are {success, message, data}, failures
// are {success:false, message, errors?} with a status drawn from the fixed
// set {400, 401, 403, 404, 500, 503}. Internal error detail is logged by the
// top-level handler and never leaked to the caller.
package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Kind classifies an API failure.
type Kind int

const (
	KindValidation Kind = iota // malformed or missing input
	KindAuth                   // missing/invalid/expired credential
	KindForbidden              // authenticated but not the owner
	KindNotFound
	KindConflict // duplicate email; reported as 400 like validation
	KindUpstream // storage or AI service failure
	KindUnhealthy
)

// Error is the typed failure carried from services up to the HTTP layer.
// Message is safe to show the caller; Err is the internal cause and is only
// logged.
type Error struct {
	Kind    Kind
	Message string
	Fields  []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUnhealthy:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string, fields ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

func Unhealthy(message string, err error) *Error {
	return &Error{Kind: KindUnhealthy, Message: message, Err: err}
}

// Envelope is the JSON body of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// OK writes a success envelope.
func OK(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// HTTPErrorHandler returns the single top-level echo error handler. Typed
// errors keep their message and field list; everything else becomes a
// generic 500 so internals never reach the caller.
func HTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := Envelope{Success: false, Message: "internal server error"}

		switch e := err.(type) {
		case *Error:
			status = e.Status()
			body.Message = e.Message
			body.Errors = e.Fields
			if e.Err != nil {
				logger.Error().Err(e.Err).
					Str("path", c.Request().URL.Path).
					Msg(e.Message)
			}
		case *echo.HTTPError:
			status = e.Code
			if msg, ok := e.Message.(string); ok {
				body.Message = msg
			}
		default:
			logger.Error().Err(err).
				Str("path", c.Request().URL.Path).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}
