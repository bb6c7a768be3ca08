// Package httperr defines the error taxonomy shared by every domain service
// and the single Echo error handler that maps it onto HTTP responses.
package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// NotFoundError means a requested entity does not exist.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// NotFound builds a NotFoundError for a single entity.
func NotFound(resource string, id int64) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError means the request payload failed a domain rule, such as an
// unknown bed status or a missing required field.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalid builds a ValidationError.
func Invalid(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// PartialNotFoundError means a bulk operation referenced ids that do not
// exist. The whole operation is rejected; nothing was applied.
type PartialNotFoundError struct {
	Resource   string
	MissingIDs []int64
}

func (e *PartialNotFoundError) Error() string {
	ids := make([]string, len(e.MissingIDs))
	for i, id := range e.MissingIDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, strings.Join(ids, ", "))
}

// PartialNotFound builds a PartialNotFoundError for a bulk operation.
func PartialNotFound(resource string, missing []int64) error {
	return &PartialNotFoundError{Resource: resource, MissingIDs: missing}
}

// StoreError wraps an unexpected database failure. The cause is logged with
// the request's correlation id and never exposed to the client.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

// Store wraps err as a StoreError. Returns nil if err is nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// EchoErrorHandler maps domain errors to HTTP status codes. Validation maps
// to 400, missing entities to 404 (bulk included), store failures to a
// generic 500 whose detail is only logged server side.
func EchoErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		rid, _ := c.Get("request_id").(string)

		status := http.StatusInternalServerError
		msg := "internal server error"

		var (
			notFound   *NotFoundError
			validation *ValidationError
			partial    *PartialNotFoundError
			store      *StoreError
			httpErr    *echo.HTTPError
		)

		switch {
		case errors.As(err, &notFound):
			status = http.StatusNotFound
			msg = notFound.Error()
		case errors.As(err, &partial):
			status = http.StatusNotFound
			msg = partial.Error()
		case errors.As(err, &validation):
			status = http.StatusBadRequest
			msg = validation.Error()
		case errors.As(err, &store):
			logger.Error().
				Err(store.Err).
				Str("request_id", rid).
				Str("op", store.Op).
				Msg("store failure")
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if s, ok := httpErr.Message.(string); ok {
				msg = s
			} else {
				msg = http.StatusText(status)
			}
		default:
			logger.Error().
				Err(err).
				Str("request_id", rid).
				Msg("unhandled error")
		}

		body := errorBody{Success: false, Error: msg}
		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			logger.Error().Err(werr).Str("request_id", rid).Msg("write error response")
		}
	}
}
