package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Envelope error categories. These strings are part of the wire contract
// the static client reads from the "error" field.
const (
	CategoryValidation  = "Validation failed"
	CategoryInvalidID   = "Invalid ID"
	CategoryNotFound    = "Not found"
	CategoryServer      = "Server error"
	CategoryTooLarge    = "Payload too large"
	CategoryUnavailable = "Service unavailable"
	CategoryMethod      = "Method not allowed"
)

// Common error sentinel values
var (
	ErrInternal  = errors.New("internal server error")
	ErrInvalidID = errors.New("invalid id")
)

// Routing errors
var (
	ErrRouteNotFound    = errors.New("route not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// Request & Input-Validation Errors
var (
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrMaxBodySizeExceeded  = errors.New("max body size exceeded")
)

type ApiErr struct {
	StatusCode int
	Category   string // Envelope "error" value
	err        error
	Message    string // Client-facing message, falls back to err
	Details    string // Additional details about the error, logged only
	Field      string // Field that caused the error (for validation errors)
	Cause      error  // The underlying cause of the error
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.err.Error()
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		var apiErr *ApiErr
		if errors.As(e.Cause, &apiErr) {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// this function allows us to do the following:
// err := &ApiErr{StatusCode: ..., err: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.err
}

func NewNotFoundError(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		Category:   CategoryNotFound,
		err:        ErrNotFound,
		Message:    message,
	}
}

func NewInvalidIDError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Category:   CategoryInvalidID,
		err:        ErrInvalidID,
		Message:    "The provided blog ID is not valid",
		Field:      "id",
	}
}

func NewValidationError(field, message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Category:   CategoryValidation,
		err:        ErrMissingRequiredField,
		Message:    message,
		Field:      field,
	}
}

func NewInternalErrorWithCause(message string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		Category:   CategoryServer,
		err:        ErrInternal,
		Message:    message,
		Cause:      cause,
	}
}

func NewMalformedPayloadError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Category:   CategoryValidation,
		err:        ErrMalformedPayload,
		Message:    "Request body must be valid JSON",
		Cause:      cause,
		Field:      "payload",
	}
}

func NewMaxBodySizeExceededError(maxSize int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusRequestEntityTooLarge,
		Category:   CategoryTooLarge,
		err:        ErrMaxBodySizeExceeded,
		Message:    fmt.Sprintf("Request body size exceeded maximum allowed size of %d bytes", maxSize),
		Field:      "body_size",
	}
}

// NewRouteNotFoundError is returned for paths no route matches
func NewRouteNotFoundError(method, path string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		Category:   CategoryNotFound,
		err:        ErrRouteNotFound,
		Message:    "Route not found",
		Details:    fmt.Sprintf("%s %s", method, path),
	}
}

func NewMethodNotAllowedError(method, path string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusMethodNotAllowed,
		Category:   CategoryMethod,
		err:        ErrMethodNotAllowed,
		Message:    fmt.Sprintf("Method %s is not allowed on this route", method),
		Details:    fmt.Sprintf("%s %s", method, path),
	}
}

func IsInvalidID(err error) bool {
	return errors.Is(err, ErrInvalidID)
}
