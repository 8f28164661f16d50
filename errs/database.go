package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// NewDatabaseError wraps an unexpected persistence failure. The client sees the
// underlying message; the operation and entity only go to the logs.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	message := ErrDatabaseQuery.Error()
	if cause != nil {
		message = cause.Error()
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		Category:   CategoryServer,
		err:        ErrDatabaseQuery,
		Message:    message,
		Details:    fmt.Sprintf("Failed to %s %s", operation, entity),
		Cause:      cause,
	}
}

// NewDatabaseUnavailableError is returned by health checks when the store
// does not answer a ping.
func NewDatabaseUnavailableError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		Category:   CategoryUnavailable,
		err:        ErrDatabaseConnection,
		Message:    "Unable to reach database",
		Cause:      cause,
	}
}

// NewConnectionError is used at startup; it never reaches an HTTP client.
func NewConnectionError(store string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrDatabaseConnection, store, cause)
}

func IsDatabaseConnectionError(err error) bool {
	return errors.Is(err, ErrDatabaseConnection)
}
