package api

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type keyType string

const (
	requestIDKey keyType = "requestID"
)

// ctxWithRequestID adds a request ID to the context
func ctxWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// ctxGetRequestID retrieves the request ID from the context, or "" if unset
func ctxGetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey).(string)
	return requestID
}

// requestLogger returns base enriched with the request ID carried by ctx.
func requestLogger(ctx context.Context, base zerolog.Logger) zerolog.Logger {
	requestID := ctxGetRequestID(ctx)
	if requestID == "" {
		return base
	}
	return base.With().Str("requestID", requestID).Logger()
}

// loggerFor is a shorthand used where no handler logger is in scope.
func loggerFor(ctx context.Context) zerolog.Logger {
	return requestLogger(ctx, log.Logger)
}
