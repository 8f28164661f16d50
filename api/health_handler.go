package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/blog-service/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const healthPingTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	logger      zerolog.Logger
	store       pinger
	startupTime time.Time
}

func newHealthHandler(store pinger, startupTime time.Time) healthHandler {
	return healthHandler{
		logger:      log.With().Str("handlerName", "healthHandler").Logger(),
		store:       store,
		startupTime: startupTime,
	}
}

// getHealth reports uptime and whether the store answers a ping
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} Envelope "Service healthy"
// @Failure 503 {object} Envelope "Database unreachable"
// @Router /health [get]
func (h healthHandler) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := NewResponder(requestLogger(r.Context(), h.logger))

		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			responder.WriteError(w, errs.NewDatabaseUnavailableError(err))
			return
		}

		responder.WriteSuccess(w, http.StatusOK, "OK", HealthStatus{
			Database:  "up",
			StartedAt: h.startupTime.UTC().Format(time.RFC3339),
			Uptime:    time.Since(h.startupTime).Truncate(time.Second).String(),
		})
	}
}
