package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpupo63/blog-service/errs"
	"github.com/rpupo63/blog-service/models"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	// Marshal before writing so an encoding failure can still become a 500
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		jsonData, _ = json.Marshal(Envelope{
			Success: false,
			Error:   errs.CategoryServer,
			Message: "error encoding response",
		})
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteSuccess writes a successful envelope around data.
func (r Responder) WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	r.WriteJSON(w, status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WriteList writes a successful envelope carrying a count next to the items.
func (r Responder) WriteList(w http.ResponseWriter, message string, items []*models.Blog) {
	count := len(items)
	r.WriteJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    items,
		Count:   &count,
	})
}

// WriteError maps err to an envelope. Validation errors from models become
// 400s; anything that is not an *errs.ApiErr is a 500 whose message is the
// error text.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		err = errs.NewValidationError(validationErr.Field, validationErr.Message)
	}

	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSON(w, http.StatusInternalServerError, Envelope{
			Success: false,
			Error:   errs.CategoryServer,
			Message: err.Error(),
		})
		return
	}

	event := r.logger.Warn()
	if apiErr.StatusCode >= http.StatusInternalServerError {
		event = r.logger.Error()
	}
	if apiErr.Details != "" {
		event = event.Str("details", apiErr.Details)
	}
	if apiErr.Field != "" {
		event = event.Str("field", apiErr.Field)
	}
	event.Int("status", apiErr.StatusCode).Msg(apiErr.GetFullError())

	r.WriteJSON(w, apiErr.StatusCode, Envelope{
		Success: false,
		Error:   apiErr.Category,
		Message: apiErr.Error(),
	})
}
