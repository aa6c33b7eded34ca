package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/event-registration-api/internal/registration"
	"go.uber.org/zap"
)

func init() {
	// Error bodies are {"message": "..."} for every endpoint.
	huma.NewError = newMessageError
}

// MessageError is the error body returned by every endpoint.
type MessageError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *MessageError) Error() string {
	return e.Message
}

func (e *MessageError) GetStatus() int {
	return e.Status
}

func newMessageError(status int, msg string, errs ...error) huma.StatusError {
	// Schema violations (wrong types, missing path parameters) are bad input.
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		msg = msg + ": " + strings.Join(details, "; ")
	}
	return &MessageError{Status: status, Message: msg}
}

// httpError converts a registration error to the matching HTTP status.
// Anything outside the registration taxonomy is reported as unexpected.
func httpError(err error) error {
	if !errors.As(err, new(*registration.Error)) {
		err = registration.Unexpected(err)
	}
	msg := registration.Message(err)
	switch {
	case errors.Is(err, registration.ErrInvalidEvent), errors.Is(err, registration.ErrInvalidPayload):
		return huma.Error400BadRequest(msg)
	case errors.Is(err, registration.ErrRegistrationsClosed):
		return huma.Error403Forbidden(msg)
	case errors.Is(err, registration.ErrCapacityExceeded):
		return huma.Error409Conflict(msg)
	default:
		return huma.Error500InternalServerError(msg)
	}
}

// recoverer turns a panic into a logged 500 with a message body.
func recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil || rec == http.ErrAbortHandler {
					if rec != nil {
						panic(rec)
					}
					return
				}
				logger.Error("panic serving request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
					zap.Stack("stack"),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(&MessageError{Message: registration.Message(nil)})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
