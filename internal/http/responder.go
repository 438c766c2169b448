package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/muralisunil/event-elegance-landing/internal/application"
	"github.com/muralisunil/event-elegance-landing/internal/scheduler"
)

var (
	errBadRequestBody   = errors.New("invalid request body")
	errInvalidEventID   = errors.New("invalid event id")
	errInvalidRoomID    = errors.New("invalid room id")
	errInvalidSessionID = errors.New("invalid session id")
	errMissingEventID   = errors.New("event_id is required")
	errInvalidDuration  = errors.New("hours and minutes must be whole numbers")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := statusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	var conflict *application.RoomConflictError
	if errors.As(err, &conflict) {
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: application.ErrorKind(err),
			Message:   scheduler.RoomConflictMessage,
			Conflicts: toWarningDTOs(conflict.Warnings),
		})
		return
	}

	switch {
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{ErrorCode: application.ErrorKind(err), Message: statusMessage(http.StatusNotFound)})
	case errors.Is(err, application.ErrAlreadyExists):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{ErrorCode: application.ErrorKind(err), Message: "The resource already exists."})
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				ErrorCode: application.ErrorKind(err),
				Message:   validationMessage(vErr),
				Errors:    copyFieldErrors(vErr),
			})
			return
		}

		r.loggerFor(ctx).ErrorContext(ctx, "unexpected service error", "error", err)
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: statusMessage(http.StatusInternalServerError)})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "The request is malformed."
	case http.StatusNotFound:
		return "The requested resource was not found."
	case http.StatusConflict:
		return "The request conflicts with the current state of the resource."
	case http.StatusUnprocessableEntity:
		return "The submitted data is invalid."
	default:
		return "An internal server error occurred."
	}
}

// validationMessage promotes a lone rule message so clients can show it
// inline without walking the field map.
func validationMessage(vErr *application.ValidationError) string {
	if vErr != nil && len(vErr.FieldErrors) == 1 {
		for _, msg := range vErr.FieldErrors {
			return msg
		}
	}
	return statusMessage(http.StatusUnprocessableEntity)
}

func copyFieldErrors(vErr *application.ValidationError) map[string]string {
	if vErr == nil || len(vErr.FieldErrors) == 0 {
		return nil
	}
	out := make(map[string]string, len(vErr.FieldErrors))
	for field, msg := range vErr.FieldErrors {
		out[field] = msg
	}
	return out
}

// parseID validates a path or query identifier.
func parseID(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

type errorResponse struct {
	ErrorCode string               `json:"error_code,omitempty"`
	Message   string               `json:"message"`
	Errors    map[string]string    `json:"errors,omitempty"`
	Conflicts []conflictWarningDTO `json:"conflicts,omitempty"`
}
