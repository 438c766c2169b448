package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/muralisunil/event-elegance-landing/internal/application"
	"github.com/muralisunil/event-elegance-landing/internal/calendar"
)

type agendaEvents interface {
	GetEvent(ctx context.Context, id string) (application.Event, error)
}

type agendaSessions interface {
	ListSessions(ctx context.Context, filter application.SessionFilter) (application.SessionListing, error)
}

type agendaRooms interface {
	ListRooms(ctx context.Context, eventID string) ([]application.Room, error)
}

// CalendarHandler exports an event agenda as text/calendar.
type CalendarHandler struct {
	events    agendaEvents
	sessions  agendaSessions
	rooms     agendaRooms
	location  *time.Location
	now       func() time.Time
	responder responder
	logger    *slog.Logger
}

func NewCalendarHandler(events agendaEvents, sessions agendaSessions, rooms agendaRooms, location *time.Location, now func() time.Time, logger *slog.Logger) *CalendarHandler {
	if location == nil {
		location = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	base := defaultLogger(logger)
	return &CalendarHandler{
		events:    events,
		sessions:  sessions,
		rooms:     rooms,
		location:  location,
		now:       now,
		responder: newResponder(base),
		logger:    base,
	}
}

// Export answers GET /events/{id}/calendar.ics.
func (h *CalendarHandler) Export(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.events == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(eventID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	logger := handlerLogger(r.Context(), h.logger, "CalendarHandler", "Export", "event_id", eventID)
	agenda, err := h.loadAgenda(r.Context(), eventID)
	if err != nil {
		logger.ErrorContext(r.Context(), "agenda export failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	body := calendar.Render(agenda, h.location, h.now())
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="agenda.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, body); err != nil {
		logger.ErrorContext(r.Context(), "failed to write calendar", "error", err)
		return
	}
	logger.With("session_count", len(agenda.Sessions)).InfoContext(r.Context(), "agenda exported")
}

func (h *CalendarHandler) loadAgenda(ctx context.Context, eventID string) (calendar.Agenda, error) {
	event, err := h.events.GetEvent(ctx, eventID)
	if err != nil {
		return calendar.Agenda{}, err
	}
	agenda := calendar.Agenda{Event: event, RoomNames: map[string]string{}}

	if h.sessions != nil {
		listing, err := h.sessions.ListSessions(ctx, application.SessionFilter{EventID: eventID})
		if err != nil {
			return calendar.Agenda{}, err
		}
		agenda.Sessions = listing.Sessions
	}
	if h.rooms != nil {
		rooms, err := h.rooms.ListRooms(ctx, eventID)
		if err != nil {
			return calendar.Agenda{}, err
		}
		for _, room := range rooms {
			agenda.RoomNames[room.ID] = room.Name
		}
	}
	return agenda, nil
}
