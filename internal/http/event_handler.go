package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/muralisunil/event-elegance-landing/internal/application"
	"github.com/muralisunil/event-elegance-landing/internal/timeofday"
)

type eventService interface {
	PreviewEndTime(start string, hours, minutes int) (timeofday.ResolvedEndTime, error)
	ValidateTiming(ctx context.Context, input application.TimingInput) (application.Timing, error)
	CreateEvent(ctx context.Context, input application.EventInput) (application.Event, error)
	UpdateEvent(ctx context.Context, id string, input application.EventInput) (application.Event, error)
	GetEvent(ctx context.Context, id string) (application.Event, error)
	ListEvents(ctx context.Context) ([]application.Event, error)
}

// EventHandler serves event CRUD and the timing helpers used by event forms.
type EventHandler struct {
	service   eventService
	responder responder
	logger    *slog.Logger
}

func NewEventHandler(service eventService, logger *slog.Logger) *EventHandler {
	base := defaultLogger(logger)
	return &EventHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *EventHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "EventHandler", operation, attrs...)
}

// PreviewEndTime answers GET /timing/end-time?start=HH:MM&hours=&minutes=.
func (h *EventHandler) PreviewEndTime(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	hours, errH := parseOptionalInt(query.Get("hours"))
	minutes, errM := parseOptionalInt(query.Get("minutes"))
	if errH != nil || errM != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDuration)
		return
	}

	resolved, err := h.service.PreviewEndTime(query.Get("start"), hours, minutes)
	if err != nil {
		h.log(r.Context(), "PreviewEndTime", "error_kind", application.ErrorKind(err)).DebugContext(r.Context(), "end time preview rejected", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, endTimeResponse{EndTime: toEndTimeDTO(resolved)})
}

// Validate answers POST /events/validate with the resolved timing or the
// first rule it breaks.
func (h *EventHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req timingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Validate", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode timing request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	timing, err := h.service.ValidateTiming(r.Context(), req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, timingResponse{Timing: toTimingDTO(timing)})
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode event request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")
	event, err := h.service.CreateEvent(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "event creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("event_id", event.ID).InfoContext(r.Context(), "event created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, eventResponse{Event: toEventDTO(event)})
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(eventID) == "" {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "missing event id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "event_id", eventID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode event update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "event_id", eventID)
	event, err := h.service.UpdateEvent(r.Context(), eventID, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "event update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "event updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, eventResponse{Event: toEventDTO(event)})
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(eventID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	event, err := h.service.GetEvent(r.Context(), eventID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, eventResponse{Event: toEventDTO(event)})
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	events, err := h.service.ListEvents(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "event list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(events)).InfoContext(r.Context(), "events listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listEventsResponse{Events: toEventDTOs(events)})
}

func parseOptionalInt(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

type timingRequest struct {
	EventDate       string `json:"event_date"`
	EventTime       string `json:"event_time"`
	IsMultiDay      bool   `json:"is_multi_day"`
	EventEndDate    string `json:"event_end_date"`
	DurationHours   int    `json:"duration_hours"`
	DurationMinutes int    `json:"duration_minutes"`
	EventEndTime    string `json:"event_end_time"`
}

func (r timingRequest) toInput() application.TimingInput {
	return application.TimingInput{
		Date:            strings.TrimSpace(r.EventDate),
		StartTime:       strings.TrimSpace(r.EventTime),
		IsMultiDay:      r.IsMultiDay,
		EndDate:         strings.TrimSpace(r.EventEndDate),
		DurationHours:   r.DurationHours,
		DurationMinutes: r.DurationMinutes,
		EndTime:         strings.TrimSpace(r.EventEndTime),
	}
}

type eventRequest struct {
	timingRequest
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Location    string  `json:"location"`
}

func (r eventRequest) toInput() application.EventInput {
	return application.EventInput{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Location:    strings.TrimSpace(r.Location),
		Timing:      r.timingRequest.toInput(),
	}
}

type endTimeDTO struct {
	RawTime     string `json:"raw_time"`
	IsNextDay   bool   `json:"is_next_day"`
	DisplayText string `json:"display_text"`
}

func toEndTimeDTO(resolved timeofday.ResolvedEndTime) endTimeDTO {
	return endTimeDTO{RawTime: resolved.RawTime, IsNextDay: resolved.IsNextDay, DisplayText: resolved.DisplayText}
}

type endTimeResponse struct {
	EndTime endTimeDTO `json:"end_time"`
}

type timingDTO struct {
	EventDate       string     `json:"event_date"`
	EventTime       string     `json:"event_time"`
	StartDisplay    string     `json:"start_display"`
	DurationMinutes *int       `json:"duration_minutes"`
	DurationLabel   string     `json:"duration_label"`
	EventEndDate    *string    `json:"event_end_date"`
	EventEndTime    *string    `json:"event_end_time"`
	IsMultiDay      bool       `json:"is_multi_day"`
	EndTime         endTimeDTO `json:"end_time"`
}

func toTimingDTO(timing application.Timing) timingDTO {
	dto := timingDTO{
		EventDate:       timing.Date.String(),
		EventTime:       timing.StartTime.String(),
		StartDisplay:    timing.StartTime.Format12Hour(),
		DurationMinutes: timing.Stored.DurationMinutes,
		DurationLabel:   timing.DurationLabel(),
		IsMultiDay:      timing.Stored.IsMultiDay,
		EndTime:         toEndTimeDTO(timing.EndTime),
	}
	if timing.Stored.EventEndDate != nil {
		value := timing.Stored.EventEndDate.String()
		dto.EventEndDate = &value
	}
	if timing.Stored.EventEndTime != nil {
		value := timing.Stored.EventEndTime.String()
		dto.EventEndTime = &value
	}
	return dto
}

type timingResponse struct {
	Timing timingDTO `json:"timing"`
}

type eventDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Location    string    `json:"location"`
	Timing      timingDTO `json:"timing"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

func toEventDTO(event application.Event) eventDTO {
	return eventDTO{
		ID:          event.ID,
		Name:        event.Name,
		Description: event.Description,
		Location:    event.Location,
		Timing:      toTimingDTO(event.Timing),
		CreatedAt:   event.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   event.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toEventDTOs(events []application.Event) []eventDTO {
	out := make([]eventDTO, 0, len(events))
	for _, event := range events {
		out = append(out, toEventDTO(event))
	}
	return out
}

type eventResponse struct {
	Event eventDTO `json:"event"`
}

type listEventsResponse struct {
	Events []eventDTO `json:"events"`
}
