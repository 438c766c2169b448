package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/muralisunil/event-elegance-landing/internal/application"
)

type sessionService interface {
	CreateSession(ctx context.Context, input application.SessionInput) (application.Session, []application.ConflictWarning, error)
	UpdateSession(ctx context.Context, id string, input application.SessionInput) (application.Session, []application.ConflictWarning, error)
	DeleteSession(ctx context.Context, id string) error
	ListSessions(ctx context.Context, filter application.SessionFilter) (application.SessionListing, error)
	TimeSlotGrid(ctx context.Context, eventID string) ([]application.GridRow, error)
}

// SessionHandler serves an event's agenda.
type SessionHandler struct {
	service   sessionService
	responder responder
	logger    *slog.Logger
}

func NewSessionHandler(service sessionService, logger *slog.Logger) *SessionHandler {
	base := defaultLogger(logger)
	return &SessionHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *SessionHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "SessionHandler", operation, attrs...)
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode session request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	eventID, ok := parseID(req.EventID)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}
	req.EventID = eventID
	if req.RoomID != nil && strings.TrimSpace(*req.RoomID) != "" {
		if _, ok := parseID(*req.RoomID); !ok {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRoomID)
			return
		}
	}

	logger := h.log(r.Context(), "Create", "event_id", eventID)
	session, warnings, err := h.service.CreateSession(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "session creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("session_id", session.ID, "conflict_count", len(warnings)).InfoContext(r.Context(), "session created")
	h.renderSession(r.Context(), w, session, warnings, http.StatusCreated)
}

func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessionID, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(sessionID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSessionID)
		return
	}

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "session_id", sessionID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode session update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if strings.TrimSpace(req.EventID) != "" {
		eventID, ok := parseID(req.EventID)
		if !ok {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
			return
		}
		req.EventID = eventID
	}

	logger := h.log(r.Context(), "Update", "session_id", sessionID)
	session, warnings, err := h.service.UpdateSession(r.Context(), sessionID, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "session update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("conflict_count", len(warnings)).InfoContext(r.Context(), "session updated")
	h.renderSession(r.Context(), w, session, warnings, http.StatusOK)
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessionID, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(sessionID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSessionID)
		return
	}

	if err := h.service.DeleteSession(r.Context(), sessionID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// List answers GET /sessions?event_id=&room_id= with the agenda and every
// room conflict in it.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	filter, err := buildSessionFilter(r)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	listing, err := h.service.ListSessions(r.Context(), filter)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listSessionsResponse{
		Sessions: toSessionDTOs(listing.Sessions),
		Warnings: toWarningDTOs(listing.Warnings),
	})
}

// Grid answers GET /sessions/grid?event_id= with parallel tracks lined up by
// time slot.
func (h *SessionHandler) Grid(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, err := requireEventID(r)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	rows, err := h.service.TimeSlotGrid(r.Context(), eventID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]gridRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, gridRowDTO{
			Start:    row.Start.String(),
			End:      row.End.String(),
			Sessions: toSessionDTOs(row.Sessions),
		})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, gridResponse{Rows: out})
}

// Templates answers GET /session-types with the metadata each type collects.
func (h *SessionHandler) Templates(w http.ResponseWriter, r *http.Request) {
	if h == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	templates := application.SessionTemplates()
	out := make([]sessionTemplateDTO, 0, len(templates))
	for _, tpl := range templates {
		dto := sessionTemplateDTO{Type: tpl.Type, Label: tpl.Label}
		for _, field := range tpl.Fields {
			dto.Fields = append(dto.Fields, templateFieldDTO{Name: field.Name, Label: field.Label, Required: field.Required})
		}
		out = append(out, dto)
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, sessionTemplatesResponse{SessionTypes: out})
}

func (h *SessionHandler) renderSession(ctx context.Context, w http.ResponseWriter, session application.Session, warnings []application.ConflictWarning, status int) {
	h.responder.writeJSON(ctx, w, status, sessionResponse{
		Session:  toSessionDTO(session),
		Warnings: toWarningDTOs(warnings),
	})
}

func requireEventID(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("event_id"))
	if raw == "" {
		return "", errMissingEventID
	}
	id, ok := parseID(raw)
	if !ok {
		return "", errInvalidEventID
	}
	return id, nil
}

func buildSessionFilter(r *http.Request) (application.SessionFilter, error) {
	eventID, err := requireEventID(r)
	if err != nil {
		return application.SessionFilter{}, err
	}
	filter := application.SessionFilter{EventID: eventID}
	if raw := strings.TrimSpace(r.URL.Query().Get("room_id")); raw != "" {
		roomID, ok := parseID(raw)
		if !ok {
			return application.SessionFilter{}, errInvalidRoomID
		}
		filter.RoomID = &roomID
	}
	return filter, nil
}

type sessionRequest struct {
	EventID     string            `json:"event_id"`
	Title       string            `json:"session_title"`
	StartTime   string            `json:"start_time"`
	EndTime     string            `json:"end_time"`
	BuildingID  *string           `json:"building_id"`
	RoomID      *string           `json:"room_id"`
	Description *string           `json:"description"`
	Location    *string           `json:"location"`
	Speaker     *string           `json:"speaker"`
	SessionType string            `json:"session_type"`
	Metadata    map[string]string `json:"metadata"`
	OrderIndex  int               `json:"order_index"`
}

func (r sessionRequest) toInput() application.SessionInput {
	return application.SessionInput{
		EventID:     strings.TrimSpace(r.EventID),
		Title:       strings.TrimSpace(r.Title),
		StartTime:   strings.TrimSpace(r.StartTime),
		EndTime:     strings.TrimSpace(r.EndTime),
		BuildingID:  r.BuildingID,
		RoomID:      r.RoomID,
		Description: r.Description,
		Location:    r.Location,
		Speaker:     r.Speaker,
		SessionType: strings.TrimSpace(r.SessionType),
		Metadata:    r.Metadata,
		OrderIndex:  r.OrderIndex,
	}
}

type sessionDTO struct {
	ID               string            `json:"id"`
	EventID          string            `json:"event_id"`
	Title            string            `json:"session_title"`
	StartTime        string            `json:"start_time"`
	EndTime          string            `json:"end_time"`
	StartDisplay     string            `json:"start_display"`
	EndDisplay       string            `json:"end_display"`
	BuildingID       *string           `json:"building_id,omitempty"`
	RoomID           *string           `json:"room_id,omitempty"`
	Description      *string           `json:"description,omitempty"`
	Location         *string           `json:"location,omitempty"`
	Speaker          *string           `json:"speaker,omitempty"`
	SessionType      string            `json:"session_type"`
	SessionTypeLabel string            `json:"session_type_label"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	OrderIndex       int               `json:"order_index"`
	CreatedAt        string            `json:"created_at"`
	UpdatedAt        string            `json:"updated_at"`
}

func toSessionDTO(session application.Session) sessionDTO {
	return sessionDTO{
		ID:               session.ID,
		EventID:          session.EventID,
		Title:            session.Title,
		StartTime:        session.Start.String(),
		EndTime:          session.End.String(),
		StartDisplay:     session.Start.Format12Hour(),
		EndDisplay:       session.End.Format12Hour(),
		BuildingID:       session.BuildingID,
		RoomID:           session.RoomID,
		Description:      session.Description,
		Location:         session.Location,
		Speaker:          session.Speaker,
		SessionType:      session.SessionType,
		SessionTypeLabel: application.SessionTypeLabel(session.SessionType),
		Metadata:         session.Metadata,
		OrderIndex:       session.OrderIndex,
		CreatedAt:        session.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:        session.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toSessionDTOs(sessions []application.Session) []sessionDTO {
	out := make([]sessionDTO, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toSessionDTO(session))
	}
	return out
}

type conflictWarningDTO struct {
	SessionID            string  `json:"session_id,omitempty"`
	ConflictingSessionID string  `json:"conflicting_session_id"`
	ConflictingTitle     string  `json:"conflicting_title"`
	Type                 string  `json:"type"`
	Message              string  `json:"message"`
	RoomID               *string `json:"room_id,omitempty"`
}

func toWarningDTOs(warnings []application.ConflictWarning) []conflictWarningDTO {
	if len(warnings) == 0 {
		return nil
	}

	out := make([]conflictWarningDTO, 0, len(warnings))
	for _, warning := range warnings {
		out = append(out, conflictWarningDTO{
			SessionID:            warning.SessionID,
			ConflictingSessionID: warning.ConflictingSessionID,
			ConflictingTitle:     warning.ConflictingTitle,
			Type:                 warning.Type,
			Message:              warning.Message,
			RoomID:               warning.RoomID,
		})
	}
	return out
}

type sessionResponse struct {
	Session  sessionDTO           `json:"session"`
	Warnings []conflictWarningDTO `json:"warnings,omitempty"`
}

type listSessionsResponse struct {
	Sessions []sessionDTO         `json:"sessions"`
	Warnings []conflictWarningDTO `json:"warnings,omitempty"`
}

type gridRowDTO struct {
	Start    string       `json:"start"`
	End      string       `json:"end"`
	Sessions []sessionDTO `json:"sessions"`
}

type gridResponse struct {
	Rows []gridRowDTO `json:"rows"`
}

type templateFieldDTO struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

type sessionTemplateDTO struct {
	Type   string             `json:"type"`
	Label  string             `json:"label"`
	Fields []templateFieldDTO `json:"fields"`
}

type sessionTemplatesResponse struct {
	SessionTypes []sessionTemplateDTO `json:"session_types"`
}
