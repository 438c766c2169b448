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

type venueService interface {
	CreateBuilding(ctx context.Context, input application.BuildingInput) (application.Building, error)
	ListBuildings(ctx context.Context, eventID string) ([]application.Building, error)
	CreateRoom(ctx context.Context, input application.RoomInput) (application.Room, error)
	ListRooms(ctx context.Context, eventID string) ([]application.Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

// VenueHandler serves the buildings and rooms of an event.
type VenueHandler struct {
	service   venueService
	responder responder
	logger    *slog.Logger
}

func NewVenueHandler(service venueService, logger *slog.Logger) *VenueHandler {
	base := defaultLogger(logger)
	return &VenueHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *VenueHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "VenueHandler", operation, attrs...)
}

func (h *VenueHandler) CreateBuilding(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req buildingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "CreateBuilding", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode building request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	eventID, ok := parseID(req.EventID)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}
	req.EventID = eventID

	logger := h.log(r.Context(), "CreateBuilding", "event_id", eventID)
	building, err := h.service.CreateBuilding(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "building creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("building_id", building.ID).InfoContext(r.Context(), "building created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, buildingResponse{Building: toBuildingDTO(building)})
}

func (h *VenueHandler) ListBuildings(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, err := requireEventID(r)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	buildings, err := h.service.ListBuildings(r.Context(), eventID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]buildingDTO, 0, len(buildings))
	for _, building := range buildings {
		out = append(out, toBuildingDTO(building))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listBuildingsResponse{Buildings: out})
}

func (h *VenueHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "CreateRoom", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode room request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	eventID, ok := parseID(req.EventID)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}
	req.EventID = eventID

	logger := h.log(r.Context(), "CreateRoom", "event_id", eventID)
	room, err := h.service.CreateRoom(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "room creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("room_id", room.ID).InfoContext(r.Context(), "room created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, roomResponse{Room: toRoomDTO(room)})
}

func (h *VenueHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, err := requireEventID(r)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "ListRooms", "event_id", eventID)
	rooms, err := h.service.ListRooms(r.Context(), eventID)
	if err != nil {
		logger.ErrorContext(r.Context(), "room list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(rooms)).InfoContext(r.Context(), "rooms listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listRoomsResponse{Rooms: toRoomDTOs(rooms)})
}

func (h *VenueHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	roomID, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(roomID) == "" {
		h.log(r.Context(), "DeleteRoom", "error_kind", "bad_request").ErrorContext(r.Context(), "missing room id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRoomID)
		return
	}

	logger := h.log(r.Context(), "DeleteRoom", "room_id", roomID)
	if err := h.service.DeleteRoom(r.Context(), roomID); err != nil {
		logger.ErrorContext(r.Context(), "room delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "room deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type buildingRequest struct {
	EventID    string  `json:"event_id"`
	Name       string  `json:"name"`
	Address    *string `json:"address"`
	Notes      *string `json:"notes"`
	OrderIndex int     `json:"order_index"`
}

func (r buildingRequest) toInput() application.BuildingInput {
	return application.BuildingInput{
		EventID:    r.EventID,
		Name:       strings.TrimSpace(r.Name),
		Address:    r.Address,
		Notes:      r.Notes,
		OrderIndex: r.OrderIndex,
	}
}

type buildingDTO struct {
	ID         string  `json:"id"`
	EventID    string  `json:"event_id"`
	Name       string  `json:"name"`
	Address    *string `json:"address,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	OrderIndex int     `json:"order_index"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func toBuildingDTO(building application.Building) buildingDTO {
	return buildingDTO{
		ID:         building.ID,
		EventID:    building.EventID,
		Name:       building.Name,
		Address:    building.Address,
		Notes:      building.Notes,
		OrderIndex: building.OrderIndex,
		CreatedAt:  building.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:  building.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

type buildingResponse struct {
	Building buildingDTO `json:"building"`
}

type listBuildingsResponse struct {
	Buildings []buildingDTO `json:"buildings"`
}

type roomRequest struct {
	EventID    string  `json:"event_id"`
	BuildingID *string `json:"building_id"`
	Name       string  `json:"name"`
	Capacity   *int    `json:"capacity"`
	Facilities *string `json:"facilities"`
	Notes      *string `json:"notes"`
	OrderIndex int     `json:"order_index"`
}

func (r roomRequest) toInput() application.RoomInput {
	var facilities *string
	if r.Facilities != nil {
		trimmed := strings.TrimSpace(*r.Facilities)
		facilities = &trimmed
	}
	return application.RoomInput{
		EventID:    r.EventID,
		BuildingID: r.BuildingID,
		Name:       strings.TrimSpace(r.Name),
		Capacity:   r.Capacity,
		Facilities: facilities,
		Notes:      r.Notes,
		OrderIndex: r.OrderIndex,
	}
}

type roomResponse struct {
	Room roomDTO `json:"room"`
}

type listRoomsResponse struct {
	Rooms []roomDTO `json:"rooms"`
}

type roomDTO struct {
	ID         string  `json:"id"`
	EventID    string  `json:"event_id"`
	BuildingID *string `json:"building_id,omitempty"`
	Name       string  `json:"name"`
	Capacity   *int    `json:"capacity,omitempty"`
	Facilities *string `json:"facilities,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	OrderIndex int     `json:"order_index"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func toRoomDTO(room application.Room) roomDTO {
	return roomDTO{
		ID:         room.ID,
		EventID:    room.EventID,
		BuildingID: room.BuildingID,
		Name:       room.Name,
		Capacity:   room.Capacity,
		Facilities: room.Facilities,
		Notes:      room.Notes,
		OrderIndex: room.OrderIndex,
		CreatedAt:  room.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:  room.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toRoomDTOs(rooms []application.Room) []roomDTO {
	out := make([]roomDTO, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toRoomDTO(room))
	}
	return out
}
