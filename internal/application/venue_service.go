package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/muralisunil/event-elegance-landing/internal/persistence"
)

// VenueRepository captures the persistence operations needed by the service.
type VenueRepository interface {
	CreateBuilding(ctx context.Context, building Building) (Building, error)
	GetBuilding(ctx context.Context, id string) (Building, error)
	ListBuildings(ctx context.Context, eventID string) ([]Building, error)
	CreateRoom(ctx context.Context, room Room) (Room, error)
	GetRoom(ctx context.Context, id string) (Room, error)
	ListRooms(ctx context.Context, eventID string) ([]Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

// VenueService manages the buildings and rooms sessions can be booked into.
type VenueService struct {
	venues        VenueRepository
	events        EventCatalog
	idGenerator   func() string
	now           func() time.Time
	logger        *slog.Logger
	onRoomsChange func()
}

// NewVenueService constructs a venue service with the provided dependencies.
func NewVenueService(venues VenueRepository, events EventCatalog, idGenerator func() string, now func() time.Time) *VenueService {
	return NewVenueServiceWithLogger(venues, events, idGenerator, now, nil)
}

// NewVenueServiceWithLogger constructs a venue service with a specified logger.
func NewVenueServiceWithLogger(venues VenueRepository, events EventCatalog, idGenerator func() string, now func() time.Time, logger *slog.Logger) *VenueService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &VenueService{venues: venues, events: events, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

// OnRoomsChange registers fn to run after a room is removed.
func (s *VenueService) OnRoomsChange(fn func()) {
	if s != nil {
		s.onRoomsChange = fn
	}
}

func (s *VenueService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "VenueService", operation, attrs...)
}

// CreateBuilding validates input and stores a building for an event.
func (s *VenueService) CreateBuilding(ctx context.Context, input BuildingInput) (building Building, err error) {
	if s == nil {
		err = fmt.Errorf("VenueService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateBuilding", "event_id", input.EventID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create building", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("building_id", building.ID).InfoContext(ctx, "building created")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if err = s.ensureEvent(ctx, input.EventID, vErr); err != nil {
		return
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	building = Building{
		ID:         s.idGenerator(),
		EventID:    input.EventID,
		Name:       strings.TrimSpace(input.Name),
		Address:    normalizeOptionalString(input.Address),
		Notes:      normalizeOptionalString(input.Notes),
		OrderIndex: input.OrderIndex,
		CreatedAt:  s.now(),
	}
	building.UpdatedAt = building.CreatedAt

	if s.venues == nil {
		return
	}
	building, err = s.venues.CreateBuilding(ctx, building)
	if err != nil {
		err = mapVenueRepoError(err)
	}
	return
}

// ListBuildings returns an event's buildings in display order.
func (s *VenueService) ListBuildings(ctx context.Context, eventID string) ([]Building, error) {
	if s == nil {
		return nil, fmt.Errorf("VenueService is nil")
	}
	if s.venues == nil {
		return nil, nil
	}
	raw, err := s.venues.ListBuildings(ctx, eventID)
	if err != nil {
		return nil, mapVenueRepoError(err)
	}
	buildings := make([]Building, len(raw))
	copy(buildings, raw)
	sort.SliceStable(buildings, func(i, j int) bool {
		if buildings[i].OrderIndex != buildings[j].OrderIndex {
			return buildings[i].OrderIndex < buildings[j].OrderIndex
		}
		return strings.ToLower(buildings[i].Name) < strings.ToLower(buildings[j].Name)
	})
	return buildings, nil
}

// CreateRoom validates input and stores a room for an event.
func (s *VenueService) CreateRoom(ctx context.Context, input RoomInput) (room Room, err error) {
	if s == nil {
		err = fmt.Errorf("VenueService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateRoom", "event_id", input.EventID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("room_id", room.ID).InfoContext(ctx, "room created")
	}()

	vErr := validateRoomInput(input)
	if err = s.ensureEvent(ctx, input.EventID, vErr); err != nil {
		return
	}
	if err = s.ensureBuilding(ctx, input.BuildingID, input.EventID, vErr); err != nil {
		return
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	room = Room{
		ID:         s.idGenerator(),
		EventID:    input.EventID,
		BuildingID: normalizeOptionalString(input.BuildingID),
		Name:       strings.TrimSpace(input.Name),
		Capacity:   input.Capacity,
		Facilities: normalizeOptionalString(input.Facilities),
		Notes:      normalizeOptionalString(input.Notes),
		OrderIndex: input.OrderIndex,
		CreatedAt:  s.now(),
	}
	room.UpdatedAt = room.CreatedAt

	if s.venues == nil {
		return
	}
	room, err = s.venues.CreateRoom(ctx, room)
	if err != nil {
		err = mapVenueRepoError(err)
	}
	return
}

// GetRoom returns a single room.
func (s *VenueService) GetRoom(ctx context.Context, id string) (Room, error) {
	if s == nil {
		return Room{}, fmt.Errorf("VenueService is nil")
	}
	if s.venues == nil {
		return Room{}, ErrNotFound
	}
	room, err := s.venues.GetRoom(ctx, id)
	if err != nil {
		return Room{}, mapVenueRepoError(err)
	}
	return room, nil
}

// ListRooms returns an event's rooms in display order.
func (s *VenueService) ListRooms(ctx context.Context, eventID string) ([]Room, error) {
	if s == nil {
		return nil, fmt.Errorf("VenueService is nil")
	}
	if s.venues == nil {
		return nil, nil
	}
	raw, err := s.venues.ListRooms(ctx, eventID)
	if err != nil {
		return nil, mapVenueRepoError(err)
	}
	rooms := make([]Room, len(raw))
	copy(rooms, raw)
	sort.SliceStable(rooms, func(i, j int) bool {
		if rooms[i].OrderIndex != rooms[j].OrderIndex {
			return rooms[i].OrderIndex < rooms[j].OrderIndex
		}
		return strings.ToLower(rooms[i].Name) < strings.ToLower(rooms[j].Name)
	})
	return rooms, nil
}

// DeleteRoom removes a room. Sessions booked into it stay on the agenda
// without a room.
func (s *VenueService) DeleteRoom(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("VenueService is nil")
	}
	if s.venues == nil {
		return fmt.Errorf("venue repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteRoom", "room_id", id)
	if err := s.venues.DeleteRoom(ctx, id); err != nil {
		err = mapVenueRepoError(err)
		logger.ErrorContext(ctx, "failed to delete room", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	if s.onRoomsChange != nil {
		s.onRoomsChange()
	}
	logger.InfoContext(ctx, "room deleted")
	return nil
}

func (s *VenueService) ensureEvent(ctx context.Context, eventID string, vErr *ValidationError) error {
	if strings.TrimSpace(eventID) == "" {
		vErr.add("event_id", "event is required")
		return nil
	}
	if s.events == nil {
		return nil
	}
	exists, err := s.events.EventExists(ctx, eventID)
	if err != nil {
		return err
	}
	if !exists {
		vErr.add("event_id", "event does not exist")
	}
	return nil
}

func (s *VenueService) ensureBuilding(ctx context.Context, buildingID *string, eventID string, vErr *ValidationError) error {
	if normalizeOptionalString(buildingID) == nil || s.venues == nil {
		return nil
	}
	building, err := s.venues.GetBuilding(ctx, strings.TrimSpace(*buildingID))
	switch {
	case err == nil && building.EventID == eventID:
	case err == nil:
		vErr.add("building_id", "building belongs to another event")
	case isNotFoundError(err):
		vErr.add("building_id", "building does not exist")
	default:
		return err
	}
	return nil
}

func validateRoomInput(input RoomInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if input.Capacity != nil && *input.Capacity <= 0 {
		vErr.add("capacity", "capacity must be positive")
	}
	return vErr
}

func mapVenueRepoError(err error) error {
	if err == nil {
		return nil
	}
	if isNotFoundError(err) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	if errors.Is(err, persistence.ErrForeignKeyViolation) {
		vErr := &ValidationError{}
		vErr.add("event_id", "related records are missing")
		return vErr
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		vErr := &ValidationError{}
		vErr.add("capacity", "capacity must be positive")
		return vErr
	}
	return err
}
