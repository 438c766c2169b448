package persistence

import "context"

// EventRepository exposes CRUD operations for events.
type EventRepository interface {
	CreateEvent(ctx context.Context, event Event) error
	UpdateEvent(ctx context.Context, event Event) error
	GetEvent(ctx context.Context, id string) (Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
}

// VenueRepository exposes buildings and rooms attached to events.
type VenueRepository interface {
	CreateBuilding(ctx context.Context, building Building) error
	GetBuilding(ctx context.Context, id string) (Building, error)
	ListBuildings(ctx context.Context, eventID string) ([]Building, error)
	CreateRoom(ctx context.Context, room Room) error
	GetRoom(ctx context.Context, id string) (Room, error)
	ListRooms(ctx context.Context, eventID string) ([]Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

// SessionFilter narrows session queries.
type SessionFilter struct {
	EventID string
	RoomID  *string
}

// SessionRepository stores agenda sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) error
	UpdateSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, id string) (Session, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]Session, error)
	DeleteSession(ctx context.Context, id string) error
	// ReserveSession creates or updates the session only if no other session
	// holds its room over an overlapping time range. The check and the write
	// happen in one transaction. A refusal returns *RoomConflictError.
	ReserveSession(ctx context.Context, session Session) error
}
