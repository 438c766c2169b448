package application

import (
	"context"
	"sort"
	"sync"
)

type eventRepoStub struct {
	mu      sync.Mutex
	events  map[string]Event
	created []Event
	err     error
}

func newEventRepoStub(events ...Event) *eventRepoStub {
	stub := &eventRepoStub{events: make(map[string]Event)}
	for _, e := range events {
		stub.events[e.ID] = e
	}
	return stub
}

func (r *eventRepoStub) CreateEvent(ctx context.Context, event Event) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return Event{}, r.err
	}
	if _, ok := r.events[event.ID]; ok {
		return Event{}, ErrAlreadyExists
	}
	r.events[event.ID] = event
	r.created = append(r.created, event)
	return event, nil
}

func (r *eventRepoStub) UpdateEvent(ctx context.Context, event Event) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[event.ID]; !ok {
		return Event{}, ErrNotFound
	}
	r.events[event.ID] = event
	return event, nil
}

func (r *eventRepoStub) GetEvent(ctx context.Context, id string) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return Event{}, ErrNotFound
	}
	return event, nil
}

func (r *eventRepoStub) ListEvents(ctx context.Context) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e)
	}
	return out, nil
}

func (r *eventRepoStub) EventExists(ctx context.Context, id string) (bool, error) {
	_, err := r.GetEvent(ctx, id)
	return err == nil, nil
}

// sessionRepoStub keeps sessions in insertion order.
type sessionRepoStub struct {
	mu         sync.Mutex
	sessions   []Session
	listCalls  int
	reserveErr error
	reserved   []Session
}

func (r *sessionRepoStub) CreateSession(ctx context.Context, session Session) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, session)
	return session, nil
}

func (r *sessionRepoStub) UpdateSession(ctx context.Context, session Session) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sessions {
		if r.sessions[i].ID == session.ID {
			r.sessions[i] = session
			return session, nil
		}
	}
	return Session{}, ErrNotFound
}

func (r *sessionRepoStub) GetSession(ctx context.Context, id string) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return Session{}, ErrNotFound
}

func (r *sessionRepoStub) DeleteSession(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.sessions {
		if s.ID == id {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *sessionRepoStub) ListSessions(ctx context.Context, filter SessionFilter) ([]Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	var out []Session
	for _, s := range r.sessions {
		if s.EventID != filter.EventID {
			continue
		}
		if filter.RoomID != nil && (s.RoomID == nil || *s.RoomID != *filter.RoomID) {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

func (r *sessionRepoStub) ReserveSession(ctx context.Context, session Session) (Session, error) {
	if r.reserveErr != nil {
		return Session{}, r.reserveErr
	}
	r.mu.Lock()
	r.reserved = append(r.reserved, session)
	r.mu.Unlock()
	if _, err := r.UpdateSession(ctx, session); err == nil {
		return session, nil
	}
	return r.CreateSession(ctx, session)
}

type venueRepoStub struct {
	mu        sync.Mutex
	buildings map[string]Building
	rooms     map[string]Room
	deleted   []string
}

func newVenueRepoStub(rooms ...Room) *venueRepoStub {
	stub := &venueRepoStub{buildings: make(map[string]Building), rooms: make(map[string]Room)}
	for _, r := range rooms {
		stub.rooms[r.ID] = r
	}
	return stub
}

func (r *venueRepoStub) CreateBuilding(ctx context.Context, building Building) (Building, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buildings[building.ID] = building
	return building, nil
}

func (r *venueRepoStub) GetBuilding(ctx context.Context, id string) (Building, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.buildings[id]
	if !ok {
		return Building{}, ErrNotFound
	}
	return b, nil
}

func (r *venueRepoStub) ListBuildings(ctx context.Context, eventID string) ([]Building, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Building
	for _, b := range r.buildings {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *venueRepoStub) CreateRoom(ctx context.Context, room Room) (Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[room.ID] = room
	return room, nil
}

func (r *venueRepoStub) GetRoom(ctx context.Context, id string) (Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return Room{}, ErrNotFound
	}
	return room, nil
}

func (r *venueRepoStub) ListRooms(ctx context.Context, eventID string) ([]Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Room
	for _, room := range r.rooms {
		if room.EventID == eventID {
			out = append(out, room)
		}
	}
	return out, nil
}

func (r *venueRepoStub) DeleteRoom(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[id]; !ok {
		return ErrNotFound
	}
	delete(r.rooms, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return prefix + "-" + string(rune('0'+n/10)) + string(rune('0'+n%10))
	}
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
