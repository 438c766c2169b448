package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/muralisunil/event-elegance-landing/internal/persistence"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "eventplanner.db")
	store, err := Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return store
}

func strPtr(s string) *string { return &s }
func intRef(n int) *int { return &n }

func seedEvent(t *testing.T, store *Store, id string) persistence.Event {
	t.Helper()
	event := persistence.Event{
		ID:              id,
		Name:            "Community Outreach",
		Location:        "Town Hall",
		EventDate:       "2026-04-01",
		EventTime:       "09:00",
		DurationMinutes: intRef(150),
		CreatedAt:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := store.CreateEvent(context.Background(), event); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	return event
}

func seedRoom(t *testing.T, store *Store, eventID, id string) {
	t.Helper()
	room := persistence.Room{ID: id, EventID: eventID, Name: "Room " + id, Capacity: intRef(40)}
	if err := store.CreateRoom(context.Background(), room); err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}

	var count int
	if err := store.DB().QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 recorded migrations, got %d", count)
	}
}

func TestEventRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	event := seedEvent(t, store, "event-1")

	fetched, err := store.GetEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if fetched.DurationMinutes == nil || *fetched.DurationMinutes != 150 {
		t.Fatalf("expected duration 150, got %v", fetched.DurationMinutes)
	}
	if fetched.EventEndTime != nil || fetched.IsMultiDay {
		t.Fatalf("unexpected end timing on duration event: %#v", fetched)
	}
	if !fetched.CreatedAt.Equal(event.CreatedAt) {
		t.Fatalf("expected created_at %v, got %v", event.CreatedAt, fetched.CreatedAt)
	}

	// Switching to a multi-day span clears the stored duration.
	event.DurationMinutes = nil
	event.IsMultiDay = true
	event.EventEndDate = strPtr("2026-04-03")
	event.EventEndTime = strPtr("17:00")
	if err := store.UpdateEvent(ctx, event); err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}
	fetched, err = store.GetEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetEvent after update failed: %v", err)
	}
	if fetched.DurationMinutes != nil || !fetched.IsMultiDay || *fetched.EventEndDate != "2026-04-03" {
		t.Fatalf("unexpected timing after update: %#v", fetched)
	}

	seedEvent(t, store, "event-0")
	events, err := store.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 2 || events[0].ID != "event-0" {
		t.Fatalf("expected events ordered by start then id, got %#v", events)
	}

	if _, err := store.GetEvent(ctx, "missing"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.UpdateEvent(ctx, persistence.Event{ID: "missing", EventDate: "2026-04-01", EventTime: "09:00"}); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if err := store.CreateEvent(ctx, event); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestEventRepositoryRejectsNonPositiveDuration(t *testing.T) {
	store := newTestStore(t)
	event := persistence.Event{
		ID:              "event-1",
		Name:            "Broken",
		EventDate:       "2026-04-01",
		EventTime:       "09:00",
		DurationMinutes: intRef(0),
	}
	if err := store.CreateEvent(context.Background(), event); !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
}

func TestVenueRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedEvent(t, store, "event-1")

	building := persistence.Building{ID: "b-1", EventID: "event-1", Name: "Main Hall", Address: strPtr("1 Main St")}
	if err := store.CreateBuilding(ctx, building); err != nil {
		t.Fatalf("CreateBuilding failed: %v", err)
	}
	buildings, err := store.ListBuildings(ctx, "event-1")
	if err != nil {
		t.Fatalf("ListBuildings failed: %v", err)
	}
	if len(buildings) != 1 || *buildings[0].Address != "1 Main St" {
		t.Fatalf("unexpected buildings: %#v", buildings)
	}

	room := persistence.Room{ID: "r-1", EventID: "event-1", BuildingID: strPtr("b-1"), Name: "Auditorium", OrderIndex: 1}
	if err := store.CreateRoom(ctx, room); err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	seedRoom(t, store, "event-1", "r-0")

	rooms, err := store.ListRooms(ctx, "event-1")
	if err != nil {
		t.Fatalf("ListRooms failed: %v", err)
	}
	if len(rooms) != 2 || rooms[0].ID != "r-0" || rooms[1].Capacity != nil {
		t.Fatalf("unexpected rooms: %#v", rooms)
	}

	if err := store.CreateRoom(ctx, persistence.Room{ID: "r-2", EventID: "missing", Name: "Orphan"}); !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Fatalf("expected ErrForeignKeyViolation, got %v", err)
	}
	if err := store.CreateRoom(ctx, persistence.Room{ID: "r-3", EventID: "event-1", Name: "Tiny", Capacity: intRef(0)}); !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
}

func TestDeleteRoomDetachesSessions(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedEvent(t, store, "event-1")
	seedRoom(t, store, "event-1", "r-1")

	session := persistence.Session{ID: "s-1", EventID: "event-1", Title: "Keynote", StartTime: "09:00", EndTime: "10:00", RoomID: strPtr("r-1")}
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if err := store.DeleteRoom(ctx, "r-1"); err != nil {
		t.Fatalf("DeleteRoom failed: %v", err)
	}
	fetched, err := store.GetSession(ctx, "s-1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if fetched.RoomID != nil {
		t.Fatalf("expected session room to be cleared, got %v", *fetched.RoomID)
	}
	if err := store.DeleteRoom(ctx, "r-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedEvent(t, store, "event-1")
	seedRoom(t, store, "event-1", "r-1")

	session := persistence.Session{
		ID:          "s-1",
		EventID:     "event-1",
		Title:       "Workshop",
		StartTime:   "13:00",
		EndTime:     "14:30",
		RoomID:      strPtr("r-1"),
		SessionType: strPtr("workshop"),
		Speaker:     strPtr("Dana"),
		Metadata:    map[string]string{"facilitator": "Dana", "materials": "Laptops"},
	}
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if err := store.CreateSession(ctx, persistence.Session{ID: "s-0", EventID: "event-1", Title: "Registration", StartTime: "08:30", EndTime: "09:00"}); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	fetched, err := store.GetSession(ctx, "s-1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if !reflect.DeepEqual(fetched.Metadata, session.Metadata) {
		t.Fatalf("expected metadata %v, got %v", session.Metadata, fetched.Metadata)
	}

	all, err := store.ListSessions(ctx, persistence.SessionFilter{EventID: "event-1"})
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(all) != 2 || all[0].ID != "s-0" {
		t.Fatalf("expected sessions ordered by start time, got %#v", all)
	}
	inRoom, err := store.ListSessions(ctx, persistence.SessionFilter{EventID: "event-1", RoomID: strPtr("r-1")})
	if err != nil {
		t.Fatalf("ListSessions by room failed: %v", err)
	}
	if len(inRoom) != 1 || inRoom[0].ID != "s-1" {
		t.Fatalf("expected only s-1 in room, got %#v", inRoom)
	}

	session.EndTime = "15:00"
	session.Metadata = nil
	if err := store.UpdateSession(ctx, session); err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}
	fetched, _ = store.GetSession(ctx, "s-1")
	if fetched.EndTime != "15:00" || fetched.Metadata != nil {
		t.Fatalf("unexpected session after update: %#v", fetched)
	}

	if err := store.DeleteSession(ctx, "s-1"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := store.GetSession(ctx, "s-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestReserveSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedEvent(t, store, "event-1")
	seedRoom(t, store, "event-1", "r-1")
	seedRoom(t, store, "event-1", "r-2")

	reserve := func(id, start, end, room string) error {
		return store.ReserveSession(ctx, persistence.Session{
			ID: id, EventID: "event-1", Title: "Session " + id,
			StartTime: start, EndTime: end, RoomID: strPtr(room),
		})
	}

	if err := reserve("a", "09:00", "10:00", "r-1"); err != nil {
		t.Fatalf("first reservation failed: %v", err)
	}
	if err := reserve("b", "10:00", "11:00", "r-1"); err != nil {
		t.Fatalf("touching reservation should succeed: %v", err)
	}
	if err := reserve("c", "09:30", "10:30", "r-2"); err != nil {
		t.Fatalf("other room should succeed: %v", err)
	}

	err := reserve("d", "09:30", "10:30", "r-1")
	if !errors.Is(err, persistence.ErrRoomConflict) {
		t.Fatalf("expected ErrRoomConflict, got %v", err)
	}
	var conflict *persistence.RoomConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected RoomConflictError, got %T", err)
	}
	if len(conflict.Sessions) != 2 || conflict.Sessions[0].ID != "a" || conflict.Sessions[1].ID != "b" {
		t.Fatalf("expected conflicts with a and b, got %#v", conflict.Sessions)
	}
	if _, err := store.GetSession(ctx, "d"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("refused reservation must not be stored, got %v", err)
	}

	// Moving a within its own slot does not collide with itself.
	if err := reserve("a", "09:15", "10:00", "r-1"); err != nil {
		t.Fatalf("editing a within its slot failed: %v", err)
	}
	fetched, _ := store.GetSession(ctx, "a")
	if fetched.StartTime != "09:15" {
		t.Fatalf("expected a to be updated, got %#v", fetched)
	}

	if err := reserve("e", "12:00", "13:00", "missing"); !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Fatalf("expected ErrForeignKeyViolation for unknown room, got %v", err)
	}
}

func TestReserveSessionConcurrent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedEvent(t, store, "event-1")
	seedRoom(t, store, "event-1", "r-1")

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.ReserveSession(ctx, persistence.Session{
				ID: "s-" + string(rune('a'+i)), EventID: "event-1", Title: "Race",
				StartTime: "09:00", EndTime: "10:00", RoomID: strPtr("r-1"),
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			if !errors.Is(err, persistence.ErrRoomConflict) {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if succeeded != 1 {
		t.Fatalf("expected exactly one reservation to win, got %d", succeeded)
	}
}

func TestRebind(t *testing.T) {
	query := `SELECT * FROM event_schedules WHERE room_id = ? AND id <> ?`
	if got := rebind(DialectSQLite, query); got != query {
		t.Fatalf("sqlite query should be unchanged, got %q", got)
	}
	want := `SELECT * FROM event_schedules WHERE room_id = $1 AND id <> $2`
	if got := rebind(DialectPostgres, query); got != want {
		t.Fatalf("rebind = %q, want %q", got, want)
	}
}

func TestParseDialect(t *testing.T) {
	tests := map[string]Dialect{"": DialectSQLite, "sqlite": DialectSQLite, "PGX": DialectPostgres, "postgres": DialectPostgres}
	for in, want := range tests {
		got, err := ParseDialect(in)
		if err != nil || got != want {
			t.Fatalf("ParseDialect(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseDialect("mysql"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestSplitStatements(t *testing.T) {
	body := "-- comment\nCREATE TABLE a (\n\tid TEXT\n);\n\nCREATE INDEX i ON a (id);\n"
	got := splitStatements(body)
	if len(got) != 2 || got[1] != "CREATE INDEX i ON a (id)" {
		t.Fatalf("unexpected statements: %#v", got)
	}
}
