package application

import (
	"context"
	"errors"
	"testing"
)

func newTestVenueService(repo *venueRepoStub, events EventCatalog) *VenueService {
	return NewVenueService(repo, events, sequentialIDs("room"), fixedNow)
}

func TestVenueServiceCreateRoom(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	events := newEventRepoStub(Event{ID: "event-1"}, Event{ID: "event-2"})

	t.Run("stores a room", func(t *testing.T) {
		t.Parallel()
		repo := newVenueRepoStub()
		svc := newTestVenueService(repo, events)

		room, err := svc.CreateRoom(ctx, RoomInput{EventID: "event-1", Name: " Hall A ", Capacity: intPtr(120), Facilities: strPtr("")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if room.ID != "room-01" || room.Name != "Hall A" || room.Facilities != nil {
			t.Fatalf("unexpected room %+v", room)
		}
		if _, ok := repo.rooms["room-01"]; !ok {
			t.Fatalf("expected room to be persisted")
		}
	})

	t.Run("rejects non-positive capacity and missing name", func(t *testing.T) {
		t.Parallel()
		svc := newTestVenueService(newVenueRepoStub(), events)
		_, err := svc.CreateRoom(ctx, RoomInput{EventID: "event-1", Capacity: intPtr(0)})
		vErr := requireValidation(t, err)
		if vErr.FieldErrors["capacity"] == "" || vErr.FieldErrors["name"] == "" {
			t.Fatalf("expected capacity and name errors, got %+v", vErr.FieldErrors)
		}
	})

	t.Run("rejects unknown event", func(t *testing.T) {
		t.Parallel()
		svc := newTestVenueService(newVenueRepoStub(), events)
		_, err := svc.CreateRoom(ctx, RoomInput{EventID: "event-9", Name: "Hall"})
		vErr := requireValidation(t, err)
		if vErr.FieldErrors["event_id"] != "event does not exist" {
			t.Fatalf("unexpected errors %+v", vErr.FieldErrors)
		}
	})

	t.Run("rejects building of another event", func(t *testing.T) {
		t.Parallel()
		repo := newVenueRepoStub()
		repo.buildings["b-1"] = Building{ID: "b-1", EventID: "event-2", Name: "Annex"}
		svc := newTestVenueService(repo, events)
		_, err := svc.CreateRoom(ctx, RoomInput{EventID: "event-1", Name: "Hall", BuildingID: strPtr("b-1")})
		vErr := requireValidation(t, err)
		if vErr.FieldErrors["building_id"] != "building belongs to another event" {
			t.Fatalf("unexpected errors %+v", vErr.FieldErrors)
		}
	})
}

func TestVenueServiceListingsAreOrdered(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newVenueRepoStub(
		Room{ID: "r-1", EventID: "event-1", Name: "hall b", OrderIndex: 1},
		Room{ID: "r-2", EventID: "event-1", Name: "Hall A", OrderIndex: 1},
		Room{ID: "r-3", EventID: "event-1", Name: "Foyer", OrderIndex: 0},
		Room{ID: "r-4", EventID: "event-2", Name: "Elsewhere"},
	)
	repo.buildings["b-1"] = Building{ID: "b-1", EventID: "event-1", Name: "West", OrderIndex: 2}
	repo.buildings["b-2"] = Building{ID: "b-2", EventID: "event-1", Name: "East", OrderIndex: 2}
	svc := newTestVenueService(repo, nil)

	rooms, err := svc.ListRooms(ctx, "event-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rooms) != 3 || rooms[0].ID != "r-3" || rooms[1].ID != "r-2" || rooms[2].ID != "r-1" {
		t.Fatalf("unexpected room order %+v", rooms)
	}

	buildings, err := svc.ListBuildings(ctx, "event-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buildings) != 2 || buildings[0].Name != "East" {
		t.Fatalf("unexpected building order %+v", buildings)
	}
}

func TestVenueServiceDeleteRoomNotifies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newVenueRepoStub(Room{ID: "r-1", EventID: "event-1", Name: "Hall"})
	svc := newTestVenueService(repo, nil)
	calls := 0
	svc.OnRoomsChange(func() { calls++ })

	if err := svc.DeleteRoom(ctx, "r-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected hook to run once, ran %d times", calls)
	}

	if err := svc.DeleteRoom(ctx, "r-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for second delete, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected hook to be skipped on failure")
	}
}

func TestVenueServiceCreateBuilding(t *testing.T) {
	t.Parallel()

	repo := newVenueRepoStub()
	svc := newTestVenueService(repo, newEventRepoStub(Event{ID: "event-1"}))

	building, err := svc.CreateBuilding(context.Background(), BuildingInput{EventID: "event-1", Name: "Main", Address: strPtr(" 1 High St ")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if building.Address == nil || *building.Address != "1 High St" {
		t.Fatalf("unexpected building %+v", building)
	}

	_, err = svc.CreateBuilding(context.Background(), BuildingInput{Name: "Main"})
	vErr := requireValidation(t, err)
	if vErr.FieldErrors["event_id"] != "event is required" {
		t.Fatalf("unexpected errors %+v", vErr.FieldErrors)
	}
}
