package main

import (
	"context"
	"errors"
	"testing"

	"github.com/muralisunil/event-elegance-landing/internal/application"
	"github.com/muralisunil/event-elegance-landing/internal/testfixtures"
)

type wiredServices struct {
	events   *application.EventService
	venues   *application.VenueService
	sessions *application.SessionService
}

func newWiredServices(t *testing.T, strict bool) wiredServices {
	t.Helper()

	harness := testfixtures.NewSQLiteHarness(t)
	factory := testfixtures.NewServiceFactory(testfixtures.WithIDGenerator(testfixtures.NewUUIDGenerator("wired")))

	events := factory.NewEventService(testfixtures.EventServiceDeps{Events: newEventRepositoryAdapter(harness.Events)})
	venues := factory.NewVenueService(testfixtures.VenueServiceDeps{Venues: newVenueRepositoryAdapter(harness.Venues), Events: events})
	sessions := factory.NewSessionService(testfixtures.SessionServiceDeps{
		Sessions: newSessionRepositoryAdapter(harness.Sessions),
		Events:   events,
		Rooms:    venues,
		Options:  application.SessionOptions{StrictRoomBooking: strict},
	})
	venues.OnRoomsChange(sessions.InvalidateWarnings)
	return wiredServices{events: events, venues: venues, sessions: sessions}
}

func strPtr(s string) *string { return &s }

func TestEventAdapterRoundTripsEveryEndMode(t *testing.T) {
	t.Parallel()

	svc := newWiredServices(t, false)
	ctx := context.Background()

	tests := []struct {
		name        string
		timing      application.TimingInput
		wantDisplay string
		wantNextDay bool
	}{
		{
			name:        "duration rolling past midnight",
			timing:      application.TimingInput{Date: "2026-04-01", StartTime: "23:30", DurationHours: 1},
			wantDisplay: "12:30 AM (Next Day)",
			wantNextDay: true,
		},
		{
			name:        "explicit end time",
			timing:      application.TimingInput{Date: "2026-04-02", StartTime: "09:00", EndTime: "17:00"},
			wantDisplay: "5:00 PM",
		},
		{
			name:        "multi-day",
			timing:      application.TimingInput{Date: "2026-04-03", StartTime: "09:00", IsMultiDay: true, EndDate: "2026-04-05", EndTime: "16:00"},
			wantDisplay: "4:00 PM",
		},
	}

	for _, tc := range tests {
		created, err := svc.events.CreateEvent(ctx, application.EventInput{Name: tc.name, Location: "Hall", Timing: tc.timing})
		if err != nil {
			t.Fatalf("%s: CreateEvent failed: %v", tc.name, err)
		}
		stored, err := svc.events.GetEvent(ctx, created.ID)
		if err != nil {
			t.Fatalf("%s: GetEvent failed: %v", tc.name, err)
		}
		if stored.Timing.EndTime.DisplayText != tc.wantDisplay || stored.Timing.EndTime.IsNextDay != tc.wantNextDay {
			t.Fatalf("%s: unexpected end time %+v", tc.name, stored.Timing.EndTime)
		}
		if stored.Timing.Date.String() != tc.timing.Date || stored.Timing.StartTime.String() != tc.timing.StartTime {
			t.Fatalf("%s: unexpected start %s %s", tc.name, stored.Timing.Date, stored.Timing.StartTime)
		}
		if tc.timing.IsMultiDay {
			if stored.Timing.Stored.EventEndDate == nil || stored.Timing.Stored.EventEndDate.String() != tc.timing.EndDate {
				t.Fatalf("%s: expected end date %s, got %v", tc.name, tc.timing.EndDate, stored.Timing.Stored.EventEndDate)
			}
			if stored.Timing.Stored.DurationMinutes != nil {
				t.Fatalf("%s: multi-day events store no duration", tc.name)
			}
		}
	}

	listed, err := svc.events.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(listed) != len(tests) {
		t.Fatalf("expected %d events, got %d", len(tests), len(listed))
	}
}

func TestSessionAdapterWarnsAndReserves(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	seed := func(t *testing.T, svc wiredServices) (application.Event, application.Room) {
		t.Helper()
		event, err := svc.events.CreateEvent(ctx, application.EventInput{
			Name:     "Spring Outreach",
			Location: "Hall",
			Timing:   application.TimingInput{Date: "2026-04-01", StartTime: "09:00", DurationHours: 8},
		})
		if err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
		room, err := svc.venues.CreateRoom(ctx, application.RoomInput{EventID: event.ID, Name: "Ballroom"})
		if err != nil {
			t.Fatalf("CreateRoom failed: %v", err)
		}
		if _, _, err := svc.sessions.CreateSession(ctx, application.SessionInput{
			EventID:   event.ID,
			Title:     "Keynote",
			StartTime: "09:00",
			EndTime:   "10:00",
			RoomID:    strPtr(room.ID),
		}); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		return event, room
	}

	t.Run("advisory mode stores the overlap and warns", func(t *testing.T) {
		t.Parallel()
		svc := newWiredServices(t, false)
		event, room := seed(t, svc)

		session, warnings, err := svc.sessions.CreateSession(ctx, application.SessionInput{
			EventID:   event.ID,
			Title:     "Workshop",
			StartTime: "09:30",
			EndTime:   "10:30",
			RoomID:    strPtr(room.ID),
			Metadata:  map[string]string{"track": "main"},
		})
		if err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if len(warnings) != 1 || warnings[0].ConflictingTitle != "Keynote" {
			t.Fatalf("expected a warning about Keynote, got %+v", warnings)
		}

		listing, err := svc.sessions.ListSessions(ctx, application.SessionFilter{EventID: event.ID})
		if err != nil {
			t.Fatalf("ListSessions failed: %v", err)
		}
		if len(listing.Sessions) != 2 || listing.Sessions[1].ID != session.ID {
			t.Fatalf("unexpected listing %+v", listing.Sessions)
		}
		if listing.Sessions[1].Metadata["track"] != "main" {
			t.Fatalf("expected metadata to round trip, got %+v", listing.Sessions[1].Metadata)
		}
	})

	t.Run("strict mode refuses the overlap", func(t *testing.T) {
		t.Parallel()
		svc := newWiredServices(t, true)
		event, room := seed(t, svc)

		_, _, err := svc.sessions.CreateSession(ctx, application.SessionInput{
			EventID:   event.ID,
			Title:     "Workshop",
			StartTime: "09:30",
			EndTime:   "10:30",
			RoomID:    strPtr(room.ID),
		})
		var conflict *application.RoomConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("expected RoomConflictError, got %v", err)
		}
		if len(conflict.Warnings) != 1 || conflict.Warnings[0].ConflictingTitle != "Keynote" {
			t.Fatalf("unexpected conflict %+v", conflict.Warnings)
		}

		if _, _, err := svc.sessions.CreateSession(ctx, application.SessionInput{
			EventID:   event.ID,
			Title:     "Lunch",
			StartTime: "10:00",
			EndTime:   "11:00",
			RoomID:    strPtr(room.ID),
		}); err != nil {
			t.Fatalf("touching sessions should be accepted, got %v", err)
		}
	})

	t.Run("deleting a room detaches its sessions", func(t *testing.T) {
		t.Parallel()
		svc := newWiredServices(t, false)
		event, room := seed(t, svc)

		if err := svc.venues.DeleteRoom(ctx, room.ID); err != nil {
			t.Fatalf("DeleteRoom failed: %v", err)
		}
		listing, err := svc.sessions.ListSessions(ctx, application.SessionFilter{EventID: event.ID})
		if err != nil {
			t.Fatalf("ListSessions failed: %v", err)
		}
		if len(listing.Sessions) != 1 || listing.Sessions[0].RoomID != nil {
			t.Fatalf("expected the session to lose its room, got %+v", listing.Sessions)
		}
	})
}
