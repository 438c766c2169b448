package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/muralisunil/event-elegance-landing/internal/eventdate"
	"github.com/muralisunil/event-elegance-landing/internal/timeofday"
)

var referenceNow = time.Date(2026, time.March, 10, 16, 45, 0, 0, time.UTC)

func fixedNow() time.Time { return referenceNow }

func newTestEventService(repo EventRepository) *EventService {
	return NewEventService(repo, sequentialIDs("event"), fixedNow, time.UTC)
}

func validEventInput() EventInput {
	return EventInput{
		Name:     "Community Fair",
		Location: "Town Hall",
		Timing: TimingInput{
			Date:          "2026-03-20",
			StartTime:     "09:00",
			DurationHours: 2,
		},
	}
}

func requireValidation(t *testing.T, err error) *ValidationError {
	t.Helper()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	return vErr
}

func TestEventServicePreviewEndTime(t *testing.T) {
	t.Parallel()

	svc := newTestEventService(nil)

	t.Run("empty start is not yet computable", func(t *testing.T) {
		t.Parallel()
		got, err := svc.PreviewEndTime("", 2, 0)
		if err != nil || !got.IsZero() {
			t.Fatalf("expected zero result, got %+v, %v", got, err)
		}
	})

	t.Run("wraps past midnight", func(t *testing.T) {
		t.Parallel()
		got, err := svc.PreviewEndTime("23:30", 1, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := timeofday.ResolvedEndTime{RawTime: "00:30", IsNextDay: true, DisplayText: "12:30 AM (Next Day)"}
		if got != want {
			t.Fatalf("PreviewEndTime = %+v, want %+v", got, want)
		}
	})

	t.Run("malformed start", func(t *testing.T) {
		t.Parallel()
		_, err := svc.PreviewEndTime("9am", 1, 0)
		vErr := requireValidation(t, err)
		if vErr.FieldErrors["start"] == "" {
			t.Fatalf("expected start field error, got %+v", vErr.FieldErrors)
		}
	})

	t.Run("negative duration", func(t *testing.T) {
		t.Parallel()
		_, err := svc.PreviewEndTime("09:00", 0, -15)
		vErr := requireValidation(t, err)
		if vErr.FieldErrors["duration"] != eventdate.MsgInvalidDuration || vErr.Kind != eventdate.KindRangeViolation {
			t.Fatalf("unexpected validation error: %+v", vErr)
		}
	})
}

func TestEventServiceValidateTiming(t *testing.T) {
	t.Parallel()

	svc := newTestEventService(nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     TimingInput
		wantField string
		wantMsg   string
		wantKind  eventdate.Kind
	}{
		{
			name:      "date in the past",
			input:     TimingInput{Date: "2026-03-09", StartTime: "09:00", DurationHours: 1},
			wantField: "event_date",
			wantMsg:   eventdate.MsgStartInPast,
			wantKind:  eventdate.KindRangeViolation,
		},
		{
			name:      "beyond eighteen months",
			input:     TimingInput{Date: "2027-09-11", StartTime: "09:00", DurationHours: 1},
			wantField: "event_date",
			wantMsg:   eventdate.MsgStartBeyondLimit,
			wantKind:  eventdate.KindRangeViolation,
		},
		{
			name:      "multi-day without end date",
			input:     TimingInput{Date: "2026-04-01", StartTime: "09:00", IsMultiDay: true, EndTime: "17:00"},
			wantField: "event_end_date",
			wantMsg:   eventdate.MsgEndDateMissing,
			wantKind:  eventdate.KindInputIncomplete,
		},
		{
			name:      "multi-day end on start date",
			input:     TimingInput{Date: "2026-04-01", StartTime: "09:00", IsMultiDay: true, EndDate: "2026-04-01", EndTime: "17:00"},
			wantField: "event_end_date",
			wantMsg:   eventdate.MsgEndNotAfterStart,
			wantKind:  eventdate.KindRangeViolation,
		},
		{
			name:      "multi-day longer than thirty days",
			input:     TimingInput{Date: "2026-04-01", StartTime: "09:00", IsMultiDay: true, EndDate: "2026-05-02", EndTime: "17:00"},
			wantField: "event_end_date",
			wantMsg:   eventdate.MsgSpanTooLong,
			wantKind:  eventdate.KindRangeViolation,
		},
		{
			name:      "multi-day without end time",
			input:     TimingInput{Date: "2026-04-01", StartTime: "09:00", IsMultiDay: true, EndDate: "2026-04-03"},
			wantField: "event_end_time",
			wantMsg:   eventdate.MsgEndTimeMissing,
			wantKind:  eventdate.KindInputIncomplete,
		},
		{
			name:      "single day with end date",
			input:     TimingInput{Date: "2026-04-01", StartTime: "09:00", EndDate: "2026-04-02", DurationHours: 1},
			wantField: "event_end_date",
			wantMsg:   eventdate.MsgEndDateOnSingle,
			wantKind:  eventdate.KindRangeViolation,
		},
		{
			name:      "zero duration",
			input:     TimingInput{Date: "2026-04-01", StartTime: "09:00"},
			wantField: "duration",
			wantMsg:   eventdate.MsgDurationMissing,
			wantKind:  eventdate.KindInputIncomplete,
		},
		{
			name:      "explicit end before start",
			input:     TimingInput{Date: "2026-04-01", StartTime: "09:00", EndTime: "08:30"},
			wantField: "event_end_time",
			wantMsg:   eventdate.MsgEndTimeNotAfter,
			wantKind:  eventdate.KindRangeViolation,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.ValidateTiming(ctx, tc.input)
			vErr := requireValidation(t, err)
			if got := vErr.FieldErrors[tc.wantField]; got != tc.wantMsg {
				t.Fatalf("field %s = %q, want %q (all: %+v)", tc.wantField, got, tc.wantMsg, vErr.FieldErrors)
			}
			if len(vErr.FieldErrors) != 1 {
				t.Fatalf("expected a single rule failure, got %+v", vErr.FieldErrors)
			}
			if vErr.Kind != tc.wantKind {
				t.Fatalf("kind = %q, want %q", vErr.Kind, tc.wantKind)
			}
		})
	}
}

func TestEventServiceValidateTimingResolves(t *testing.T) {
	t.Parallel()

	svc := newTestEventService(nil)
	ctx := context.Background()

	t.Run("duration rolls into next day", func(t *testing.T) {
		t.Parallel()
		timing, err := svc.ValidateTiming(ctx, TimingInput{Date: "2026-03-10", StartTime: "22:30", DurationHours: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if timing.Stored.DurationMinutes == nil || *timing.Stored.DurationMinutes != 120 {
			t.Fatalf("expected 120 stored minutes, got %+v", timing.Stored)
		}
		if timing.Stored.EventEndTime != nil {
			t.Fatalf("expected no stored end time in duration mode")
		}
		if timing.EndTime.DisplayText != "12:30 AM (Next Day)" {
			t.Fatalf("unexpected end display %q", timing.EndTime.DisplayText)
		}
		if timing.DurationLabel() != "2h" {
			t.Fatalf("unexpected duration label %q", timing.DurationLabel())
		}
	})

	t.Run("explicit end time", func(t *testing.T) {
		t.Parallel()
		timing, err := svc.ValidateTiming(ctx, TimingInput{Date: "2026-03-20", StartTime: "09:00", EndTime: "10:45"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if timing.Stored.DurationMinutes != nil {
			t.Fatalf("expected duration column cleared in explicit mode")
		}
		if timing.Stored.EventEndTime == nil || timing.Stored.EventEndTime.String() != "10:45" {
			t.Fatalf("unexpected stored end time %+v", timing.Stored.EventEndTime)
		}
		if timing.EndTime.RawTime != "10:45" || timing.EndTime.IsNextDay {
			t.Fatalf("unexpected resolved end %+v", timing.EndTime)
		}
	})

	t.Run("multi-day span of exactly thirty days", func(t *testing.T) {
		t.Parallel()
		timing, err := svc.ValidateTiming(ctx, TimingInput{Date: "2026-04-01", StartTime: "09:00", IsMultiDay: true, EndDate: "2026-05-01", EndTime: "17:00"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !timing.Stored.IsMultiDay || timing.Stored.EventEndDate == nil || timing.Stored.EventEndDate.String() != "2026-05-01" {
			t.Fatalf("unexpected stored timing %+v", timing.Stored)
		}
	})

	t.Run("today counts as bookable", func(t *testing.T) {
		t.Parallel()
		if _, err := svc.ValidateTiming(ctx, TimingInput{Date: "2026-03-10", StartTime: "08:00", DurationMinutes: 45}); err != nil {
			t.Fatalf("expected today to be accepted even after the start time passed, got %v", err)
		}
	})
}

func TestEventServiceTodayFollowsLocation(t *testing.T) {
	t.Parallel()

	// 16:45 UTC is already the next calendar day fourteen hours east.
	east := time.FixedZone("UTC+14", 14*60*60)
	svc := NewEventService(nil, nil, fixedNow, east)

	_, err := svc.ValidateTiming(context.Background(), TimingInput{Date: "2026-03-10", StartTime: "09:00", DurationHours: 1})
	vErr := requireValidation(t, err)
	if vErr.FieldErrors["event_date"] != eventdate.MsgStartInPast {
		t.Fatalf("expected past date in the eastern zone, got %+v", vErr.FieldErrors)
	}
}

func TestEventServiceCreateEvent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("persists resolved timing", func(t *testing.T) {
		t.Parallel()
		repo := newEventRepoStub()
		svc := newTestEventService(repo)

		input := validEventInput()
		input.Name = "  Community Fair  "
		input.Description = strPtr("   ")

		event, err := svc.CreateEvent(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if event.ID != "event-01" || event.Name != "Community Fair" || event.Description != nil {
			t.Fatalf("unexpected event %+v", event)
		}
		if !event.CreatedAt.Equal(referenceNow) || !event.UpdatedAt.Equal(referenceNow) {
			t.Fatalf("expected timestamps from the injected clock")
		}
		if len(repo.created) != 1 || repo.created[0].Timing.EndTime.RawTime != "11:00" {
			t.Fatalf("unexpected repository calls %+v", repo.created)
		}
	})

	t.Run("reports every parse failure together", func(t *testing.T) {
		t.Parallel()
		svc := newTestEventService(newEventRepoStub())
		_, err := svc.CreateEvent(ctx, EventInput{Timing: TimingInput{Date: "03/20/2026", StartTime: "9"}})
		vErr := requireValidation(t, err)
		for _, field := range []string{"name", "event_date", "event_time"} {
			if vErr.FieldErrors[field] == "" {
				t.Fatalf("expected %s error, got %+v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("missing date is incomplete input", func(t *testing.T) {
		t.Parallel()
		svc := newTestEventService(newEventRepoStub())
		input := validEventInput()
		input.Timing.Date = ""
		_, err := svc.CreateEvent(ctx, input)
		vErr := requireValidation(t, err)
		if vErr.Kind != eventdate.KindInputIncomplete || ErrorKind(err) != "input_incomplete" {
			t.Fatalf("expected incomplete input, got kind %q", vErr.Kind)
		}
	})

	t.Run("repository duplicate maps to already exists", func(t *testing.T) {
		t.Parallel()
		repo := newEventRepoStub(Event{ID: "event-01"})
		svc := newTestEventService(repo)
		if _, err := svc.CreateEvent(ctx, validEventInput()); !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})
}

func TestEventServiceUpdateEvent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newEventRepoStub()
	svc := newTestEventService(repo)
	created, err := svc.CreateEvent(ctx, validEventInput())
	if err != nil {
		t.Fatalf("seed event: %v", err)
	}

	input := validEventInput()
	input.Timing.DurationHours = 0
	input.Timing.EndTime = "12:15"
	updated, err := svc.UpdateEvent(ctx, created.ID, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Timing.Stored.DurationMinutes != nil {
		t.Fatalf("expected previous duration to be cleared, got %d", *updated.Timing.Stored.DurationMinutes)
	}
	if updated.Timing.Stored.EventEndTime == nil || updated.Timing.Stored.EventEndTime.String() != "12:15" {
		t.Fatalf("unexpected stored end %+v", updated.Timing.Stored)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("expected creation time to be preserved")
	}

	if _, err := svc.UpdateEvent(ctx, "missing", input); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventServiceListEventsSortsByStart(t *testing.T) {
	t.Parallel()

	mk := func(id, date, start string) Event {
		return Event{ID: id, Timing: Timing{Date: timeofday.MustParseDate(date), StartTime: timeofday.MustParse(start)}}
	}
	repo := newEventRepoStub(
		mk("c", "2026-04-02", "09:00"),
		mk("b", "2026-04-01", "13:00"),
		mk("a", "2026-04-01", "09:00"),
		mk("d", "2026-04-01", "09:00"),
	)
	svc := newTestEventService(repo)

	events, err := svc.ListEvents(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, e := range events {
		got = append(got, e.ID)
	}
	want := []string{"a", "d", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ListEvents order = %v, want %v", got, want)
		}
	}
}

func TestEventServiceEventExists(t *testing.T) {
	t.Parallel()

	svc := newTestEventService(newEventRepoStub(Event{ID: "event-01"}))
	ctx := context.Background()

	if ok, err := svc.EventExists(ctx, "event-01"); err != nil || !ok {
		t.Fatalf("expected event to exist, got %v, %v", ok, err)
	}
	if ok, err := svc.EventExists(ctx, "event-02"); err != nil || ok {
		t.Fatalf("expected event to be missing, got %v, %v", ok, err)
	}
}

func TestNewTiming(t *testing.T) {
	t.Parallel()

	date := timeofday.MustParseDate("2026-04-01")
	start := timeofday.MustParse("22:00")

	minutes := 150
	byDuration := NewTiming(date, start, eventdate.StoredTiming{DurationMinutes: &minutes})
	if byDuration.EndTime.RawTime != "00:30" || !byDuration.EndTime.IsNextDay {
		t.Fatalf("unexpected duration end %+v", byDuration.EndTime)
	}

	end := timeofday.MustParse("23:15")
	explicit := NewTiming(date, start, eventdate.StoredTiming{EventEndTime: &end})
	if explicit.EndTime.RawTime != "23:15" || explicit.EndTime.IsNextDay {
		t.Fatalf("unexpected explicit end %+v", explicit.EndTime)
	}

	endDate := timeofday.MustParseDate("2026-04-03")
	multi := NewTiming(date, start, eventdate.StoredTiming{EventEndDate: &endDate, EventEndTime: &end, IsMultiDay: true})
	if multi.EndTime.DisplayText != "11:15 PM" {
		t.Fatalf("unexpected multi-day end %+v", multi.EndTime)
	}

	if empty := NewTiming(date, start, eventdate.StoredTiming{}); !empty.EndTime.IsZero() {
		t.Fatalf("expected zero end time without stored end, got %+v", empty.EndTime)
	}
}
