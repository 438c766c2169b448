package application

import (
	"time"

	"github.com/muralisunil/event-elegance-landing/internal/eventdate"
	"github.com/muralisunil/event-elegance-landing/internal/timeofday"
)

// TimingInput captures the date and time fields of an event form. Dates are
// YYYY-MM-DD and times HH:MM. A non-empty EndTime selects an explicit end;
// otherwise the duration picker values are used.
type TimingInput struct {
	Date            string
	StartTime       string
	IsMultiDay      bool
	EndDate         string
	DurationHours   int
	DurationMinutes int
	EndTime         string
}

// Timing is a validated event timing.
type Timing struct {
	Date      timeofday.CalendarDate
	StartTime timeofday.TimeOfDay
	Stored    eventdate.StoredTiming
	EndTime   timeofday.ResolvedEndTime
}

// DurationLabel renders the stored duration the way event cards show it.
func (t Timing) DurationLabel() string {
	if t.Stored.DurationMinutes == nil {
		return timeofday.FormatDuration(0)
	}
	return timeofday.FormatDuration(*t.Stored.DurationMinutes)
}

// EventInput captures caller provided event fields.
type EventInput struct {
	Name        string
	Description *string
	Location    string
	Timing      TimingInput
}

// Event represents a planned outreach event.
type Event struct {
	ID          string
	Name        string
	Description *string
	Location    string
	Timing      Timing
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BuildingInput captures caller provided building fields.
type BuildingInput struct {
	EventID    string
	Name       string
	Address    *string
	Notes      *string
	OrderIndex int
}

// Building groups rooms of an event venue.
type Building struct {
	ID         string
	EventID    string
	Name       string
	Address    *string
	Notes      *string
	OrderIndex int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RoomInput captures caller provided room fields.
type RoomInput struct {
	EventID    string
	BuildingID *string
	Name       string
	Capacity   *int
	Facilities *string
	Notes      *string
	OrderIndex int
}

// Room is a bookable space of an event venue.
type Room struct {
	ID         string
	EventID    string
	BuildingID *string
	Name       string
	Capacity   *int
	Facilities *string
	Notes      *string
	OrderIndex int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SessionInput captures caller provided session fields.
type SessionInput struct {
	EventID     string
	Title       string
	StartTime   string
	EndTime     string
	BuildingID  *string
	RoomID      *string
	Description *string
	Location    *string
	Speaker     *string
	SessionType string
	Metadata    map[string]string
	OrderIndex  int
}

// Session is one block of an event agenda.
type Session struct {
	ID          string
	EventID     string
	Title       string
	Start       timeofday.TimeOfDay
	End         timeofday.TimeOfDay
	BuildingID  *string
	RoomID      *string
	Description *string
	Location    *string
	Speaker     *string
	SessionType string
	Metadata    map[string]string
	OrderIndex  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RollsOver reports whether the session ends at or before it starts, which
// only makes sense if it runs past midnight.
func (s Session) RollsOver() bool {
	return !s.End.After(s.Start)
}

// ConflictWarning describes a scheduling conflict that should be surfaced to callers.
type ConflictWarning struct {
	SessionID            string
	ConflictingSessionID string
	ConflictingTitle     string
	Type                 string
	Message              string
	RoomID               *string
}

// SessionListing is an event agenda together with every conflict in it.
type SessionListing struct {
	Sessions []Session
	Warnings []ConflictWarning
}

// GridRow is one time slot of the parallel-track agenda grid.
type GridRow struct {
	Start    timeofday.TimeOfDay
	End      timeofday.TimeOfDay
	Sessions []Session
}

// SessionFilter narrows session listings.
type SessionFilter struct {
	EventID string
	RoomID  *string
}
