package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/muralisunil/event-elegance-landing/internal/application"
	"github.com/muralisunil/event-elegance-landing/internal/eventdate"
	"github.com/muralisunil/event-elegance-landing/internal/persistence"
	"github.com/muralisunil/event-elegance-landing/internal/timeofday"
)

var (
	eventCounter   uint64
	roomCounter    uint64
	sessionCounter uint64
)

var referenceTime = time.Date(2026, time.March, 10, 16, 45, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ReferenceDate is the calendar day of ReferenceTime in UTC.
func ReferenceDate() timeofday.CalendarDate {
	return timeofday.DateOf(referenceTime)
}

// ----------------------------- Event fixtures -----------------------------

// EventFixture represents a deterministic single-day event scheduled by duration.
type EventFixture struct {
	ID              string
	Name            string
	Location        string
	Date            timeofday.CalendarDate
	Start           timeofday.TimeOfDay
	DurationMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EventOption configures the generated event fixture.
type EventOption func(*EventFixture)

// NewEventFixture returns an event a week or more after ReferenceTime.
func NewEventFixture(opts ...EventOption) EventFixture {
	idx := atomic.AddUint64(&eventCounter, 1)
	fixture := EventFixture{
		ID:              fmt.Sprintf("event-%03d", idx),
		Name:            fmt.Sprintf("Outreach %03d", idx),
		Location:        "Community Center",
		Date:            ReferenceDate().AddDays(7 + int(idx%7)),
		Start:           timeofday.MustParse("09:00"),
		DurationMinutes: 120,
		CreatedAt:       referenceTime,
		UpdatedAt:       referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEventID overrides the generated event ID.
func WithEventID(id string) EventOption {
	return func(f *EventFixture) {
		f.ID = id
	}
}

// WithEventDate overrides the event day.
func WithEventDate(date timeofday.CalendarDate) EventOption {
	return func(f *EventFixture) {
		f.Date = date
	}
}

// WithEventStart overrides the HH:MM start time.
func WithEventStart(start string) EventOption {
	return func(f *EventFixture) {
		f.Start = timeofday.MustParse(start)
	}
}

// WithEventDuration overrides the duration in minutes.
func WithEventDuration(minutes int) EventOption {
	return func(f *EventFixture) {
		f.DurationMinutes = minutes
	}
}

// Application returns the fixture as an application.Event value.
func (f EventFixture) Application() application.Event {
	minutes := f.DurationMinutes
	return application.Event{
		ID:        f.ID,
		Name:      f.Name,
		Location:  f.Location,
		Timing:    application.NewTiming(f.Date, f.Start, eventdate.StoredTiming{DurationMinutes: &minutes}),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.Event value.
func (f EventFixture) Persistence() persistence.Event {
	minutes := f.DurationMinutes
	return persistence.Event{
		ID:              f.ID,
		Name:            f.Name,
		Location:        f.Location,
		EventDate:       f.Date.String(),
		EventTime:       f.Start.String(),
		DurationMinutes: &minutes,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// Input returns the fixture as an application.EventInput.
func (f EventFixture) Input() application.EventInput {
	return application.EventInput{
		Name:     f.Name,
		Location: f.Location,
		Timing: application.TimingInput{
			Date:            f.Date.String(),
			StartTime:       f.Start.String(),
			DurationHours:   f.DurationMinutes / 60,
			DurationMinutes: f.DurationMinutes % 60,
		},
	}
}

// ------------------------------ Room fixtures ------------------------------

// RoomFixture represents a deterministic room record.
type RoomFixture struct {
	ID        string
	EventID   string
	Name      string
	Capacity  *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoomOption configures the generated room fixture.
type RoomOption func(*RoomFixture)

// NewRoomFixture returns a deterministic room fixture with optional overrides.
func NewRoomFixture(opts ...RoomOption) RoomFixture {
	idx := atomic.AddUint64(&roomCounter, 1)
	capacity := int(20 + idx%4*10)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := RoomFixture{
		ID:        fmt.Sprintf("room-%03d", idx),
		EventID:   "event-001",
		Name:      fmt.Sprintf("Room %03d", idx),
		Capacity:  &capacity,
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithRoomID overrides the generated room ID.
func WithRoomID(id string) RoomOption {
	return func(f *RoomFixture) {
		f.ID = id
	}
}

// WithRoomEvent attaches the room to an event.
func WithRoomEvent(eventID string) RoomOption {
	return func(f *RoomFixture) {
		f.EventID = eventID
	}
}

// Application returns the fixture as an application.Room value.
func (f RoomFixture) Application() application.Room {
	return application.Room{
		ID:        f.ID,
		EventID:   f.EventID,
		Name:      f.Name,
		Capacity:  copyIntPtr(f.Capacity),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.Room value.
func (f RoomFixture) Persistence() persistence.Room {
	return persistence.Room{
		ID:        f.ID,
		EventID:   f.EventID,
		Name:      f.Name,
		Capacity:  copyIntPtr(f.Capacity),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// ---------------------------- Session fixtures ----------------------------

// SessionFixture represents a deterministic agenda session.
type SessionFixture struct {
	ID          string
	EventID     string
	Title       string
	Start       string
	End         string
	RoomID      *string
	SessionType string
	Metadata    map[string]string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SessionOption configures the generated session fixture.
type SessionOption func(*SessionFixture)

// NewSessionFixture returns a one hour default-type session without a room.
func NewSessionFixture(opts ...SessionOption) SessionFixture {
	idx := atomic.AddUint64(&sessionCounter, 1)
	fixture := SessionFixture{
		ID:          fmt.Sprintf("session-%03d", idx),
		EventID:     "event-001",
		Title:       fmt.Sprintf("Session %03d", idx),
		Start:       "09:00",
		End:         "10:00",
		SessionType: application.DefaultSessionType,
		CreatedAt:   referenceTime,
		UpdatedAt:   referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) SessionOption {
	return func(f *SessionFixture) {
		f.ID = id
	}
}

// WithSessionTitle overrides the generated title.
func WithSessionTitle(title string) SessionOption {
	return func(f *SessionFixture) {
		f.Title = title
	}
}

// WithSessionEvent attaches the session to an event.
func WithSessionEvent(eventID string) SessionOption {
	return func(f *SessionFixture) {
		f.EventID = eventID
	}
}

// WithSessionTimes overrides the HH:MM start and end.
func WithSessionTimes(start, end string) SessionOption {
	return func(f *SessionFixture) {
		f.Start = start
		f.End = end
	}
}

// WithSessionRoom books the session into a room.
func WithSessionRoom(roomID string) SessionOption {
	return func(f *SessionFixture) {
		value := roomID
		f.RoomID = &value
	}
}

// WithSessionType sets the session type and its template metadata.
func WithSessionType(sessionType string, metadata map[string]string) SessionOption {
	return func(f *SessionFixture) {
		f.SessionType = sessionType
		f.Metadata = metadata
	}
}

// Application returns the fixture as an application.Session value.
func (f SessionFixture) Application() application.Session {
	return application.Session{
		ID:          f.ID,
		EventID:     f.EventID,
		Title:       f.Title,
		Start:       timeofday.MustParse(f.Start),
		End:         timeofday.MustParse(f.End),
		RoomID:      copyStringPtr(f.RoomID),
		SessionType: f.SessionType,
		Metadata:    copyMetadata(f.Metadata),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.Session value.
func (f SessionFixture) Persistence() persistence.Session {
	sessionType := f.SessionType
	return persistence.Session{
		ID:          f.ID,
		EventID:     f.EventID,
		Title:       f.Title,
		StartTime:   f.Start,
		EndTime:     f.End,
		RoomID:      copyStringPtr(f.RoomID),
		SessionType: &sessionType,
		Metadata:    copyMetadata(f.Metadata),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// Input returns the fixture as an application.SessionInput.
func (f SessionFixture) Input() application.SessionInput {
	return application.SessionInput{
		EventID:     f.EventID,
		Title:       f.Title,
		StartTime:   f.Start,
		EndTime:     f.End,
		RoomID:      copyStringPtr(f.RoomID),
		SessionType: f.SessionType,
		Metadata:    copyMetadata(f.Metadata),
	}
}

func copyStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

func copyIntPtr(value *int) *int {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

func copyMetadata(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
