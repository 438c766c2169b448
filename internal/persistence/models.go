package persistence

import "time"

// Event is an event row. Dates are ISO YYYY-MM-DD and times are HH:MM, exactly
// as the date and time inputs produce them.
type Event struct {
	ID              string
	Name            string
	Description     *string
	Location        string
	EventDate       string
	EventTime       string
	DurationMinutes *int
	EventEndDate    *string
	EventEndTime    *string
	IsMultiDay      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
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

// Session is a scheduled block of an event's agenda.
type Session struct {
	ID          string
	EventID     string
	Title       string
	StartTime   string
	EndTime     string
	BuildingID  *string
	RoomID      *string
	Description *string
	Location    *string
	SessionType *string
	Speaker     *string
	Metadata    map[string]string
	OrderIndex  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
