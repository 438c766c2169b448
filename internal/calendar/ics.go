// Package calendar exports an event agenda as an iCalendar document.
package calendar

import (
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/muralisunil/event-elegance-landing/internal/application"
)

// ProductID identifies documents produced by this package.
const ProductID = "-//eventplanner//agenda//EN"

const uidDomain = "@eventplanner"

// Agenda is an event together with the sessions to publish for it.
type Agenda struct {
	Event    application.Event
	Sessions []application.Session
	// RoomNames resolves session room IDs for the LOCATION property.
	RoomNames map[string]string
}

// Render serializes the agenda. Wall-clock times are interpreted in loc and
// stamp is written as DTSTAMP on every component.
func Render(agenda Agenda, loc *time.Location, stamp time.Time) string {
	if loc == nil {
		loc = time.UTC
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetName(agenda.Event.Name)

	event := agenda.Event
	start := event.Timing.Date.At(event.Timing.StartTime, loc)

	ve := cal.AddEvent(event.ID + uidDomain)
	ve.SetDtStampTime(stamp)
	ve.SetSummary(event.Name)
	ve.SetStartAt(start)
	if end, ok := eventEnd(event.Timing, start, loc); ok {
		ve.SetEndAt(end)
	}
	if event.Location != "" {
		ve.SetLocation(event.Location)
	}
	if event.Description != nil {
		ve.SetDescription(*event.Description)
	}
	if !event.CreatedAt.IsZero() {
		ve.SetCreatedTime(event.CreatedAt)
	}
	if !event.UpdatedAt.IsZero() {
		ve.SetModifiedAt(event.UpdatedAt)
	}

	for _, session := range agenda.Sessions {
		sessionStart := event.Timing.Date.At(session.Start, loc)
		sessionEnd := event.Timing.Date.At(session.End, loc)
		if session.RollsOver() {
			sessionEnd = sessionEnd.AddDate(0, 0, 1)
		}

		se := cal.AddEvent(session.ID + uidDomain)
		se.SetDtStampTime(stamp)
		se.SetSummary(session.Title)
		se.SetStartAt(sessionStart)
		se.SetEndAt(sessionEnd)
		if location := sessionLocation(session, agenda.RoomNames); location != "" {
			se.SetLocation(location)
		}
		if description := sessionDescription(session); description != "" {
			se.SetDescription(description)
		}
	}

	return cal.Serialize()
}

// eventEnd returns the instant an event finishes. Events stored without an
// end have none.
func eventEnd(timing application.Timing, start time.Time, loc *time.Location) (time.Time, bool) {
	stored := timing.Stored
	switch {
	case stored.IsMultiDay && stored.EventEndDate != nil && stored.EventEndTime != nil:
		return stored.EventEndDate.At(*stored.EventEndTime, loc), true
	case stored.DurationMinutes != nil && *stored.DurationMinutes > 0:
		return start.Add(time.Duration(*stored.DurationMinutes) * time.Minute), true
	case stored.EventEndTime != nil:
		end := timing.Date.At(*stored.EventEndTime, loc)
		if !end.After(start) {
			end = end.AddDate(0, 0, 1)
		}
		return end, true
	}
	return time.Time{}, false
}

func sessionLocation(session application.Session, rooms map[string]string) string {
	if session.Location != nil && *session.Location != "" {
		return *session.Location
	}
	if session.RoomID != nil {
		if name, ok := rooms[*session.RoomID]; ok {
			return name
		}
	}
	return ""
}

func sessionDescription(session application.Session) string {
	var lines []string
	if session.Speaker != nil && *session.Speaker != "" {
		lines = append(lines, "Speaker: "+*session.Speaker)
	}
	if session.SessionType != "" && session.SessionType != application.DefaultSessionType {
		lines = append(lines, "Type: "+application.SessionTypeLabel(session.SessionType))
	}
	if session.Description != nil && *session.Description != "" {
		lines = append(lines, *session.Description)
	}
	return strings.Join(lines, "\n")
}
