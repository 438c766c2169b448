package scheduler

import "github.com/muralisunil/event-elegance-landing/internal/timeofday"

// Session represents a scheduled block within an event, optionally bound to a room.
// Start and End lie on the same day.
type Session struct {
	ID         string
	Title      string
	Start      timeofday.TimeOfDay
	End        timeofday.TimeOfDay
	BuildingID *string
	RoomID     *string
}

// ConflictKind describes the type of conflict detected between sessions.
type ConflictKind string

const (
	// ConflictKindRoom indicates a room is double-booked.
	ConflictKindRoom ConflictKind = "room"
)

// RoomConflictMessage is the advisory shown for a room double-booking.
const RoomConflictMessage = "This room is already booked during this time"

// Conflict bundles every session that collides with a candidate for one reason.
type Conflict struct {
	Kind     ConflictKind
	Message  string
	Sessions []Session
}

// SessionTitles lists the colliding session titles for inline warnings.
func (c Conflict) SessionTitles() []string {
	titles := make([]string, 0, len(c.Sessions))
	for _, s := range c.Sessions {
		titles = append(titles, s.Title)
	}
	return titles
}

// TimesOverlap reports whether [s1,e1) and [s2,e2) intersect. Ranges that only
// touch do not overlap. Both ranges are assumed to fall on the same day.
func TimesOverlap(s1, e1, s2, e2 timeofday.TimeOfDay) bool {
	return s1.Minutes() < e2.Minutes() && s2.Minutes() < e1.Minutes()
}

// DetectConflicts checks the candidate against existing sessions.
//
// Entries sharing the candidate's ID are skipped so an edit never collides with
// its stored copy. Only room double-bookings are reported, bundled into a
// single Conflict; a candidate without a room never conflicts.
func DetectConflicts(candidate Session, existing []Session) []Conflict {
	if candidate.RoomID == nil {
		return nil
	}
	room := *candidate.RoomID

	var colliding []Session
	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}
		if other.RoomID == nil || *other.RoomID != room {
			continue
		}
		if TimesOverlap(other.Start, other.End, candidate.Start, candidate.End) {
			colliding = append(colliding, other)
		}
	}
	if len(colliding) == 0 {
		return nil
	}

	return []Conflict{{
		Kind:     ConflictKindRoom,
		Message:  RoomConflictMessage,
		Sessions: colliding,
	}}
}
