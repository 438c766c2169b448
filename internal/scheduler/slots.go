package scheduler

import (
	"sort"

	"github.com/muralisunil/event-elegance-landing/internal/timeofday"
)

// SlotKey names a time range as "HH:MM-HH:MM".
func SlotKey(start, end timeofday.TimeOfDay) string {
	return start.String() + "-" + end.String()
}

// GroupByTimeSlot buckets sessions that share an identical time range, which is
// how parallel tracks line up in a grid. Bucket order follows input order.
func GroupByTimeSlot(sessions []Session) map[string][]Session {
	slots := make(map[string][]Session)
	for _, s := range sessions {
		key := SlotKey(s.Start, s.End)
		slots[key] = append(slots[key], s)
	}
	return slots
}

// TimeSlots returns the distinct start and end times of all sessions, earliest first.
func TimeSlots(sessions []Session) []timeofday.TimeOfDay {
	seen := make(map[timeofday.TimeOfDay]struct{}, len(sessions)*2)
	out := make([]timeofday.TimeOfDay, 0, len(sessions)*2)
	for _, s := range sessions {
		for _, t := range []timeofday.TimeOfDay{s.Start, s.End} {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SlotRow is one line of a parallel-track grid.
type SlotRow struct {
	Start    timeofday.TimeOfDay
	End      timeofday.TimeOfDay
	Sessions []Session
}

// Grid orders the GroupByTimeSlot buckets by start then end time.
func Grid(sessions []Session) []SlotRow {
	groups := GroupByTimeSlot(sessions)
	rows := make([]SlotRow, 0, len(groups))
	for _, bucket := range groups {
		rows = append(rows, SlotRow{Start: bucket[0].Start, End: bucket[0].End, Sessions: bucket})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Start == rows[j].Start {
			return rows[i].End < rows[j].End
		}
		return rows[i].Start < rows[j].Start
	})
	return rows
}
