package eventdate

import (
	"time"

	"github.com/muralisunil/event-elegance-landing/internal/timeofday"
)

// EndMode selects how an event's end is expressed. It is either a
// DurationMode or an ExplicitEnd; no other implementations exist.
type EndMode interface {
	endMode()
}

// DurationMode ends the event a fixed length after its start.
type DurationMode struct {
	Duration timeofday.Duration
}

// ExplicitEnd ends the event at a wall-clock time.
type ExplicitEnd struct {
	Time timeofday.TimeOfDay
}

func (DurationMode) endMode() {}
func (ExplicitEnd) endMode()  {}

// TimeSpan is the raw timing of an event as entered on a form.
type TimeSpan struct {
	Date     timeofday.CalendarDate
	Start    timeofday.TimeOfDay
	Mode     EndMode
	MultiDay bool
	EndDate  *timeofday.CalendarDate
}

// StoredTiming is what the data store keeps for an event's timing. Exactly
// one of DurationMinutes and EventEndTime is set.
type StoredTiming struct {
	DurationMinutes *int
	EventEndDate    *timeofday.CalendarDate
	EventEndTime    *timeofday.TimeOfDay
	IsMultiDay      bool
}

// Resolution is a validated span.
type Resolution struct {
	Stored  StoredTiming
	EndTime timeofday.ResolvedEndTime
}

// Resolve validates the span against now and computes its stored timing.
func (s TimeSpan) Resolve(now time.Time) (Resolution, error) {
	if !s.MultiDay && s.EndDate != nil {
		return Resolution{}, violation(RuleEndDateOnSingle, "event_end_date", MsgEndDateOnSingle)
	}
	if err := Validate(now, s.Date, s.EndDate, s.MultiDay); err != nil {
		return Resolution{}, err
	}

	if s.MultiDay {
		explicit, ok := s.Mode.(ExplicitEnd)
		if !ok {
			return Resolution{}, violation(RuleEndTimeMissing, "event_end_time", MsgEndTimeMissing)
		}
		endDate := *s.EndDate
		endTime := explicit.Time
		return Resolution{
			Stored: StoredTiming{
				EventEndDate: &endDate,
				EventEndTime: &endTime,
				IsMultiDay:   true,
			},
		}, nil
	}

	switch mode := s.Mode.(type) {
	case DurationMode:
		if err := mode.Duration.Validate(); err != nil {
			return Resolution{}, violation(RuleInvalidDuration, "duration", MsgInvalidDuration)
		}
		total := mode.Duration.TotalMinutes()
		if total == 0 {
			return Resolution{}, violation(RuleDurationMissing, "duration", MsgDurationMissing)
		}
		return Resolution{
			Stored:  StoredTiming{DurationMinutes: &total},
			EndTime: s.Start.Add(mode.Duration),
		}, nil
	case ExplicitEnd:
		if !mode.Time.After(s.Start) {
			return Resolution{}, violation(RuleEndTimeNotAfter, "event_end_time", MsgEndTimeNotAfter)
		}
		endTime := mode.Time
		return Resolution{
			Stored:  StoredTiming{EventEndTime: &endTime},
			EndTime: s.Start.Add(timeofday.DurationFromMinutes(endTime.Minutes() - s.Start.Minutes())),
		}, nil
	default:
		return Resolution{}, violation(RuleDurationMissing, "duration", MsgDurationMissing)
	}
}
