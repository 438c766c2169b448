// Package eventdate validates the calendar shape of an event and resolves its
// start, duration or explicit end into the values stored for it.
package eventdate

import (
	"time"

	"github.com/muralisunil/event-elegance-landing/internal/timeofday"
)

const (
	// MaxLeadMonths bounds how far ahead an event may be booked.
	MaxLeadMonths = 18
	// MaxSpanDays bounds the length of a multi-day event.
	MaxSpanDays = 30
)

// Rule identifies a single date rule.
type Rule string

const (
	RuleStartInPast      Rule = "start_in_past"
	RuleStartBeyondLimit Rule = "start_beyond_limit"
	RuleEndDateMissing   Rule = "end_date_missing"
	RuleEndNotAfterStart Rule = "end_not_after_start"
	RuleEndBeyondLimit   Rule = "end_beyond_limit"
	RuleSpanTooLong      Rule = "span_too_long"
	RuleEndDateOnSingle  Rule = "end_date_on_single_day"
	RuleDurationMissing  Rule = "duration_missing"
	RuleEndTimeMissing   Rule = "end_time_missing"
	RuleEndTimeNotAfter  Rule = "end_time_not_after_start"
	RuleInvalidDuration  Rule = "invalid_duration"
)

// Messages shown to users, one per rule.
const (
	MsgStartInPast      = "Events cannot be scheduled in the past"
	MsgStartBeyondLimit = "Events cannot be planned beyond 18 months from today"
	MsgEndDateMissing   = "Multi-day events must have an end date"
	MsgEndNotAfterStart = "End date must be after start date"
	MsgEndBeyondLimit   = "End date cannot be beyond 18 months from today"
	MsgSpanTooLong      = "Events cannot exceed 30 days in duration"
	MsgEndDateOnSingle  = "Single-day events cannot have an end date"
	MsgDurationMissing  = "Duration must be greater than zero"
	MsgEndTimeMissing   = "Multi-day events must have an end time"
	MsgEndTimeNotAfter  = "End time must be after start time"
	MsgInvalidDuration  = "Duration must not be negative"
)

// Kind separates missing input from values that break a business limit.
type Kind string

const (
	KindInputIncomplete Kind = "input_incomplete"
	KindRangeViolation  Kind = "range_violation"
)

// Violation reports the first rule an event's dates or times break.
type Violation struct {
	Rule    Rule
	Field   string
	Message string
}

// Error implements the error interface with the user-facing message.
func (v *Violation) Error() string {
	if v == nil {
		return ""
	}
	return v.Message
}

// Kind classifies the violation.
func (v *Violation) Kind() Kind {
	if v == nil {
		return ""
	}
	switch v.Rule {
	case RuleEndDateMissing, RuleDurationMissing, RuleEndTimeMissing:
		return KindInputIncomplete
	default:
		return KindRangeViolation
	}
}

func violation(rule Rule, field, message string) *Violation {
	return &Violation{Rule: rule, Field: field, Message: message}
}

// Validate checks an event's dates against booking limits measured from now.
// Rules run in a fixed order and only the first failure is reported. Every
// comparison is between calendar days; time of day on now is ignored beyond
// deciding which day today is in now's location.
func Validate(now time.Time, start timeofday.CalendarDate, end *timeofday.CalendarDate, multiDay bool) error {
	today := timeofday.DateOf(now)
	limit := today.AddMonths(MaxLeadMonths)

	if start.Before(today) {
		return violation(RuleStartInPast, "event_date", MsgStartInPast)
	}
	if start.After(limit) {
		return violation(RuleStartBeyondLimit, "event_date", MsgStartBeyondLimit)
	}
	if !multiDay {
		return nil
	}

	if end == nil || end.IsZero() {
		return violation(RuleEndDateMissing, "event_end_date", MsgEndDateMissing)
	}
	if !end.After(start) {
		return violation(RuleEndNotAfterStart, "event_end_date", MsgEndNotAfterStart)
	}
	if end.After(limit) {
		return violation(RuleEndBeyondLimit, "event_end_date", MsgEndBeyondLimit)
	}
	if start.DaysUntil(*end) > MaxSpanDays {
		return violation(RuleSpanTooLong, "event_end_date", MsgSpanTooLong)
	}
	return nil
}
