// Package timeofday implements wall-clock arithmetic for event planning:
// times of day, durations, calendar dates and the resolution of a start time
// plus duration into a displayable end time.
//
// Everything here is timezone free. Values are plain minutes since midnight
// or calendar days; daylight-saving adjustments never apply.
package timeofday

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of a wall-clock day.
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeOfDay is returned when a value is not a zero-padded HH:MM time.
	ErrInvalidTimeOfDay = errors.New("timeofday: invalid time of day")
	// ErrNegativeDuration is returned when a duration component is negative.
	ErrNegativeDuration = errors.New("timeofday: duration must not be negative")
)

// TimeOfDay is a wall-clock time held as minutes since midnight.
type TimeOfDay int

// New builds a TimeOfDay from an hour and minute.
func New(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrInvalidTimeOfDay, hour, minute)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// Parse reads a 24-hour HH:MM value as produced by a time input control.
func Parse(value string) (TimeOfDay, error) {
	value = strings.TrimSpace(value)
	hourPart, minutePart, ok := strings.Cut(value, ":")
	if !ok || len(hourPart) != 2 || len(minutePart) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, value)
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, value)
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, value)
	}
	return New(hour, minute)
}

// MustParse is Parse for literals known to be valid.
func MustParse(value string) TimeOfDay {
	t, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return t
}

// FromMinutes wraps an arbitrary minute count onto the clock face.
func FromMinutes(minutes int) TimeOfDay {
	m := minutes % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return TimeOfDay(m)
}

// Minutes returns the minutes elapsed since midnight.
func (t TimeOfDay) Minutes() int { return int(t) }

// Hour returns the hour component.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component.
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// String renders the time as zero-padded 24-hour HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Format12Hour renders the time as h:MM AM/PM.
func (t TimeOfDay) Format12Hour() string {
	hour := t.Hour()
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, t.Minute(), period)
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }

// After reports whether t is later in the day than other.
func (t TimeOfDay) After(other TimeOfDay) bool { return t > other }

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// FormatTo12Hour converts an HH:MM string for display. Empty input yields empty
// output and anything that is not HH:MM is returned as given.
func FormatTo12Hour(value string) string {
	if value == "" {
		return ""
	}
	t, err := Parse(value)
	if err != nil {
		return value
	}
	return t.Format12Hour()
}
