package timeofday

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date layout used by date inputs.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a value is not an ISO calendar date.
var ErrInvalidDate = errors.New("timeofday: invalid calendar date")

// CalendarDate is a day on the calendar with no time or zone attached.
// It is stored as midnight UTC so day arithmetic is exact.
type CalendarDate struct {
	t time.Time
}

// Date builds a CalendarDate; out of range values normalize like time.Date.
func Date(year int, month time.Month, day int) CalendarDate {
	return CalendarDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar day in the instant's own location.
func DateOf(instant time.Time) CalendarDate {
	y, m, d := instant.Date()
	return Date(y, m, d)
}

// ParseDate reads a YYYY-MM-DD value.
func ParseDate(value string) (CalendarDate, error) {
	value = strings.TrimSpace(value)
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return CalendarDate{t: t}, nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(value string) CalendarDate {
	d, err := ParseDate(value)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether the date is unset.
func (d CalendarDate) IsZero() bool { return d.t.IsZero() }

// String renders the date as YYYY-MM-DD.
func (d CalendarDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// AddDays moves the date by n days.
func (d CalendarDate) AddDays(n int) CalendarDate {
	return CalendarDate{t: d.t.AddDate(0, 0, n)}
}

// AddMonths moves the date by n months. Overflowing days roll into the next
// month, so Aug 31 + 6 months is Mar 3 (or Mar 2 in leap years).
func (d CalendarDate) AddMonths(n int) CalendarDate {
	return CalendarDate{t: d.t.AddDate(0, n, 0)}
}

// DaysUntil returns the whole number of days from d to other.
func (d CalendarDate) DaysUntil(other CalendarDate) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

// Before reports whether d is an earlier day than other.
func (d CalendarDate) Before(other CalendarDate) bool { return d.t.Before(other.t) }

// After reports whether d is a later day than other.
func (d CalendarDate) After(other CalendarDate) bool { return d.t.After(other.t) }

// Equal reports whether both values name the same day.
func (d CalendarDate) Equal(other CalendarDate) bool { return d.t.Equal(other.t) }

// In returns midnight of the date in loc.
func (d CalendarDate) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, day := d.t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}

// At combines the date with a time of day in loc.
func (d CalendarDate) At(t TimeOfDay, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, day := d.t.Date()
	return time.Date(y, m, day, t.Hour(), t.Minute(), 0, 0, loc)
}

// MarshalText implements encoding.TextMarshaler.
func (d CalendarDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *CalendarDate) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
