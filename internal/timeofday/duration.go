package timeofday

import "fmt"

// MaxDurationHours is the largest hour option offered by the duration picker.
const MaxDurationHours = 11

// HourOptions and MinuteOptions are the values offered by the duration picker.
var (
	HourOptions   = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	MinuteOptions = []int{0, 15, 30, 45}
)

// Duration is a same-day event length picked as hours plus minutes.
type Duration struct {
	Hours   int
	Minutes int
}

// DurationFromMinutes splits a stored minute total back into picker fields.
func DurationFromMinutes(total int) Duration {
	if total < 0 {
		total = 0
	}
	return Duration{Hours: total / 60, Minutes: total % 60}
}

// TotalMinutes returns hours*60 + minutes.
func (d Duration) TotalMinutes() int {
	return d.Hours*60 + d.Minutes
}

// Validate rejects negative components. Values outside the picker options are
// accepted; arithmetic does not depend on them.
func (d Duration) Validate() error {
	if d.Hours < 0 || d.Minutes < 0 {
		return fmt.Errorf("%w: %dh %dm", ErrNegativeDuration, d.Hours, d.Minutes)
	}
	return nil
}

// IsPickerValue reports whether the duration is one the picker can produce.
func (d Duration) IsPickerValue() bool {
	if d.Hours < 0 || d.Hours > MaxDurationHours {
		return false
	}
	for _, m := range MinuteOptions {
		if d.Minutes == m {
			return true
		}
	}
	return false
}

// String renders the duration the way FormatDuration does.
func (d Duration) String() string {
	return FormatDuration(d.TotalMinutes())
}

// FormatDuration renders a stored minute total as "2h 30m", "2h" or "45m".
// Zero or negative totals read "Not specified".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "Not specified"
	}
	hours := minutes / 60
	mins := minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
}
