package timeofday

// NextDaySuffix is appended to display text when an end time rolls past midnight.
const NextDaySuffix = " (Next Day)"

// ResolvedEndTime is the outcome of adding a duration to a start time.
// The zero value means the end time could not be computed yet.
type ResolvedEndTime struct {
	RawTime     string
	IsNextDay   bool
	DisplayText string
}

// IsZero reports whether nothing was resolved.
func (r ResolvedEndTime) IsZero() bool {
	return r == ResolvedEndTime{}
}

// Add resolves the end time reached after d, wrapping past midnight.
func (t TimeOfDay) Add(d Duration) ResolvedEndTime {
	total := t.Minutes() + d.TotalMinutes()
	end := FromMinutes(total)
	resolved := ResolvedEndTime{
		RawTime:     end.String(),
		IsNextDay:   total >= MinutesPerDay,
		DisplayText: end.Format12Hour(),
	}
	if resolved.IsNextDay {
		resolved.DisplayText += NextDaySuffix
	}
	return resolved
}

// CalculateEndTime adds hours and minutes to an HH:MM start time.
//
// An empty start returns the zero ResolvedEndTime and no error so form
// callers can treat it as "not yet computable".
func CalculateEndTime(start string, hours, minutes int) (ResolvedEndTime, error) {
	if start == "" {
		return ResolvedEndTime{}, nil
	}
	d := Duration{Hours: hours, Minutes: minutes}
	if err := d.Validate(); err != nil {
		return ResolvedEndTime{}, err
	}
	t, err := Parse(start)
	if err != nil {
		return ResolvedEndTime{}, err
	}
	return t.Add(d), nil
}
