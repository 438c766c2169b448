package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/muralisunil/event-elegance-landing/internal/eventdate"
	"github.com/muralisunil/event-elegance-landing/internal/persistence"
	"github.com/muralisunil/event-elegance-landing/internal/timeofday"
)

// EventRepository captures the persistence operations needed by the service.
type EventRepository interface {
	CreateEvent(ctx context.Context, event Event) (Event, error)
	UpdateEvent(ctx context.Context, event Event) (Event, error)
	GetEvent(ctx context.Context, id string) (Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
}

// EventService validates event timing and persists events.
type EventService struct {
	events      EventRepository
	idGenerator func() string
	now         func() time.Time
	location    *time.Location
	logger      *slog.Logger
}

// NewEventService constructs an event service. Calendar days, including
// "today", are taken in location; nil means UTC.
func NewEventService(events EventRepository, idGenerator func() string, now func() time.Time, location *time.Location) *EventService {
	return NewEventServiceWithLogger(events, idGenerator, now, location, nil)
}

// NewEventServiceWithLogger constructs an event service with a specified logger.
func NewEventServiceWithLogger(events EventRepository, idGenerator func() string, now func() time.Time, location *time.Location, logger *slog.Logger) *EventService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	return &EventService{
		events:      events,
		idGenerator: idGenerator,
		now:         now,
		location:    location,
		logger:      defaultLogger(logger),
	}
}

func (s *EventService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EventService", operation, attrs...)
}

// PreviewEndTime computes the end time shown next to the duration picker.
// An empty start yields the zero value.
func (s *EventService) PreviewEndTime(start string, hours, minutes int) (timeofday.ResolvedEndTime, error) {
	resolved, err := timeofday.CalculateEndTime(strings.TrimSpace(start), hours, minutes)
	if err == nil {
		return resolved, nil
	}
	vErr := &ValidationError{}
	switch {
	case errors.Is(err, timeofday.ErrNegativeDuration):
		vErr.add("duration", eventdate.MsgInvalidDuration)
		vErr.Kind = eventdate.KindRangeViolation
	default:
		vErr.add("start", "start time must be HH:MM")
	}
	return timeofday.ResolvedEndTime{}, vErr
}

// ValidateTiming resolves the timing fields of an event form without storing anything.
func (s *EventService) ValidateTiming(ctx context.Context, input TimingInput) (timing Timing, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}
	timing, err = s.resolveTiming(input)
	if err != nil {
		s.loggerWith(ctx, "ValidateTiming").DebugContext(ctx, "timing rejected", "error", err, "error_kind", ErrorKind(err))
	}
	return
}

// CreateEvent validates input and persists a new event.
func (s *EventService) CreateEvent(ctx context.Context, input EventInput) (event Event, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateEvent")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("event_id", event.ID).InfoContext(ctx, "event created")
	}()

	var timing Timing
	timing, err = s.validateEventInput(input)
	if err != nil {
		return
	}

	createdAt := s.now()
	event = Event{
		ID:          s.idGenerator(),
		Name:        strings.TrimSpace(input.Name),
		Description: normalizeOptionalString(input.Description),
		Location:    strings.TrimSpace(input.Location),
		Timing:      timing,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	if s.events == nil {
		return
	}

	var persisted Event
	persisted, err = s.events.CreateEvent(ctx, event)
	if err != nil {
		err = mapEventRepoError(err)
		return
	}
	event = persisted
	return
}

// UpdateEvent replaces an event's fields. Timing is revalidated against today,
// and columns belonging to the previous end mode are cleared.
func (s *EventService) UpdateEvent(ctx context.Context, id string, input EventInput) (event Event, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}
	if s.events == nil {
		err = fmt.Errorf("event repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateEvent", "event_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "event updated")
	}()

	var existing Event
	existing, err = s.events.GetEvent(ctx, id)
	if err != nil {
		err = mapEventRepoError(err)
		return
	}

	var timing Timing
	timing, err = s.validateEventInput(input)
	if err != nil {
		return
	}

	updated := existing
	updated.Name = strings.TrimSpace(input.Name)
	updated.Description = normalizeOptionalString(input.Description)
	updated.Location = strings.TrimSpace(input.Location)
	updated.Timing = timing
	updated.UpdatedAt = s.now()

	event, err = s.events.UpdateEvent(ctx, updated)
	if err != nil {
		err = mapEventRepoError(err)
	}
	return
}

// GetEvent returns a single event.
func (s *EventService) GetEvent(ctx context.Context, id string) (Event, error) {
	if s == nil {
		return Event{}, fmt.Errorf("EventService is nil")
	}
	if s.events == nil {
		return Event{}, ErrNotFound
	}
	event, err := s.events.GetEvent(ctx, id)
	if err != nil {
		return Event{}, mapEventRepoError(err)
	}
	return event, nil
}

// ListEvents returns all events, earliest first.
func (s *EventService) ListEvents(ctx context.Context) (events []Event, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}
	if s.events == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListEvents")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list events", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(events)).DebugContext(ctx, "events listed")
	}()

	var raw []Event
	raw, err = s.events.ListEvents(ctx)
	if err != nil {
		err = mapEventRepoError(err)
		return
	}

	events = make([]Event, len(raw))
	copy(events, raw)
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i].Timing, events[j].Timing
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime.Before(b.StartTime)
		}
		return events[i].ID < events[j].ID
	})
	return
}

// EventExists reports whether an event is stored.
func (s *EventService) EventExists(ctx context.Context, id string) (bool, error) {
	if s == nil || s.events == nil {
		return false, nil
	}
	_, err := s.events.GetEvent(ctx, id)
	if err == nil {
		return true, nil
	}
	if isNotFoundError(err) {
		return false, nil
	}
	return false, err
}

func (s *EventService) validateEventInput(input EventInput) (Timing, error) {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}

	timing, err := s.resolveTiming(input.Timing)
	if err != nil {
		var timingErr *ValidationError
		if !errors.As(err, &timingErr) {
			return Timing{}, err
		}
		vErr.merge(timingErr)
	}
	if vErr.HasErrors() {
		return Timing{}, vErr
	}
	return timing, nil
}

// resolveTiming parses the form fields and applies the event date rules.
// Parse failures are reported together; rule failures one at a time.
func (s *EventService) resolveTiming(input TimingInput) (Timing, error) {
	vErr := &ValidationError{}

	var span eventdate.TimeSpan
	span.MultiDay = input.IsMultiDay

	if value := strings.TrimSpace(input.Date); value == "" {
		vErr.add("event_date", "event date is required")
		vErr.Kind = eventdate.KindInputIncomplete
	} else if date, err := timeofday.ParseDate(value); err != nil {
		vErr.add("event_date", "event date must be YYYY-MM-DD")
	} else {
		span.Date = date
	}

	if value := strings.TrimSpace(input.StartTime); value == "" {
		vErr.add("event_time", "start time is required")
		vErr.Kind = eventdate.KindInputIncomplete
	} else if start, err := timeofday.Parse(value); err != nil {
		vErr.add("event_time", "start time must be HH:MM")
	} else {
		span.Start = start
	}

	if value := strings.TrimSpace(input.EndDate); value != "" {
		if endDate, err := timeofday.ParseDate(value); err != nil {
			vErr.add("event_end_date", "end date must be YYYY-MM-DD")
		} else {
			span.EndDate = &endDate
		}
	}

	if value := strings.TrimSpace(input.EndTime); value != "" {
		if end, err := timeofday.Parse(value); err != nil {
			vErr.add("event_end_time", "end time must be HH:MM")
		} else {
			span.Mode = eventdate.ExplicitEnd{Time: end}
		}
	} else if !input.IsMultiDay {
		span.Mode = eventdate.DurationMode{Duration: timeofday.Duration{
			Hours:   input.DurationHours,
			Minutes: input.DurationMinutes,
		}}
	}

	if vErr.HasErrors() {
		return Timing{}, vErr
	}

	resolution, err := span.Resolve(s.now().In(s.location))
	if err != nil {
		var violation *eventdate.Violation
		if errors.As(err, &violation) {
			return Timing{}, fromViolation(violation)
		}
		return Timing{}, err
	}

	return Timing{
		Date:      span.Date,
		StartTime: span.Start,
		Stored:    resolution.Stored,
		EndTime:   resolution.EndTime,
	}, nil
}

// NewTiming rebuilds a Timing from stored columns, recomputing the display end.
func NewTiming(date timeofday.CalendarDate, start timeofday.TimeOfDay, stored eventdate.StoredTiming) Timing {
	timing := Timing{Date: date, StartTime: start, Stored: stored}
	switch {
	case stored.IsMultiDay && stored.EventEndTime != nil:
		end := *stored.EventEndTime
		timing.EndTime = timeofday.ResolvedEndTime{RawTime: end.String(), DisplayText: end.Format12Hour()}
	case stored.EventEndTime != nil:
		gap := stored.EventEndTime.Minutes() - start.Minutes()
		if gap < 0 {
			gap += timeofday.MinutesPerDay
		}
		timing.EndTime = start.Add(timeofday.DurationFromMinutes(gap))
	case stored.DurationMinutes != nil && *stored.DurationMinutes >= 0:
		timing.EndTime = start.Add(timeofday.DurationFromMinutes(*stored.DurationMinutes))
	}
	return timing
}

func normalizeOptionalString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func mapEventRepoError(err error) error {
	if err == nil {
		return nil
	}
	if isNotFoundError(err) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		vErr := &ValidationError{Kind: eventdate.KindRangeViolation}
		vErr.add("duration", eventdate.MsgDurationMissing)
		return vErr
	}
	return err
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound)
}
