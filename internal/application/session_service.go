package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/muralisunil/event-elegance-landing/internal/persistence"
	"github.com/muralisunil/event-elegance-landing/internal/scheduler"
	"github.com/muralisunil/event-elegance-landing/internal/timeofday"
)

// SessionRepository captures the persistence interactions needed by the service.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	UpdateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, id string) (Session, error)
	DeleteSession(ctx context.Context, id string) error
	ListSessions(ctx context.Context, filter SessionFilter) ([]Session, error)
	// ReserveSession creates or updates the session only when its room is free.
	ReserveSession(ctx context.Context, session Session) (Session, error)
}

// EventCatalog exposes event lookup operations.
type EventCatalog interface {
	EventExists(ctx context.Context, id string) (bool, error)
}

// RoomCatalog exposes room lookup operations.
type RoomCatalog interface {
	GetRoom(ctx context.Context, id string) (Room, error)
}

// SessionOptions tunes conflict handling.
type SessionOptions struct {
	// StrictRoomBooking refuses double-bookings instead of warning about them.
	StrictRoomBooking bool
	// WarningCacheTTL bounds how long agenda conflicts are reused.
	WarningCacheTTL time.Duration
	Logger          *slog.Logger
}

// SessionService orchestrates validation, conflict detection and persistence
// for agenda sessions.
type SessionService struct {
	sessions    SessionRepository
	events      EventCatalog
	rooms       RoomCatalog
	idGenerator func() string
	now         func() time.Time
	strict      bool
	cache       *warningCache
	logger      *slog.Logger
}

// NewSessionService wires dependencies for session operations.
func NewSessionService(sessions SessionRepository, events EventCatalog, rooms RoomCatalog, idGenerator func() string, now func() time.Time, opts SessionOptions) *SessionService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &SessionService{
		sessions:    sessions,
		events:      events,
		rooms:       rooms,
		idGenerator: idGenerator,
		now:         now,
		strict:      opts.StrictRoomBooking,
		cache:       newWarningCache(opts.WarningCacheTTL, 0, now),
		logger:      defaultLogger(opts.Logger),
	}
}

func (s *SessionService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SessionService", operation, attrs...)
}

// InvalidateWarnings drops cached agenda conflicts. Venue changes call it
// because deleting a room changes which sessions collide.
func (s *SessionService) InvalidateWarnings() {
	if s != nil {
		s.cache.Invalidate()
	}
}

// CreateSession validates the request, checks the room, and stores the session.
// Conflicts are returned as warnings unless strict booking is on.
func (s *SessionService) CreateSession(ctx context.Context, input SessionInput) (session Session, warnings []ConflictWarning, err error) {
	if s == nil {
		err = fmt.Errorf("SessionService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateSession", "event_id", input.EventID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create session", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("session_id", session.ID, "conflict_count", len(warnings)).InfoContext(ctx, "session created")
	}()

	var start, end timeofday.TimeOfDay
	start, end, err = s.validateSessionInput(ctx, input, true)
	if err != nil {
		return
	}

	createdAt := s.now()
	session = buildSession(Session{ID: s.idGenerator(), EventID: input.EventID, CreatedAt: createdAt}, input, start, end)
	session.UpdatedAt = createdAt
	if session.RollsOver() {
		logger.WarnContext(ctx, "session ends at or before its start", "start", start.String(), "end", end.String())
	}

	if s.sessions == nil {
		return
	}

	session, warnings, err = s.store(ctx, session, s.sessions.CreateSession)
	return
}

// UpdateSession revalidates and stores an edited session. The stored copy of
// the session never counts as a conflict.
func (s *SessionService) UpdateSession(ctx context.Context, id string, input SessionInput) (session Session, warnings []ConflictWarning, err error) {
	if s == nil {
		err = fmt.Errorf("SessionService is nil")
		return
	}
	if s.sessions == nil {
		err = fmt.Errorf("session repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateSession", "session_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update session", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("conflict_count", len(warnings)).InfoContext(ctx, "session updated")
	}()

	var existing Session
	existing, err = s.sessions.GetSession(ctx, id)
	if err != nil {
		err = mapSessionRepoError(err)
		return
	}
	if input.EventID != "" && input.EventID != existing.EventID {
		vErr := &ValidationError{}
		vErr.add("event_id", "session cannot move to another event")
		err = vErr
		return
	}
	input.EventID = existing.EventID

	var start, end timeofday.TimeOfDay
	start, end, err = s.validateSessionInput(ctx, input, false)
	if err != nil {
		return
	}

	session = buildSession(existing, input, start, end)
	session.UpdatedAt = s.now()
	if session.RollsOver() {
		logger.WarnContext(ctx, "session ends at or before its start", "start", start.String(), "end", end.String())
	}

	session, warnings, err = s.store(ctx, session, s.sessions.UpdateSession)
	return
}

// DeleteSession removes a session.
func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("SessionService is nil")
	}
	if s.sessions == nil {
		return fmt.Errorf("session repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteSession", "session_id", id)
	if err := s.sessions.DeleteSession(ctx, id); err != nil {
		err = mapSessionRepoError(err)
		logger.ErrorContext(ctx, "failed to delete session", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	s.cache.Invalidate()
	logger.InfoContext(ctx, "session deleted")
	return nil
}

// GetSession returns a single session.
func (s *SessionService) GetSession(ctx context.Context, id string) (Session, error) {
	if s == nil {
		return Session{}, fmt.Errorf("SessionService is nil")
	}
	if s.sessions == nil {
		return Session{}, ErrNotFound
	}
	session, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		return Session{}, mapSessionRepoError(err)
	}
	return session, nil
}

// ListSessions returns an agenda and every room conflict within it. Each
// colliding pair is reported once, attributed to the later session.
func (s *SessionService) ListSessions(ctx context.Context, filter SessionFilter) (listing SessionListing, err error) {
	if s == nil {
		err = fmt.Errorf("SessionService is nil")
		return
	}
	if s.sessions == nil {
		return
	}

	logger := s.loggerWith(ctx, "ListSessions", "event_id", filter.EventID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list sessions", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(listing.Sessions), "conflict_count", len(listing.Warnings)).DebugContext(ctx, "sessions listed")
	}()

	var sessions []Session
	sessions, err = s.sessions.ListSessions(ctx, filter)
	if err != nil {
		if isNotFoundError(err) {
			err = nil
			return
		}
		err = mapSessionRepoError(err)
		return
	}
	listing.Sessions = sessions

	key := buildWarningCacheKey(filter)
	if cached, ok := s.cache.Get(key); ok {
		listing.Warnings = cached
		return
	}
	listing.Warnings = detectListConflicts(sessions)
	s.cache.Store(key, listing.Warnings)
	return
}

// TimeSlotGrid arranges an event's sessions into rows of identical time ranges.
func (s *SessionService) TimeSlotGrid(ctx context.Context, eventID string) ([]GridRow, error) {
	listing, err := s.ListSessions(ctx, SessionFilter{EventID: eventID})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Session, len(listing.Sessions))
	converted := make([]scheduler.Session, 0, len(listing.Sessions))
	for _, session := range listing.Sessions {
		byID[session.ID] = session
		converted = append(converted, toSchedulerSession(session))
	}

	rows := scheduler.Grid(converted)
	out := make([]GridRow, 0, len(rows))
	for _, row := range rows {
		grid := GridRow{Start: row.Start, End: row.End, Sessions: make([]Session, 0, len(row.Sessions))}
		for _, sess := range row.Sessions {
			grid.Sessions = append(grid.Sessions, byID[sess.ID])
		}
		out = append(out, grid)
	}
	return out, nil
}

type sessionWriter func(ctx context.Context, session Session) (Session, error)

func (s *SessionService) store(ctx context.Context, session Session, write sessionWriter) (Session, []ConflictWarning, error) {
	if s.strict && session.RoomID != nil {
		persisted, err := s.sessions.ReserveSession(ctx, session)
		if err != nil {
			err = mapSessionRepoError(err)
			var conflict *RoomConflictError
			if errors.As(err, &conflict) {
				for i := range conflict.Warnings {
					conflict.Warnings[i].SessionID = session.ID
				}
			}
			return Session{}, nil, err
		}
		s.cache.Invalidate()
		return persisted, nil, nil
	}

	warnings, err := s.detectConflicts(ctx, session)
	if err != nil {
		return Session{}, nil, err
	}

	persisted, err := write(ctx, session)
	if err != nil {
		return Session{}, nil, mapSessionRepoError(err)
	}
	s.cache.Invalidate()
	return persisted, warnings, nil
}

func (s *SessionService) detectConflicts(ctx context.Context, candidate Session) ([]ConflictWarning, error) {
	if candidate.RoomID == nil {
		return nil, nil
	}
	sessions, err := s.sessions.ListSessions(ctx, SessionFilter{EventID: candidate.EventID, RoomID: candidate.RoomID})
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}

	existing := make([]scheduler.Session, 0, len(sessions))
	for _, sess := range sessions {
		existing = append(existing, toSchedulerSession(sess))
	}
	conflicts := scheduler.DetectConflicts(toSchedulerSession(candidate), existing)
	return toConflictWarnings(candidate, conflicts), nil
}

func (s *SessionService) validateSessionInput(ctx context.Context, input SessionInput, checkEvent bool) (timeofday.TimeOfDay, timeofday.TimeOfDay, error) {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.EventID) == "" {
		vErr.add("event_id", "event is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("session_title", "title is required")
	}

	start, err := parseSessionTime(input.StartTime)
	if err != nil {
		vErr.add("start_time", err.Error())
	}
	end, err := parseSessionTime(input.EndTime)
	if err != nil {
		vErr.add("end_time", err.Error())
	}

	if missing := MissingTemplateFields(input.SessionType, input.Metadata); len(missing) > 0 {
		vErr.add("metadata", "Please fill in: "+strings.Join(missing, ", "))
	}

	if vErr.HasErrors() {
		return 0, 0, vErr
	}

	if checkEvent && s.events != nil {
		exists, err := s.events.EventExists(ctx, input.EventID)
		if err != nil {
			return 0, 0, err
		}
		if !exists {
			vErr.add("event_id", "event does not exist")
			return 0, 0, vErr
		}
	}

	if err := s.ensureRoomBelongsToEvent(ctx, input.RoomID, input.EventID); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func (s *SessionService) ensureRoomBelongsToEvent(ctx context.Context, roomID *string, eventID string) error {
	if roomID == nil || s.rooms == nil {
		return nil
	}
	room, err := s.rooms.GetRoom(ctx, *roomID)
	vErr := &ValidationError{}
	switch {
	case err == nil && room.EventID == eventID:
		return nil
	case err == nil:
		vErr.add("room_id", "room belongs to another event")
	case isNotFoundError(err):
		vErr.add("room_id", "room does not exist")
	default:
		return err
	}
	return vErr
}

func parseSessionTime(value string) (timeofday.TimeOfDay, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, errors.New("time is required")
	}
	t, err := timeofday.Parse(value)
	if err != nil {
		return 0, errors.New("time must be HH:MM")
	}
	return t, nil
}

func buildSession(base Session, input SessionInput, start, end timeofday.TimeOfDay) Session {
	session := base
	session.Title = strings.TrimSpace(input.Title)
	session.Start = start
	session.End = end
	session.BuildingID = normalizeOptionalString(input.BuildingID)
	session.RoomID = normalizeOptionalString(input.RoomID)
	session.Description = normalizeOptionalString(input.Description)
	session.Location = normalizeOptionalString(input.Location)
	session.Speaker = normalizeOptionalString(input.Speaker)
	session.SessionType = strings.TrimSpace(input.SessionType)
	if session.SessionType == "" {
		session.SessionType = DefaultSessionType
	}
	session.Metadata = cloneMetadata(input.Metadata)
	session.OrderIndex = input.OrderIndex
	return session
}

func cloneMetadata(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func toSchedulerSession(session Session) scheduler.Session {
	return scheduler.Session{
		ID:         session.ID,
		Title:      session.Title,
		Start:      session.Start,
		End:        session.End,
		BuildingID: session.BuildingID,
		RoomID:     session.RoomID,
	}
}

func toConflictWarnings(candidate Session, conflicts []scheduler.Conflict) []ConflictWarning {
	if len(conflicts) == 0 {
		return nil
	}

	var warnings []ConflictWarning
	for _, conflict := range conflicts {
		for _, other := range conflict.Sessions {
			warnings = append(warnings, ConflictWarning{
				SessionID:            candidate.ID,
				ConflictingSessionID: other.ID,
				ConflictingTitle:     other.Title,
				Type:                 string(conflict.Kind),
				Message:              conflict.Message,
				RoomID:               copyString(candidate.RoomID),
			})
		}
	}
	return warnings
}

func detectListConflicts(sessions []Session) []ConflictWarning {
	if len(sessions) <= 1 {
		return nil
	}

	converted := make([]scheduler.Session, len(sessions))
	for i, session := range sessions {
		converted[i] = toSchedulerSession(session)
	}

	var warnings []ConflictWarning
	for _, pair := range scheduler.DetectAll(converted) {
		warnings = append(warnings, ConflictWarning{
			SessionID:            pair.Other.ID,
			ConflictingSessionID: pair.Session.ID,
			ConflictingTitle:     pair.Session.Title,
			Type:                 string(pair.Kind),
			Message:              scheduler.RoomConflictMessage,
			RoomID:               copyString(pair.Other.RoomID),
		})
	}
	return warnings
}

func copyString(value *string) *string {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

func mapSessionRepoError(err error) error {
	if err == nil {
		return nil
	}
	var conflict *persistence.RoomConflictError
	if errors.As(err, &conflict) {
		out := &RoomConflictError{}
		for _, taken := range conflict.Sessions {
			out.Warnings = append(out.Warnings, ConflictWarning{
				ConflictingSessionID: taken.ID,
				ConflictingTitle:     taken.Title,
				Type:                 string(scheduler.ConflictKindRoom),
				Message:              scheduler.RoomConflictMessage,
				RoomID:               copyString(taken.RoomID),
			})
		}
		return out
	}
	if errors.Is(err, persistence.ErrRoomConflict) || errors.Is(err, ErrRoomConflict) {
		return &RoomConflictError{}
	}
	if isNotFoundError(err) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	if errors.Is(err, persistence.ErrForeignKeyViolation) {
		vErr := &ValidationError{}
		vErr.add("room_id", "related records are missing")
		return vErr
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		vErr := &ValidationError{}
		vErr.add("session", "session violates a storage constraint")
		return vErr
	}
	return err
}
