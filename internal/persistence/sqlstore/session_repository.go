package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/muralisunil/event-elegance-landing/internal/persistence"
)

const sessionColumns = `id, event_id, session_title, start_time, end_time, building_id, room_id,
	description, location, session_type, speaker, metadata, order_index, created_at, updated_at`

// CreateSession inserts a session without checking its room.
func (s *Store) CreateSession(ctx context.Context, session persistence.Session) error {
	return s.insertSession(ctx, s.db, session)
}

// UpdateSession replaces an existing session without checking its room.
func (s *Store) UpdateSession(ctx context.Context, session persistence.Session) error {
	return s.updateSession(ctx, s.db, session)
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(ctx context.Context, id string) (persistence.Session, error) {
	if id == "" {
		return persistence.Session{}, persistence.ErrNotFound
	}
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+sessionColumns+` FROM event_schedules WHERE id = ?`), id)
	session, err := scanSession(row)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}
	return session, nil
}

// ListSessions returns the sessions matching the filter, earliest first.
func (s *Store) ListSessions(ctx context.Context, filter persistence.SessionFilter) ([]persistence.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM event_schedules WHERE event_id = ?`
	args := []any{filter.EventID}
	if filter.RoomID != nil {
		query += ` AND room_id = ?`
		args = append(args, *filter.RoomID)
	}
	query += ` ORDER BY start_time, order_index, id`
	return s.querySessions(ctx, s.db, s.rebind(query), args...)
}

// DeleteSession removes a session.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}
	result, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM event_schedules WHERE id = ?`), id)
	if err != nil {
		return mapError(err)
	}
	return requireRow(result)
}

// ReserveSession writes the session only when its room is free over
// [start_time, end_time). Another session whose range merely touches it does not
// block the reservation, and the session's own stored row is ignored so an edit
// can move within its slot. On PostgreSQL the room row is locked for the
// duration of the check; on SQLite reservations are serialised in process.
func (s *Store) ReserveSession(ctx context.Context, session persistence.Session) error {
	if session.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if s.dialect == DialectSQLite {
		s.reserveMu.Lock()
		defer s.reserveMu.Unlock()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if session.RoomID != nil {
			if err := s.lockRoom(ctx, tx, *session.RoomID); err != nil {
				return err
			}
			taken, err := s.querySessions(ctx, tx, s.rebind(`SELECT `+sessionColumns+` FROM event_schedules
				WHERE room_id = ? AND id <> ? AND start_time < ? AND ? < end_time
				ORDER BY start_time, order_index, id`),
				*session.RoomID, session.ID, session.EndTime, session.StartTime,
			)
			if err != nil {
				return err
			}
			if len(taken) > 0 {
				return &persistence.RoomConflictError{RoomID: *session.RoomID, Sessions: taken}
			}
		}

		var exists int
		err := tx.QueryRowContext(ctx, s.rebind(`SELECT COUNT(1) FROM event_schedules WHERE id = ?`), session.ID).Scan(&exists)
		if err != nil {
			return mapError(err)
		}
		if exists > 0 {
			return s.updateSession(ctx, tx, session)
		}
		return s.insertSession(ctx, tx, session)
	})
}

func (s *Store) lockRoom(ctx context.Context, tx *sql.Tx, roomID string) error {
	query := `SELECT id FROM event_rooms WHERE id = ?`
	if s.dialect == DialectPostgres {
		query += ` FOR UPDATE`
	}
	var id string
	if err := tx.QueryRowContext(ctx, s.rebind(query), roomID).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: room %s", persistence.ErrForeignKeyViolation, roomID)
		}
		return mapError(err)
	}
	return nil
}

func (s *Store) insertSession(ctx context.Context, db execer, session persistence.Session) error {
	if session.ID == "" || session.EventID == "" {
		return persistence.ErrConstraintViolation
	}
	session.CreatedAt, session.UpdatedAt = stamp(session.CreatedAt, session.UpdatedAt)
	metadata, err := encodeMetadata(session.Metadata)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		s.rebind(`INSERT INTO event_schedules (`+sessionColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		session.ID,
		session.EventID,
		session.Title,
		session.StartTime,
		session.EndTime,
		nullString(session.BuildingID),
		nullString(session.RoomID),
		nullString(session.Description),
		nullString(session.Location),
		nullString(session.SessionType),
		nullString(session.Speaker),
		metadata,
		session.OrderIndex,
		formatTimestamp(session.CreatedAt),
		formatTimestamp(session.UpdatedAt),
	)
	return mapError(err)
}

func (s *Store) updateSession(ctx context.Context, db execer, session persistence.Session) error {
	if session.ID == "" {
		return persistence.ErrNotFound
	}
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = time.Now().UTC()
	}
	metadata, err := encodeMetadata(session.Metadata)
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx,
		s.rebind(`UPDATE event_schedules
			SET session_title = ?, start_time = ?, end_time = ?, building_id = ?, room_id = ?,
				description = ?, location = ?, session_type = ?, speaker = ?, metadata = ?,
				order_index = ?, updated_at = ?
			WHERE id = ?`),
		session.Title,
		session.StartTime,
		session.EndTime,
		nullString(session.BuildingID),
		nullString(session.RoomID),
		nullString(session.Description),
		nullString(session.Location),
		nullString(session.SessionType),
		nullString(session.Speaker),
		metadata,
		session.OrderIndex,
		formatTimestamp(session.UpdatedAt),
		session.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireRow(result)
}

func (s *Store) querySessions(ctx context.Context, db execer, query string, args ...any) ([]persistence.Session, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var sessions []persistence.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return sessions, nil
}

func scanSession(row rowScanner) (persistence.Session, error) {
	var (
		session               persistence.Session
		buildingID, roomID    sql.NullString
		description, location sql.NullString
		sessionType, speaker  sql.NullString
		metadata              string
		createdAt, updatedAt  string
	)
	err := row.Scan(
		&session.ID,
		&session.EventID,
		&session.Title,
		&session.StartTime,
		&session.EndTime,
		&buildingID,
		&roomID,
		&description,
		&location,
		&sessionType,
		&speaker,
		&metadata,
		&session.OrderIndex,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Session{}, err
	}
	session.BuildingID = stringPtr(buildingID)
	session.RoomID = stringPtr(roomID)
	session.Description = stringPtr(description)
	session.Location = stringPtr(location)
	session.SessionType = stringPtr(sessionType)
	session.Speaker = stringPtr(speaker)
	if session.Metadata, err = decodeMetadata(metadata); err != nil {
		return persistence.Session{}, err
	}
	if session.CreatedAt, session.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return persistence.Session{}, err
	}
	return session, nil
}

func encodeMetadata(metadata map[string]string) (string, error) {
	if len(metadata) == 0 {
		return "{}", nil
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return "", fmt.Errorf("sqlstore: encode metadata: %w", err)
	}
	return string(raw), nil
}

func decodeMetadata(raw string) (map[string]string, error) {
	if raw == "" || raw == "{}" {
		return nil, nil
	}
	var metadata map[string]string
	if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
		return nil, fmt.Errorf("sqlstore: decode metadata: %w", err)
	}
	return metadata, nil
}
