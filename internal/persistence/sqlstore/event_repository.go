package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/muralisunil/event-elegance-landing/internal/persistence"
)

const eventColumns = `id, name, description, location, event_date, event_time,
	duration_minutes, event_end_date, event_end_time, is_multi_day, created_at, updated_at`

// CreateEvent inserts a new event.
func (s *Store) CreateEvent(ctx context.Context, event persistence.Event) error {
	if event.ID == "" {
		return persistence.ErrConstraintViolation
	}
	event.CreatedAt, event.UpdatedAt = stamp(event.CreatedAt, event.UpdatedAt)

	query := s.rebind(`INSERT INTO events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.Name,
		nullString(event.Description),
		event.Location,
		event.EventDate,
		event.EventTime,
		nullInt(event.DurationMinutes),
		nullString(event.EventEndDate),
		nullString(event.EventEndTime),
		event.IsMultiDay,
		formatTimestamp(event.CreatedAt),
		formatTimestamp(event.UpdatedAt),
	)
	return mapError(err)
}

// UpdateEvent replaces the mutable columns of an existing event. All timing
// columns are written together so stale values from a previous mode are cleared.
func (s *Store) UpdateEvent(ctx context.Context, event persistence.Event) error {
	if event.ID == "" {
		return persistence.ErrNotFound
	}
	if event.UpdatedAt.IsZero() {
		event.UpdatedAt = time.Now().UTC()
	}

	query := s.rebind(`UPDATE events
		SET name = ?, description = ?, location = ?, event_date = ?, event_time = ?,
			duration_minutes = ?, event_end_date = ?, event_end_time = ?, is_multi_day = ?,
			updated_at = ?
		WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query,
		event.Name,
		nullString(event.Description),
		event.Location,
		event.EventDate,
		event.EventTime,
		nullInt(event.DurationMinutes),
		nullString(event.EventEndDate),
		nullString(event.EventEndTime),
		event.IsMultiDay,
		formatTimestamp(event.UpdatedAt),
		event.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireRow(result)
}

// GetEvent retrieves an event by ID.
func (s *Store) GetEvent(ctx context.Context, id string) (persistence.Event, error) {
	if id == "" {
		return persistence.Event{}, persistence.ErrNotFound
	}
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+eventColumns+` FROM events WHERE id = ?`), id)
	event, err := scanEvent(row)
	if err != nil {
		return persistence.Event{}, mapError(err)
	}
	return event, nil
}

// ListEvents returns all events ordered by start.
func (s *Store) ListEvents(ctx context.Context) ([]persistence.Event, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY event_date, event_time, id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var events []persistence.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return events, nil
}

func scanEvent(row rowScanner) (persistence.Event, error) {
	var (
		event                persistence.Event
		description          sql.NullString
		duration             sql.NullInt64
		endDate, endTime     sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(
		&event.ID,
		&event.Name,
		&description,
		&event.Location,
		&event.EventDate,
		&event.EventTime,
		&duration,
		&endDate,
		&endTime,
		&event.IsMultiDay,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Event{}, err
	}
	event.Description = stringPtr(description)
	event.DurationMinutes = intPtr(duration)
	event.EventEndDate = stringPtr(endDate)
	event.EventEndTime = stringPtr(endTime)
	if event.CreatedAt, event.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return persistence.Event{}, err
	}
	return event, nil
}

type rowsAffected interface {
	RowsAffected() (int64, error)
}

func requireRow(result rowsAffected) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlstore: rows affected: %w", err)
	}
	if n == 0 {
		return persistence.ErrNotFound
	}
	return nil
}
