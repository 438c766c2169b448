package sqlstore

import (
	"context"
	"database/sql"

	"github.com/muralisunil/event-elegance-landing/internal/persistence"
)

const buildingColumns = `id, event_id, name, address, notes, order_index, created_at, updated_at`

const roomColumns = `id, event_id, building_id, name, capacity, facilities, notes, order_index, created_at, updated_at`

// CreateBuilding inserts a building for an event.
func (s *Store) CreateBuilding(ctx context.Context, building persistence.Building) error {
	if building.ID == "" || building.EventID == "" {
		return persistence.ErrConstraintViolation
	}
	building.CreatedAt, building.UpdatedAt = stamp(building.CreatedAt, building.UpdatedAt)

	_, err := s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO event_buildings (`+buildingColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		building.ID,
		building.EventID,
		building.Name,
		nullString(building.Address),
		nullString(building.Notes),
		building.OrderIndex,
		formatTimestamp(building.CreatedAt),
		formatTimestamp(building.UpdatedAt),
	)
	return mapError(err)
}

// GetBuilding retrieves a building by ID.
func (s *Store) GetBuilding(ctx context.Context, id string) (persistence.Building, error) {
	if id == "" {
		return persistence.Building{}, persistence.ErrNotFound
	}
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+buildingColumns+` FROM event_buildings WHERE id = ?`), id)
	building, err := scanBuilding(row)
	if err != nil {
		return persistence.Building{}, mapError(err)
	}
	return building, nil
}

// ListBuildings returns the buildings of an event in display order.
func (s *Store) ListBuildings(ctx context.Context, eventID string) ([]persistence.Building, error) {
	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT `+buildingColumns+` FROM event_buildings WHERE event_id = ? ORDER BY order_index, name, id`),
		eventID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var buildings []persistence.Building
	for rows.Next() {
		building, err := scanBuilding(rows)
		if err != nil {
			return nil, err
		}
		buildings = append(buildings, building)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return buildings, nil
}

// CreateRoom inserts a room for an event.
func (s *Store) CreateRoom(ctx context.Context, room persistence.Room) error {
	if room.ID == "" || room.EventID == "" {
		return persistence.ErrConstraintViolation
	}
	if room.Capacity != nil && *room.Capacity <= 0 {
		return persistence.ErrConstraintViolation
	}
	room.CreatedAt, room.UpdatedAt = stamp(room.CreatedAt, room.UpdatedAt)

	_, err := s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO event_rooms (`+roomColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		room.ID,
		room.EventID,
		nullString(room.BuildingID),
		room.Name,
		nullInt(room.Capacity),
		nullString(room.Facilities),
		nullString(room.Notes),
		room.OrderIndex,
		formatTimestamp(room.CreatedAt),
		formatTimestamp(room.UpdatedAt),
	)
	return mapError(err)
}

// GetRoom retrieves a room by ID.
func (s *Store) GetRoom(ctx context.Context, id string) (persistence.Room, error) {
	if id == "" {
		return persistence.Room{}, persistence.ErrNotFound
	}
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+roomColumns+` FROM event_rooms WHERE id = ?`), id)
	room, err := scanRoom(row)
	if err != nil {
		return persistence.Room{}, mapError(err)
	}
	return room, nil
}

// ListRooms returns the rooms of an event in display order.
func (s *Store) ListRooms(ctx context.Context, eventID string) ([]persistence.Room, error) {
	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT `+roomColumns+` FROM event_rooms WHERE event_id = ? ORDER BY order_index, name, id`),
		eventID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var rooms []persistence.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return rooms, nil
}

// DeleteRoom removes a room. Sessions booked into it keep their times and lose
// the room reference.
func (s *Store) DeleteRoom(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.rebind(`UPDATE event_schedules SET room_id = NULL WHERE room_id = ?`), id); err != nil {
			return mapError(err)
		}
		result, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM event_rooms WHERE id = ?`), id)
		if err != nil {
			return mapError(err)
		}
		return requireRow(result)
	})
}

func scanBuilding(row rowScanner) (persistence.Building, error) {
	var (
		building             persistence.Building
		address, notes       sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(
		&building.ID,
		&building.EventID,
		&building.Name,
		&address,
		&notes,
		&building.OrderIndex,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Building{}, err
	}
	building.Address = stringPtr(address)
	building.Notes = stringPtr(notes)
	if building.CreatedAt, building.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return persistence.Building{}, err
	}
	return building, nil
}

func scanRoom(row rowScanner) (persistence.Room, error) {
	var (
		room                 persistence.Room
		buildingID           sql.NullString
		capacity             sql.NullInt64
		facilities, notes    sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(
		&room.ID,
		&room.EventID,
		&buildingID,
		&room.Name,
		&capacity,
		&facilities,
		&notes,
		&room.OrderIndex,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Room{}, err
	}
	room.BuildingID = stringPtr(buildingID)
	room.Capacity = intPtr(capacity)
	room.Facilities = stringPtr(facilities)
	room.Notes = stringPtr(notes)
	if room.CreatedAt, room.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return persistence.Room{}, err
	}
	return room, nil
}
