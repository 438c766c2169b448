package persistence

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a record with the same key already exists.
	ErrDuplicate = errors.New("persistence: duplicate record")
	// ErrForeignKeyViolation is returned when a referenced record is missing.
	ErrForeignKeyViolation = errors.New("persistence: foreign key violation")
	// ErrConstraintViolation is returned when a row breaks a table constraint.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrRoomConflict is returned by ReserveSession when the room is taken.
	ErrRoomConflict = errors.New("persistence: room already booked")
)

// RoomConflictError carries the sessions that blocked a reservation.
type RoomConflictError struct {
	RoomID   string
	Sessions []Session
}

// Error implements the error interface.
func (e *RoomConflictError) Error() string {
	if e == nil {
		return ""
	}
	ids := make([]string, 0, len(e.Sessions))
	for _, s := range e.Sessions {
		ids = append(ids, s.ID)
	}
	return "persistence: room " + e.RoomID + " already booked by " + strings.Join(ids, ", ")
}

// Unwrap lets errors.Is match ErrRoomConflict.
func (e *RoomConflictError) Unwrap() error { return ErrRoomConflict }
