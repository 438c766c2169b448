package application

import (
	"errors"
	"strings"

	"github.com/muralisunil/event-elegance-landing/internal/eventdate"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrAlreadyExists is returned when a resource with the same identity exists.
	ErrAlreadyExists = errors.New("application: already exists")
	// ErrRoomConflict is returned in strict booking mode when the room is taken.
	ErrRoomConflict = errors.New("application: room already booked")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
	// Kind is set when the error came from an event timing rule.
	Kind eventdate.Kind
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// merge copies entries from another validation error into the receiver.
func (v *ValidationError) merge(other *ValidationError) {
	if other == nil || len(other.FieldErrors) == 0 {
		return
	}
	for field, msg := range other.FieldErrors {
		v.add(field, msg)
	}
	if v.Kind == "" {
		v.Kind = other.Kind
	}
}

// fromViolation converts a timing rule failure into a single-field validation error.
func fromViolation(v *eventdate.Violation) *ValidationError {
	vErr := &ValidationError{Kind: v.Kind()}
	vErr.add(v.Field, v.Message)
	return vErr
}

// RoomConflictError lists the sessions that hold a room in strict booking mode.
type RoomConflictError struct {
	Warnings []ConflictWarning
}

// Error implements the error interface.
func (e *RoomConflictError) Error() string {
	if e == nil {
		return ""
	}
	titles := make([]string, 0, len(e.Warnings))
	for _, w := range e.Warnings {
		titles = append(titles, w.ConflictingTitle)
	}
	if len(titles) == 0 {
		return ErrRoomConflict.Error()
	}
	return ErrRoomConflict.Error() + ": " + strings.Join(titles, ", ")
}

// Unwrap lets errors.Is match ErrRoomConflict.
func (e *RoomConflictError) Unwrap() error { return ErrRoomConflict }
