package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/muralisunil/event-elegance-landing/internal/eventdate"
	"github.com/muralisunil/event-elegance-landing/internal/logging"
)

func TestDefaultLogger(t *testing.T) {
	t.Parallel()

	custom := slog.New(slog.NewTextHandler(io.Discard, nil))
	if got := defaultLogger(custom); got != custom {
		t.Fatalf("expected custom logger to be returned")
	}

	if got := defaultLogger(nil); got != slog.Default() {
		t.Fatalf("expected default logger when none provided")
	}
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "not found", err: fmt.Errorf("load: %w", ErrNotFound), want: "not_found"},
		{name: "already exists", err: ErrAlreadyExists, want: "already_exists"},
		{name: "room conflict", err: &RoomConflictError{}, want: "room_conflict"},
		{name: "plain validation", err: &ValidationError{FieldErrors: map[string]string{"name": "name is required"}}, want: "validation"},
		{name: "incomplete timing", err: &ValidationError{Kind: eventdate.KindInputIncomplete}, want: "input_incomplete"},
		{name: "range violation", err: &ValidationError{Kind: eventdate.KindRangeViolation}, want: "range_violation"},
		{name: "other", err: errors.New("boom"), want: "unexpected"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ErrorKind(tc.err); got != tc.want {
				t.Fatalf("ErrorKind = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestServiceLoggerPrefersContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctxLogger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := logging.ContextWithLogger(context.Background(), ctxLogger)

	serviceLogger(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)), "EventService", "CreateEvent", "event_id", "e-1").Info("done")

	out := buf.String()
	for _, want := range []string{"service=EventService", "operation=CreateEvent", "event_id=e-1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log output %q", want, out)
		}
	}
}
