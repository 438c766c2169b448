package sqlstore

import (
	"database/sql"
	"fmt"
	"time"
)

const timestampLayout = time.RFC3339Nano

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamps(created, updated string) (time.Time, time.Time, error) {
	c, err := time.Parse(timestampLayout, created)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("sqlstore: parse created_at: %w", err)
	}
	u, err := time.Parse(timestampLayout, updated)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("sqlstore: parse updated_at: %w", err)
	}
	return c, u, nil
}

// stamp fills zero timestamps so rows written without them stay parseable.
func stamp(created, updated time.Time) (time.Time, time.Time) {
	now := time.Now().UTC()
	if created.IsZero() {
		created = now
	}
	if updated.IsZero() {
		updated = created
	}
	return created, updated
}
