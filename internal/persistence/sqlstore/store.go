// Package sqlstore implements the persistence repositories on database/sql.
// The same queries run against SQLite (modernc.org/sqlite) and PostgreSQL
// (pgx stdlib); placeholders are written as ? and rebound per dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/muralisunil/event-elegance-landing/internal/persistence"
)

// Dialect names a supported database/sql driver.
type Dialect string

const (
	// DialectSQLite uses the pure Go SQLite driver.
	DialectSQLite Dialect = "sqlite"
	// DialectPostgres uses the pgx stdlib driver.
	DialectPostgres Dialect = "pgx"
)

// ParseDialect validates a driver name.
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(name))) {
	case DialectSQLite, "sqlite3", "":
		return DialectSQLite, nil
	case DialectPostgres, "postgres", "postgresql":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("sqlstore: unsupported driver %q", name)
	}
}

// Store implements persistence.EventRepository, persistence.VenueRepository
// and persistence.SessionRepository.
type Store struct {
	db      *sql.DB
	dialect Dialect

	// reserveMu serialises ReserveSession on SQLite, which has no row locks.
	reserveMu sync.Mutex
}

var (
	_ persistence.EventRepository   = (*Store)(nil)
	_ persistence.VenueRepository   = (*Store)(nil)
	_ persistence.SessionRepository = (*Store)(nil)
)

// Open connects to the database identified by driver and dsn.
func Open(driver, dsn string) (*Store, error) {
	dialect, err := ParseDialect(driver)
	if err != nil {
		return nil, err
	}
	if dialect == DialectSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open %s: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		// A single connection keeps writers from tripping over SQLITE_BUSY and
		// lets :memory: databases survive between calls.
		db.SetMaxOpenConns(1)
	}
	return New(db, dialect), nil
}

// New wraps an existing connection pool.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB returns the underlying connection pool.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect reports the driver the store was opened with.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping tests the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// withTx runs fn inside a transaction, rolling back when fn fails or panics.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlstore: begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlstore: commit transaction: %w", err)
	}
	return nil
}

// rebind rewrites ? placeholders into the dialect's native form.
func (s *Store) rebind(query string) string {
	return rebind(s.dialect, query)
}

func rebind(dialect Dialect, query string) string {
	if dialect != DialectPostgres || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// sqliteDSN turns on foreign key enforcement and a busy timeout unless the
// caller already configured them.
func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = "file:eventplanner.db"
	}
	pragmas := []string{}
	if !strings.Contains(dsn, "foreign_keys") {
		pragmas = append(pragmas, "_pragma=foreign_keys(1)")
	}
	if !strings.Contains(dsn, "busy_timeout") {
		pragmas = append(pragmas, "_pragma=busy_timeout(5000)")
	}
	if len(pragmas) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(pragmas, "&")
}
