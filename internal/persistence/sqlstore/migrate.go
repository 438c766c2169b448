package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsTable = "schema_migrations"

// errAlreadyApplied marks a migration whose objects already exist.
var errAlreadyApplied = errors.New("migration objects already exist")

// Migrate applies every embedded migration that has not been recorded yet.
// Files run in lexical order, each in its own transaction.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.ensureMigrationsTable(ctx); err != nil {
		return err
	}

	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list embedded migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		filename := path.Base(name)
		applied, err := s.isApplied(ctx, filename)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		body, err := migrationFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", filename, err)
		}

		err = s.withTx(ctx, func(tx *sql.Tx) error {
			for _, stmt := range splitStatements(string(body)) {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					if isIgnorableMigrationError(err) {
						return errAlreadyApplied
					}
					return fmt.Errorf("apply migration %s: %w", filename, err)
				}
			}
			return s.markApplied(ctx, tx, filename)
		})
		if errors.Is(err, errAlreadyApplied) {
			err = s.markApplied(ctx, s.db, filename)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) markApplied(ctx context.Context, db execer, filename string) error {
	_, err := db.ExecContext(ctx,
		s.rebind(`INSERT INTO `+migrationsTable+` (filename, applied_at) VALUES (?, ?)`),
		filename, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record migration %s: %w", filename, err)
	}
	return nil
}

func (s *Store) ensureMigrationsTable(ctx context.Context) error {
	const query = `
CREATE TABLE IF NOT EXISTS ` + migrationsTable + ` (
	filename TEXT PRIMARY KEY,
	applied_at TEXT NOT NULL
)`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure migration table %s: %w", migrationsTable, err)
	}
	return nil
}

func (s *Store) isApplied(ctx context.Context, filename string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT COUNT(1) FROM `+migrationsTable+` WHERE filename = ?`),
		filename,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check migration %s: %w", filename, err)
	}
	return count > 0, nil
}

// splitStatements breaks a migration file on semicolons that end a line.
// Line comments are dropped.
func splitStatements(body string) []string {
	var (
		stmts   []string
		current strings.Builder
	)
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteByte('\n')
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSuffix(strings.TrimSpace(current.String()), ";")
			if stmt != "" {
				stmts = append(stmts, stmt)
			}
			current.Reset()
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}
