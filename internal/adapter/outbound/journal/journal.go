// Package journal persists a local activity trail of session and
// navigation events in a SQLite database. The journal is best-effort:
// callers log and continue when an append fails.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

// Entry kinds recorded by the journal.
const (
	KindLogin       = "login"
	KindLoginFailed = "login_failed"
	KindLogout      = "logout"
	KindRegister    = "register"
	KindHydrate     = "hydrate"
	KindRedirect    = "redirect"
)

const schema = `
CREATE TABLE IF NOT EXISTS activity (
	id         TEXT PRIMARY KEY,
	at         TEXT NOT NULL,
	kind       TEXT NOT NULL,
	username   TEXT NOT NULL DEFAULT '',
	token_fp   TEXT NOT NULL DEFAULT '',
	detail     TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_activity_at ON activity (at DESC);
`

// Entry is one recorded activity event.
type Entry struct {
	ID       string
	At       time.Time
	Kind     string
	Username string
	TokenFP  string
	Detail   string
}

// Journal is a SQLite-backed activity log.
type Journal struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the journal database at path.
func Open(path string, logger *slog.Logger) (*Journal, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("journal path is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping journal db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}

	return &Journal{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Append records one activity entry. The entry ID and timestamp are
// assigned here when zero-valued.
func (j *Journal) Append(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if j == nil || j.db == nil {
		return fmt.Errorf("journal is not configured")
	}
	if strings.TrimSpace(e.Kind) == "" {
		return fmt.Errorf("entry kind is required")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO activity (id, at, kind, username, token_fp, detail) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.At.UTC().Format(timeFormat), e.Kind, e.Username, e.TokenFP, e.Detail)
	if err != nil {
		return fmt.Errorf("append journal entry: %w", err)
	}

	j.logger.Debug("journal entry appended",
		slog.String("kind", e.Kind),
		slog.String("username", e.Username))
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if j == nil || j.db == nil {
		return nil, fmt.Errorf("journal is not configured")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT id, at, kind, username, token_fp, detail FROM activity ORDER BY at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&e.ID, &at, &e.Kind, &e.Username, &e.TokenFP, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.At, err = time.Parse(timeFormat, at)
		if err != nil {
			return nil, fmt.Errorf("parse journal timestamp: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}
