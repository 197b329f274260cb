// Package history keeps a local record of generation runs so users can see
// how often the assistant fell back and why.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"gitpilot.dev/gitpilot/internal/ai"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// fixed width so timestamps sort lexically
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// DefaultLimit is the number of entries Recent returns when limit <= 0
const DefaultLimit = 20

// Entry is one recorded generation run
type Entry struct {
	ID          string
	Kind        ai.OutputKind
	Source      ai.Source
	Model       string
	Retried     bool
	FailureKind string
	Status      string
	Reason      string
	Repo        string
	CreatedAt   time.Time
}

// Stats aggregates recorded runs
type Stats struct {
	Total     int
	AI        int
	Fallback  int
	Retried   int
	ByFailure map[string]int
}

// Store is a sqlite-backed history of generation runs
type Store struct {
	db      *sql.DB
	repo    string
	now     func() time.Time
	onError func(error)
}

// Option configures a Store
type Option func(*Store)

// WithRepo tags recorded runs with a repository path
func WithRepo(repo string) Option {
	return func(s *Store) { s.repo = repo }
}

// WithErrorHandler receives errors from RecordGeneration, which cannot
// return them.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Store) { s.onError = fn }
}

// DefaultDir returns $XDG_STATE_HOME/gitpilot, falling back to
// ~/.local/state/gitpilot.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("history: find home directory: %w", err)
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "gitpilot"), nil
}

// Open opens (creating if needed) the history database in dir
func Open(dir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("history: create data dir: %w", err)
	}

	db, err := openDB("sqlite", filepath.Join(dir, "history.db"))
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS generations (
			id           TEXT PRIMARY KEY,
			kind         TEXT NOT NULL,
			source       TEXT NOT NULL,
			model        TEXT NOT NULL DEFAULT '',
			retried      INTEGER NOT NULL DEFAULT 0,
			failure_kind TEXT NOT NULL DEFAULT '',
			status       TEXT NOT NULL DEFAULT '',
			reason       TEXT NOT NULL DEFAULT '',
			repo         TEXT NOT NULL DEFAULT '',
			created_at   TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_generations_created ON generations(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores an entry, assigning an ID and timestamp when missing
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	if e.Repo == "" {
		e.Repo = s.repo
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generations (id, kind, source, model, retried, failure_kind, status, reason, repo, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Kind), string(e.Source), e.Model, e.Retried, e.FailureKind,
		e.Status, e.Reason, e.Repo, e.CreatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("history: insert: %w", err)
	}
	return e, nil
}

// RecordGeneration implements ai.Recorder
func (s *Store) RecordGeneration(ctx context.Context, report ai.Report) {
	_, err := s.Record(ctx, Entry{
		Kind:        report.Kind,
		Source:      report.Source,
		Model:       report.Model,
		Retried:     report.Retried,
		FailureKind: report.FailureKind,
		Status:      report.Status.String(),
		Reason:      report.Reason,
	})
	if err != nil && s.onError != nil {
		s.onError(err)
	}
}

// Recent returns the newest entries first
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, source, model, retried, failure_kind, status, reason, repo, created_at
		 FROM generations ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e                   Entry
			kind, source, stamp string
		)
		if err := rows.Scan(&e.ID, &kind, &source, &e.Model, &e.Retried, &e.FailureKind,
			&e.Status, &e.Reason, &e.Repo, &stamp); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		e.Kind = ai.OutputKind(kind)
		e.Source = ai.Source(source)
		if e.CreatedAt, err = time.Parse(timeFormat, stamp); err != nil {
			return nil, fmt.Errorf("history: parse timestamp %q: %w", stamp, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate: %w", err)
	}
	return entries, nil
}

// Stats aggregates every recorded run
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByFailure: make(map[string]int)}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN source = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN source = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(retried), 0)
		 FROM generations`, string(ai.SourceAI), string(ai.SourceFallback),
	).Scan(&stats.Total, &stats.AI, &stats.Fallback, &stats.Retried)
	if err != nil {
		return Stats{}, fmt.Errorf("history: stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT failure_kind, COUNT(*) FROM generations WHERE failure_kind != '' GROUP BY failure_kind`)
	if err != nil {
		return Stats{}, fmt.Errorf("history: failure stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			kind  string
			count int
		)
		if err := rows.Scan(&kind, &count); err != nil {
			return Stats{}, fmt.Errorf("history: scan failure stats: %w", err)
		}
		stats.ByFailure[kind] = count
	}
	return stats, rows.Err()
}
