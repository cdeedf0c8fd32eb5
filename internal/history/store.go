package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/zhyswan/fingerprintjs/internal/config"
	"github.com/zhyswan/fingerprintjs/internal/identity"
	"github.com/zhyswan/fingerprintjs/internal/logging"
)

// ErrNotFound reports a lookup that matched no recorded run.
var ErrNotFound = errors.New("history entry not found")

// Store manages run history persistence backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// Entry is one recorded identification run.
type Entry struct {
	RunID         string
	Identifier    string
	Confidence    float64
	SchemaVersion string
	Result        json.RawMessage
	CreatedAt     time.Time
}

// Open initializes or connects to the history database, acquires the file
// lock, and applies migrations.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	path := strings.TrimSpace(cfg.History.Path)
	if path == "" {
		return nil, errors.New("history path not configured")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(path + ".lock")
	held, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire history lock: %w", err)
	}
	if !held {
		return nil, errors.New("another fingerprint process is using the history database")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:     db,
		path:   path,
		lock:   lock,
		logger: logging.NewComponentLogger(logger, "history"),
	}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

func (s *Store) applyMigrations(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL UNIQUE,
    identifier TEXT NOT NULL,
    confidence REAL NOT NULL,
    schema_version TEXT NOT NULL,
    result_json TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_identifier ON runs(identifier);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close releases the database connection and the file lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var closeErr error
	if s.db != nil {
		closeErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	return closeErr
}

// Record persists one completed run.
func (s *Store) Record(ctx context.Context, result *identity.Result) error {
	if result == nil {
		return errors.New("nil result")
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, identifier, confidence, schema_version, result_json, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		result.RunID,
		result.Identifier(),
		result.Confidence.Score,
		result.SchemaVersion,
		string(payload),
		result.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	s.logger.Debug("recorded identification run",
		logging.String(logging.FieldRunID, result.RunID),
		logging.String(logging.FieldIdentifier, result.Identifier()))
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, identifier, confidence, schema_version, result_json, created_at
         FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Get returns the run recorded under runID.
func (s *Store) Get(ctx context.Context, runID string) (*Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, identifier, confidence, schema_version, result_json, created_at
         FROM runs WHERE run_id = ?`, strings.TrimSpace(runID))
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return &entries[0], nil
}

// FindByIdentifier returns runs whose identifier starts with prefix, newest
// first.
func (s *Store) FindByIdentifier(ctx context.Context, prefix string) ([]Entry, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil, errors.New("identifier prefix cannot be empty")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, identifier, confidence, schema_version, result_json, created_at
         FROM runs WHERE identifier LIKE ? ORDER BY id DESC`, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("find runs: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Prune deletes everything but the keep most recent runs and reports how
// many rows were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if removed > 0 {
		s.logger.Debug("pruned history", logging.Int64("removed", removed), logging.Int("keep", keep))
	}
	return removed, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var entry Entry
		var resultJSON, createdAt string
		if err := rows.Scan(&entry.RunID, &entry.Identifier, &entry.Confidence,
			&entry.SchemaVersion, &resultJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		entry.Result = json.RawMessage(resultJSON)
		if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			entry.CreatedAt = parsed
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return entries, nil
}
