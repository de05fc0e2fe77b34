// Package sqlite provides a SQLite-backed telemetry sink for client
// metrics reports.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/deskhub/internal/core/domain"
	"github.com/custodia-labs/deskhub/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.TelemetryStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS telemetry (
	id          TEXT PRIMARY KEY,
	received_at TIMESTAMP NOT NULL,
	body        TEXT NOT NULL
)`

// Store persists telemetry events in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a telemetry store at the specified data directory.
// If dataDir is empty, defaults to ~/.deskhub.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".deskhub")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "telemetry.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating telemetry table: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Record stores a single telemetry event.
func (s *Store) Record(ctx context.Context, event domain.TelemetryEvent) error {
	if event.ID == "" {
		return fmt.Errorf("%w: telemetry event ID is required", domain.ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO telemetry (id, received_at, body) VALUES (?, ?, ?)`,
		event.ID, event.ReceivedAt.UTC(), string(event.Body),
	)
	if err != nil {
		return fmt.Errorf("recording telemetry event: %w", err)
	}
	return nil
}

// Count returns the number of recorded events.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM telemetry`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting telemetry events: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}
