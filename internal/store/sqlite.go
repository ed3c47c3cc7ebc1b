// ABOUTME: SQLite-backed persistence slot using modernc.org/sqlite
// ABOUTME: Stores the serialized aggregate in a single-row key-value table

package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const slotKey = "service_order_system_data"

// SQLiteSlot implements Slot on top of a SQLite database file.
type SQLiteSlot struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteSlot opens (or creates) the slot database at the given path.
// Parent directories are created if needed.
func NewSQLiteSlot(path string) (*SQLiteSlot, error) {
	logger := slog.Default().With("component", "slot")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL keeps reads cheap while the full snapshot is rewritten on every mutation
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS slots (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite slot opened", "path", path)
	return &SQLiteSlot{db: db, logger: logger}, nil
}

// Load returns the persisted envelope bytes, or ErrSlotEmpty.
func (s *SQLiteSlot) Load() ([]byte, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM slots WHERE key = ?", slotKey).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot: %w", err)
	}
	return value, nil
}

// Save overwrites the slot with the given envelope bytes.
func (s *SQLiteSlot) Save(data []byte) error {
	query := `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, slotKey, data); err != nil {
		return fmt.Errorf("writing slot: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}
