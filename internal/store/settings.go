// Package store persists the small bits of workflow state between runs:
// remembered form fields and the invoice-number counter.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledgerline/invoiceflow/internal/common"
	"github.com/ledgerline/invoiceflow/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SettingsStore is a SQLite-backed key/value store.
type SettingsStore struct {
	db *sql.DB
}

// NewSettingsStore opens (and if needed creates) the settings database at
// dbPath.
func NewSettingsStore(dbPath string) (*SettingsStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("settings db path is required")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open settings db: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping settings db: %w", err)
	}

	store := &SettingsStore{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SettingsStore) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS counters (
		name  TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	);`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate settings db: %w", err)
	}
	return nil
}

// Get returns the stored value for key, or common.ErrNotFound.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("setting %q: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %q: %w", key, err)
	}
	return value, nil
}

// Set stores the value under key, replacing any previous value.
func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return fmt.Errorf("failed to store setting %q: %w", key, err)
	}
	return nil
}

// Delete removes the value under key. Deleting a missing key is not an error.
func (s *SettingsStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete setting %q: %w", key, err)
	}
	return nil
}

// NextInvoiceNumber atomically increments and returns the invoice counter,
// starting at 1.
func (s *SettingsStore) NextInvoiceNumber(ctx context.Context) (int, error) {
	var number int
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO counters (name, value) VALUES ('invoice', 1)
		ON CONFLICT(name) DO UPDATE SET value = value + 1
		RETURNING value`).Scan(&number)
	if err != nil {
		return 0, fmt.Errorf("failed to advance invoice counter: %w", err)
	}
	return number, nil
}

// Close closes the database.
func (s *SettingsStore) Close() error {
	return s.db.Close()
}

// Ensure SettingsStore implements the Settings interface.
var _ service.Settings = (*SettingsStore)(nil)
