// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/aquaflow/internal/models"
	"github.com/mmynk/aquaflow/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
// Collections are stored as JSON documents in a key-value table.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Writers are serialized by the service layer; a single connection also
	// keeps SQLite from returning SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// newWithDB wraps an already opened database without migrating it.
func newWithDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadCustomers reads the customer collection.
func (s *SQLiteStore) LoadCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	found, err := s.getJSON(ctx, storage.CustomersKey, &customers)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("customers: %w", storage.ErrNotFound)
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	return customers, nil
}

// ReplaceCustomers overwrites the customer collection in one transaction.
func (s *SQLiteStore) ReplaceCustomers(ctx context.Context, customers []models.Customer) error {
	if customers == nil {
		customers = []models.Customer{}
	}
	if err := s.putJSON(ctx, storage.CustomersKey, customers); err != nil {
		return fmt.Errorf("failed to replace customers: %w", err)
	}
	return nil
}

// LoadState reads an operator's view state.
func (s *SQLiteStore) LoadState(ctx context.Context, userID string) (models.AppState, error) {
	var state models.AppState
	if _, err := s.getJSON(ctx, stateKey(userID), &state); err != nil {
		return models.AppState{}, fmt.Errorf("failed to load state: %w", err)
	}
	return state, nil
}

// SaveState overwrites an operator's view state.
func (s *SQLiteStore) SaveState(ctx context.Context, userID string, state models.AppState) error {
	if err := s.putJSON(ctx, stateKey(userID), state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func stateKey(userID string) string {
	return "state:" + userID
}

// getJSON decodes the value stored under key into dst.
// It reports false if the key does not exist.
func (s *SQLiteStore) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// putJSON replaces the value stored under key.
func (s *SQLiteStore) putJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, raw, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
