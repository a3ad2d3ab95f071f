package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// StateKey is the single key the state document lives under.
const StateKey = "state"

// ErrStaleState is returned by Save when another writer has persisted a newer
// version of the document since it was loaded.
var ErrStaleState = errors.New("state was modified by another writer; reload and retry")

// DefaultDBPath returns the default FamGrow database location.
func DefaultDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".famgrow.db"), nil
}

// Store persists the state document in a local SQLite file. The document is
// one JSON object under one key; a version counter makes Save a
// compare-and-swap so a second process cannot silently lose updates.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if missing) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS app_state (
			key TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			data TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (st *Store) Close() error {
	return st.db.Close()
}

// Load reads the state document and its version. A missing row returns
// (nil, 0, nil): the caller seeds defaults on first run.
func (st *Store) Load(ctx context.Context) (*State, int64, error) {
	row := st.db.QueryRowContext(ctx,
		`SELECT version, data FROM app_state WHERE key = ?`, StateKey)

	var version int64
	var raw string
	if err := row.Scan(&version, &raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("state scan: %w", err)
	}

	var s State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, 0, fmt.Errorf("state decode: %w", err)
	}
	return &s, version, nil
}

// Save writes the document if the stored version still equals fromVersion
// and returns the new version. fromVersion 0 means "no document yet".
func (st *Store) Save(ctx context.Context, s *State, fromVersion int64) (int64, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return 0, fmt.Errorf("state encode: %w", err)
	}
	now := time.Now().UTC()

	if fromVersion == 0 {
		_, err := st.db.ExecContext(ctx, `
			INSERT INTO app_state (key, version, data, updated_at)
			VALUES (?, 1, ?, ?)
		`, StateKey, string(raw), now)
		if err != nil {
			return 0, fmt.Errorf("state insert: %w", err)
		}
		return 1, nil
	}

	res, err := st.db.ExecContext(ctx, `
		UPDATE app_state
		SET version = version + 1, data = ?, updated_at = ?
		WHERE key = ? AND version = ?
	`, string(raw), now, StateKey, fromVersion)
	if err != nil {
		return 0, fmt.Errorf("state update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("state rows affected: %w", err)
	}
	if n == 0 {
		return 0, ErrStaleState
	}
	return fromVersion + 1, nil
}
