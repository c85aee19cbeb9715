// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SlotStore implements secondary.SlotStore with SQLite. Values are stored
// as JSON text.
type SlotStore struct {
	db *sql.DB
}

// NewSlotStore creates a new SQLite slot store.
func NewSlotStore(db *sql.DB) *SlotStore {
	return &SlotStore{db: db}
}

// Load decodes the slot into dst.
func (s *SlotStore) Load(ctx context.Context, key string, dst any) (bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load slot %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(value), dst); err != nil {
		return false, fmt.Errorf("failed to decode slot %s: %w", key, err)
	}
	return true, nil
}

// Save encodes v into the slot, replacing any previous value.
func (s *SlotStore) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode slot %s: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to save slot %s: %w", key, err)
	}
	return nil
}

// Keys lists the stored slot names.
func (s *SlotStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key FROM slots ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
