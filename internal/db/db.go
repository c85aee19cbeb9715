// Package db opens the marina SQLite database and keeps its schema current.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// FileName is the database file inside the data directory.
const FileName = "marina.db"

// DefaultDataDir returns ~/.marina.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".marina"), nil
}

// Open opens (creating if needed) the database in dataDir and brings the
// schema up to date. An empty dataDir means DefaultDataDir; ":memory:"
// opens a private in-memory database.
func Open(dataDir string) (*sql.DB, error) {
	dsn := ":memory:"
	if dataDir != ":memory:" {
		if dataDir == "" {
			var err error
			if dataDir, err = DefaultDataDir(); err != nil {
				return nil, err
			}
		}
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, FileName)
	}

	database, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writers.
	database.SetMaxOpenConns(1)

	if err := Migrate(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return database, nil
}

// Path returns the database file path for dataDir.
func Path(dataDir string) (string, error) {
	if dataDir == "" {
		var err error
		if dataDir, err = DefaultDataDir(); err != nil {
			return "", err
		}
	}
	return filepath.Join(dataDir, FileName), nil
}
