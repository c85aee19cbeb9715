// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/example/marina/internal/core/effects"
)

// DocumentStore implements secondary.DocumentStore over a directory of
// markdown files.
type DocumentStore struct {
	dir string
}

// NewDocumentStore creates a store reading *.md files from dir.
// If dir is empty, defaults to ~/.marina/docs.
func NewDocumentStore(dir string) (*DocumentStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".marina", "docs")
	}
	return &DocumentStore{dir: dir}, nil
}

// Dir returns the directory documents are read from.
func (s *DocumentStore) Dir() string {
	return s.dir
}

// Document reads a named document. Names are plain file names; paths are rejected.
func (s *DocumentStore) Document(ctx context.Context, name string) (string, error) {
	if name == "" || filepath.Base(name) != name || !strings.HasSuffix(name, ".md") {
		return "", effects.Invalid("invalid document name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", effects.NotFound("document %q", name)
		}
		return "", fmt.Errorf("failed to read document %s: %w", name, err)
	}
	return string(data), nil
}

// List returns the names of all documents in the directory.
func (s *DocumentStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
