package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rezkam/eisen/internal/core"
	"github.com/rezkam/eisen/internal/storage/document"
	"github.com/spf13/afero"
)

// Store is a filesystem-based implementation of core.Storage.
// The whole task list lives in a single JSON document.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore creates a store for the document at path on the OS filesystem.
func NewStore(path string) *Store {
	return NewStoreWithFs(afero.NewOsFs(), path)
}

// NewStoreWithFs creates a store for the document at path on fs.
func NewStoreWithFs(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the location of the document.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. A missing file means no history yet and yields an empty list.
func (s *Store) Load(ctx context.Context) ([]core.Task, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return []core.Task{}, nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	tasks, err := document.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return tasks, nil
}

// Save writes the document to a temporary sibling file and renames it over
// the target, so the previous contents are replaced as a whole.
func (s *Store) Save(ctx context.Context, tasks []core.Task) error {
	data, err := document.Marshal(tasks)
	if err != nil {
		return err
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp := fmt.Sprintf("%s.%s.tmp", s.path, uuid.NewString())
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace file: %w", err)
	}

	return nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *Store) Close() error {
	return nil
}
