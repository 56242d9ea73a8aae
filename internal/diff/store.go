package diff

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store persists the most recent normalized snapshot per source. Read
// distinguishes "absent" from real failures; Write must replace the prior
// content atomically so a crashed run never leaves a torn snapshot behind.
type Store interface {
	Read(name string) (data []byte, ok bool, err error)
	Write(name string, data []byte) error
}

// FileStore implements Store on a local directory, one file per source.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot store: mkdir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Read returns the snapshot bytes, or ok=false when no snapshot exists yet.
func (s *FileStore) Read(name string) ([]byte, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("snapshot store: read %s: %w", name, err)
	}
	return data, true, nil
}

// Write atomically replaces the snapshot: tmp file in the same directory,
// then rename over the target.
func (s *FileStore) Write(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".eliwatch-tmp-*")
	if err != nil {
		return fmt.Errorf("snapshot store: tmp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("snapshot store: write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("snapshot store: sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("snapshot store: close %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("snapshot store: chmod %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("snapshot store: rename %s: %w", name, err)
	}
	return nil
}
