package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const defFileMode fs.FileMode = 0o644

// FileStore reads and writes a manifest file.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads and parses the manifest file.
func (s *FileStore) Load() (*Manifest, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}

	return m, nil
}

// Store writes the manifest to the file.
// The permissions of an existing file are kept.
func (s *FileStore) Store(m *Manifest) error {
	data, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("%s: marshaling manifest failed: %w", s.Path, err)
	}

	mode := defFileMode

	fi, err := os.Stat(s.Path)
	if err == nil {
		mode = fi.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return os.WriteFile(s.Path, data, mode)
}

func (s *FileStore) String() string {
	return s.Path
}
