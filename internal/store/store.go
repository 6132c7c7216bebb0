package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Find when no stored file matches the identifier.
var ErrNotFound = errors.New("no stored file matches identifier")

// Store persists uploads as flat files in a single scratch directory. The
// directory listing is the index: each upload is written exactly once under
// "{identifier}_{originalFilename}" and never rewritten or deleted.
type Store struct {
	dir string
}

// New creates the scratch directory if needed and returns a store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save writes the upload verbatim under a fresh random identifier and returns
// that identifier. An empty original filename leaves a trailing underscore in
// the stored name. The identifier is returned only on a fully successful
// write; a partial file left by a failed write is removed.
func (s *Store) Save(originalFilename string, r io.Reader) (string, error) {
	id := uuid.NewString()
	path := filepath.Join(s.dir, id+"_"+originalFilename)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close upload file: %w", err)
	}

	return id, nil
}

// Find returns the path of the first file whose name starts with
// "{identifier}_". os.ReadDir sorts entries by name, so a hypothetical
// multi-match resolves to the lexicographically smallest one.
func (s *Store) Find(id string) (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("read upload directory: %w", err)
	}

	prefix := id + "_"
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), prefix) {
			return filepath.Join(s.dir, entry.Name()), nil
		}
	}

	return "", ErrNotFound
}
