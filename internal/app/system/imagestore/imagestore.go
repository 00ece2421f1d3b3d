// Package imagestore saves uploaded post images on local disk.
//
// Files are renamed to a uuid plus the original extension so user input
// never reaches the filesystem, and are served back under a configured
// URL prefix (/media by default).
package imagestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Store struct {
	root      string
	urlPrefix string
}

// New creates a Store rooted at dir; files are exposed under urlPrefix.
func New(dir, urlPrefix string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{root: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Root returns the directory uploads are written to.
func (s *Store) Root() string { return s.root }

// Save writes data under a uuid-based name derived from the original
// filename's extension and returns the stored name.
func (s *Store) Save(originalName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.root, name), data, 0o644); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return name, nil
}

// URL returns the public URL for a stored name, or "" for an empty name.
func (s *Store) URL(name string) string {
	if name == "" {
		return ""
	}
	return s.urlPrefix + "/" + name
}
