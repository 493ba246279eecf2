// Package blob stores uploaded binary objects, currently user avatars.
package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists binary objects and returns public URLs for them.
type Store interface {
	// Upload writes data under the given object name and returns the URL
	// the object can be fetched from.
	Upload(ctx context.Context, data []byte, name string) (string, error)
	// Delete removes a previously uploaded object. Deleting a missing
	// object is not an error.
	Delete(ctx context.Context, name string) error
}

// FSStore is a Store backed by a local directory, with objects served from
// a static file route.
type FSStore struct {
	root    string
	baseURL string
}

// NewFSStore creates a filesystem store rooted at dir. Uploaded objects are
// addressed as baseURL + "/" + name.
func NewFSStore(dir, baseURL string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &FSStore{
		root:    dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *FSStore) resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("object name is empty")
	}
	cleaned := filepath.Clean(name)
	if cleaned != name || strings.Contains(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid object name: %q", name)
	}
	return filepath.Join(s.root, cleaned), nil
}

// Upload writes the object to disk and returns its public URL.
func (s *FSStore) Upload(ctx context.Context, data []byte, name string) (string, error) {
	path, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write object %s: %w", name, err)
	}
	return s.baseURL + "/" + name, nil
}

// Delete removes the object from disk.
func (s *FSStore) Delete(ctx context.Context, name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object %s: %w", name, err)
	}
	return nil
}
