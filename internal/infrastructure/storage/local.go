// Package storage provides the bundled image store. Production deployments
// point ports.ImageStore at an external object store; this implementation
// writes uploads to local disk and serves them under /uploads.
package storage

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const urlPrefix = "/uploads/"

// LocalImageStore stores images in a directory on local disk.
type LocalImageStore struct {
	dir string
}

// NewLocalImageStore creates the upload directory if needed.
func NewLocalImageStore(dir string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalImageStore{dir: dir}, nil
}

// Dir returns the directory uploads are written to, for static file serving.
func (s *LocalImageStore) Dir() string {
	return s.dir
}

// Save writes the image under a random name that keeps the original
// extension, and returns the reference served back to clients.
func (s *LocalImageStore) Save(_ context.Context, filename string, content io.Reader) (string, error) {
	name := randomName() + strings.ToLower(filepath.Ext(filepath.Base(filename)))

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write image: %w", err)
	}
	return urlPrefix + name, nil
}

// Remove deletes a stored image by its reference. Unknown references are
// ignored.
func (s *LocalImageStore) Remove(_ context.Context, ref string) error {
	name := strings.TrimPrefix(ref, urlPrefix)
	if name == ref || name == "" || strings.Contains(name, "/") {
		return nil // not one of ours
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}

func randomName() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("img-%x", os.Getpid())
	}
	return fmt.Sprintf("%x", b)
}
