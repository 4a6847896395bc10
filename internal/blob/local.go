package blob

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// publicPrefix is the URL path under which the image directory is served.
const publicPrefix = "/paintings/"

// LocalStore writes images into a directory served as static files by the
// HTTP server.
type LocalStore struct {
	dir string
}

// NewLocalStore ensures the image directory exists and returns a store
// writing into it.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	dst := filepath.Join(s.dir, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(dst) // do not leave a truncated image behind
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return publicPrefix + name, nil
}

// Dir returns the directory images are written to, for static serving.
func (s *LocalStore) Dir() string { return s.dir }
