package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
)

var _ ObjectStore = (*FilesystemStore)(nil)

// FilesystemStore keeps documents under a local base directory. It stands in
// for S3 in dry runs and tests.
type FilesystemStore struct {
	basePath string
}

func NewFilesystemStore(basePath string) (*FilesystemStore, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path is required for filesystem storage")
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}
	return &FilesystemStore{basePath: abs}, nil
}

func (f *FilesystemStore) path(key string) string {
	return filepath.Join(f.basePath, filepath.FromSlash(key))
}

func (f *FilesystemStore) Upload(ctx context.Context, localPath, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dst := f.path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	in, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", key, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return out.Close()
}

func (f *FilesystemStore) Exists(_ context.Context, key string) (bool, error) {
	_, err := os.Stat(f.path(key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// URLFor returns a file URL.
func (f *FilesystemStore) URLFor(key string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(f.path(key))}
	return u.String()
}
