package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
)

type filesystemStore struct {
	basePath string
}

// NewFilesystemStore creates a FileStore that treats keys as file names under
// basePath. Useful for local development against a directory of uploads.
func NewFilesystemStore(basePath string) FileStore {
	return &filesystemStore{basePath: basePath}
}

func (f *filesystemStore) DeleteFiles(ctx context.Context, keys []string) error {
	for _, key := range keys {
		// Keys are opaque names, never paths.
		if key == "" || path.Base(key) != key || key == "." || key == ".." {
			return fmt.Errorf("invalid file key %q", key)
		}
		err := os.Remove(filepath.Join(f.basePath, key))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to delete file %s: %v", key, err)
		}
	}
	return nil
}
