package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemStore_DeletesFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"key-a", "key-b"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("img"), 0o644))
	}
	store := NewFilesystemStore(dir)

	err := store.DeleteFiles(context.Background(), []string{"key-a", "key-b"})

	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "key-a"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFilesystemStore_MissingFileIsNotAnError(t *testing.T) {
	store := NewFilesystemStore(t.TempDir())

	assert.NoError(t, store.DeleteFiles(context.Background(), []string{"never-uploaded"}))
}

func TestFilesystemStore_RejectsPathKeys(t *testing.T) {
	store := NewFilesystemStore(t.TempDir())

	assert.Error(t, store.DeleteFiles(context.Background(), []string{"../escape"}))
	assert.Error(t, store.DeleteFiles(context.Background(), []string{""}))
	assert.Error(t, store.DeleteFiles(context.Background(), []string{".."}))
}

func TestNoopStore(t *testing.T) {
	assert.NoError(t, NoopStore{}.DeleteFiles(context.Background(), []string{"anything"}))
}
