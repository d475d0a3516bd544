package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorageStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	s, err := NewStorage(dir)
	require.NoError(t, err)

	err = s.Store(context.Background(), "bundle.zip", []byte("zip-bytes"), "application/zip")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "bundle.zip"))
	require.NoError(t, err)
	require.Equal(t, []byte("zip-bytes"), data)
}

func TestStorageStoreCancelledContext(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, s.Store(ctx, "x.bin", []byte("data"), ""))
}
