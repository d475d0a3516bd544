package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSources(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), []byte("png-bytes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.JPG"), []byte("jpg-bytes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	sources, err := loadSources(dir)
	require.NoError(t, err)
	require.Len(t, sources, 2)

	// Directory order is lexical, so the batch is deterministic.
	require.Equal(t, "a.JPG", sources[0].Name)
	require.Equal(t, []byte("jpg-bytes"), sources[0].Data)
	require.Equal(t, "b.png", sources[1].Name)
}

func TestLoadSourcesMissingDir(t *testing.T) {
	_, err := loadSources(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
