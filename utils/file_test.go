package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFirstGlobMatch(t *testing.T) {
	dir := t.TempDir()

	path, err := FirstGlobMatch(dir, "*.tgz")
	require.NoError(t, err)
	require.Equal(t, "", path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.tgz"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.tgz"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.tgz"), []byte("x"), 0o600))

	path, err = FirstGlobMatch(dir, "*.tgz")
	require.NoError(t, err)
	// Sort order, skipping the empty a.tgz.
	require.Equal(t, filepath.Join(dir, "b.tgz"), path)
}

func TestValidFile(t *testing.T) {
	dir := t.TempDir()
	require.False(t, ValidFile(dir))
	require.False(t, ValidFile(filepath.Join(dir, "missing")))

	path := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	require.False(t, ValidFile(path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	require.True(t, ValidFile(path))
}

func TestEnsureDirs(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, EnsureDirs(nested, filepath.Join(dir, "c")))
	info, err := os.Stat(nested)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
