package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.hcl", "a.YAML", "notes.txt", "sub/c.hcl"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}

	files, err := FindFilesByExtension(dir, ".hcl", ".yaml")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.YAML"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "sub", "c.hcl"),
	}, files)

	// A file path is returned as-is, whatever its extension.
	single := filepath.Join(dir, "notes.txt")
	files, err = FindFilesByExtension(single, ".hcl")
	require.NoError(t, err)
	require.Equal(t, []string{single}, files)

	_, err = FindFilesByExtension(filepath.Join(dir, "missing"), ".hcl")
	require.ErrorIs(t, err, os.ErrNotExist)

	require.Panics(t, func() { _, _ = FindFilesByExtension(dir) })
}
