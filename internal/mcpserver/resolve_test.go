package mcpserver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Ad name\n"), 0o644))

	t.Run("existing file resolves to absolute path", func(t *testing.T) {
		got, err := ResolveFile(csvPath)
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := ResolveFile("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ResolveFile(filepath.Join(dir, "absent.csv"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("directory rejected", func(t *testing.T) {
		_, err := ResolveFile(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "directory")
	})

	t.Run("symlink resolves to target", func(t *testing.T) {
		link := filepath.Join(dir, "link.csv")
		if err := os.Symlink(csvPath, link); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}
		got, err := ResolveFile(link)
		require.NoError(t, err)
		resolved, err := filepath.EvalSymlinks(csvPath)
		require.NoError(t, err)
		assert.Equal(t, resolved, got)
	})
}
