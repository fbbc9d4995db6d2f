package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePathsWithHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DAD_HOME", dir)

	paths, err := ResolvePaths()
	require.NoError(t, err)

	assert.Equal(t, dir, paths.Base)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), paths.Config)
	assert.Equal(t, filepath.Join(dir, "data"), paths.Data)
	assert.Equal(t, filepath.Join(dir, "logs"), paths.Logs)
	assert.Equal(t, filepath.Join(dir, "data", "history.db"), paths.HistoryDB())
}

func TestResolvePathsDefault(t *testing.T) {
	t.Setenv("DAD_HOME", "")

	paths, err := ResolvePaths()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".dad"), paths.Base)
}

func TestEnsureDirs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DAD_HOME", filepath.Join(dir, "nested", "home"))

	paths, err := ResolvePaths()
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirs())

	for _, d := range []string{paths.Base, paths.Data, paths.Logs} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
