package iofs_test

import (
	"os"
	"testing"

	"github.com/pristineseas/psdb/internal/iofs"
	"github.com/pristineseas/psdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))

	for _, dir := range []string{
		config.ConfigDir(home),
		config.CacheDir(home),
		config.LogDir(home),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Idempotent.
	assert.NoError(t, iofs.EnsureDirs(home))
}

func TestEnsureConfigFiles(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))

	require.NoError(t, iofs.EnsureConfigFile(home))
	require.NoError(t, iofs.EnsureExpeditionsFile(home))
	require.NoError(t, iofs.EnsureSchemasFile(home))

	for _, path := range []string{
		config.ConfigFilePath(home),
		config.ExpeditionsFilePath(home),
		config.SchemasFilePath(home),
	} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
}

func TestEnsureConfigFileKeepsExisting(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))

	custom := "database:\n  host: warehouse.internal\n"
	path := config.ConfigFilePath(home)
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))

	require.NoError(t, iofs.EnsureConfigFile(home))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, string(data), "user edits must survive")
}
