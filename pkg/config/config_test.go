package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/pristineseas/psdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "psdb"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "psdb"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "psdb", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "psdb", "config.yaml"),
		},
		{
			msg: "expeditions file",
			fn:  config.ExpeditionsFilePath,
			res: filepath.Join(tempHome, ".config", "psdb", "expeditions.yaml"),
		},
		{
			msg: "schemas file",
			fn:  config.SchemasFilePath,
			res: filepath.Join(tempHome, ".config", "psdb", "schemas.yaml"),
		},
		{
			msg: "stage file",
			fn:  config.StageFilePath,
			res: filepath.Join(tempHome, ".cache", "psdb", "stage.db"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Database defaults
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "pristine_seas", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 10_000, cfg.Database.BatchSize)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		// JobsNumber defaults to CPU count
		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "db.example.com",
			expected: "db.example.com",
		},
		{
			name:     "trims whitespace",
			input:    "  db.example.com  ",
			expected: "db.example.com",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseHost(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionDatabaseBatchSize(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "sets valid batch size",
			input:    2_000,
			expected: 2_000,
		},
		{
			name:     "ignores zero",
			input:    0,
			expected: 10_000, // Should keep default
		},
		{
			name:     "ignores negative",
			input:    -5,
			expected: 10_000, // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseBatchSize(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.BatchSize)
		})
	}
}

func TestOptionLogDestination(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets stdout",
			input:    "stdout",
			expected: "stdout",
		},
		{
			name:     "sets stderr",
			input:    "stderr",
			expected: "stderr",
		},
		{
			name:     "normalizes to lowercase",
			input:    "STDOUT",
			expected: "stdout",
		},
		{
			name:     "ignores invalid value",
			input:    "syslog",
			expected: "file", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptLogDestination(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Log.Destination)
		})
	}
}

func TestOptionIngest(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptIngestDataDir("/data/exports"),
		config.OptIngestExpeditionIDs([]string{"CHL_2024"}),
		config.OptIngestMethods([]string{"uvs", "pbruv"}),
	})

	assert.Equal(t, "/data/exports", cfg.Ingest.DataDir)
	assert.Equal(t, []string{"CHL_2024"}, cfg.Ingest.ExpeditionIDs)
	assert.Equal(t, []string{"uvs", "pbruv"}, cfg.Ingest.Methods)
}

func TestOptionUploadReplace(t *testing.T) {
	cfg := config.New()
	assert.False(t, cfg.Upload.Replace)

	cfg.Update([]config.Option{config.OptUploadReplace(true)})
	assert.True(t, cfg.Upload.Replace)
}

func TestToOptionsRoundTrip(t *testing.T) {
	src := config.New()
	src.Database.Host = "warehouse.internal"
	src.Database.BatchSize = 2_500
	src.Ingest.DataDir = "/data/exports"
	src.Ingest.ExpeditionIDs = []string{"FJI_2025"}
	src.Upload.Replace = true
	src.Log.Format = "text"

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal(t, "warehouse.internal", dst.Database.Host)
	assert.Equal(t, 2_500, dst.Database.BatchSize)
	assert.Equal(t, "/data/exports", dst.Ingest.DataDir)
	assert.Equal(t, []string{"FJI_2025"}, dst.Ingest.ExpeditionIDs)
	assert.True(t, dst.Upload.Replace)
	assert.Equal(t, "text", dst.Log.Format)
}
