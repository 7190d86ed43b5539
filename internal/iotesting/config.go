// Package iotesting provides shared test utilities for integration
// tests. This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pristineseas/psdb/internal/iofs"
	"github.com/pristineseas/psdb/pkg/config"
)

// TestDatabaseName is the database name used for all integration
// tests, so tests never accidentally run against the production
// warehouse.
const TestDatabaseName = "psdb_test"

// GetTestConfig returns a configuration suitable for integration
// tests: defaults with the database name forced to TestDatabaseName.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig(t)
//	    // ... use cfg for database operations
//	}
func GetTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.New()
	cfg.HomeDir = SetupTempHome(t)
	cfg.Database.Database = TestDatabaseName
	return cfg
}

// SetupTempHome creates a temporary home directory with the
// application's directory layout. The directory is removed when the
// test finishes. Tests that write config, cache or staging files
// should use this so they never touch the real home.
func SetupTempHome(t *testing.T) string {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "psdb-test-home-*")
	if err != nil {
		t.Fatalf("Failed to create temp home: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	if err := iofs.EnsureDirs(tempDir); err != nil {
		t.Fatalf("Failed to create app dirs: %v", err)
	}

	return tempDir
}

// WriteConfigFile writes an arbitrary file into the temp home's
// config directory. Must be called after SetupTempHome.
func WriteConfigFile(t *testing.T, homeDir, name, content string) {
	t.Helper()

	path := filepath.Join(config.ConfigDir(homeDir), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

// WriteDataFile writes an arbitrary file into a test data directory,
// creating the directory if needed.
func WriteDataFile(t *testing.T, dataDir, name, content string) {
	t.Helper()

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatalf("Failed to create data dir: %v", err)
	}
	path := filepath.Join(dataDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}
