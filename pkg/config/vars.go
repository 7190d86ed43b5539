package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "psdb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/psdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/psdb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/psdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/psdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// ExpeditionsFilePath returns the full path to expeditions.yaml, the
// registry of expeditions and their raw exports.
func ExpeditionsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "expeditions.yaml")
}

// SchemasFilePath returns the full path to schemas.yaml, the target
// table schema document.
func SchemasFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "schemas.yaml")
}

// StageFilePath returns the path of the local staging database where
// normalized tables and reports live between normalize and upload.
func StageFilePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "stage.db")
}
