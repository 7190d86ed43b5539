// Package config provides configuration management for psdb.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Ingest: data_dir
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Ingest.ExpeditionIDs, Ingest.Methods (per-command)
//   - Upload.Replace (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use PSDB_ prefix with underscores for nesting:
//
//	PSDB_DATABASE_HOST=localhost
//	PSDB_DATABASE_PORT=5432
//	PSDB_INGEST_DATA_DIR=/data/expeditions
//	PSDB_LOG_LEVEL=info
//	PSDB_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete psdb configuration.
type Config struct {
	// Database contains PostgreSQL warehouse connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Ingest contains settings for reading raw expedition exports.
	Ingest IngestConfig `mapstructure:"ingest" yaml:"ingest"`

	// Upload contains settings specific to the upload command.
	Upload UploadConfig `mapstructure:"upload" yaml:"upload"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for taxon name
	// parsing. Default is the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories
	// reside. It must be set by CLI during init, there is no default
	// value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of rows per CopyFrom batch during
	// upload. Larger batches are faster but use more memory.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// IngestConfig contains settings for reading raw expedition exports.
type IngestConfig struct {
	// DataDir is the root directory holding one subdirectory per
	// expedition with its raw exports (CSV or SQLite workbooks).
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// ExpeditionIDs is the list of expeditions to process. Empty
	// means every expedition in expeditions.yaml. Runtime-only.
	ExpeditionIDs []string `mapstructure:"expedition_ids" yaml:"expedition_ids"`

	// Methods restricts processing to the given survey methods.
	// Empty means every method registered for the expedition.
	// Runtime-only.
	Methods []string `mapstructure:"methods" yaml:"methods"`
}

// UploadConfig contains settings specific to the upload command.
type UploadConfig struct {
	// Replace deletes the expedition's previously uploaded rows
	// before appending. Without it, upload refuses expeditions that
	// are already present in the warehouse. Runtime-only.
	Replace bool `mapstructure:"replace" yaml:"replace"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "pristine_seas",
			SSLMode:   "disable",
			BatchSize: 10_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
