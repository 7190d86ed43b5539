package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pristineseas/psdb/pkg/config"
)

// Operator defines the interface for basic database management
// operations against the warehouse. It provides connection lifecycle
// management and exposes the pgxpool.Pool for high-level lifecycle
// components (SchemaManager, Uploader) to execute their specialized
// SQL operations internally.
//
// Design rationale:
// - Keeps interface minimal to avoid bloat with mixed semantics
// - Pool() enables components to use performance-critical features
//   (CopyFrom for bulk appends)
// - Schema creation and migration are handled by GORM AutoMigrate via
//   SchemaManager
// - The handle is explicitly passed and explicitly closed; nothing in
//   the pipeline holds an ambient connection
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool for high-level
	// components to execute specialized SQL operations. Components
	// use this for transactions, bulk appends (CopyFrom), and custom
	// queries.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public
	// schema. Used to determine if schema creation should prompt for
	// confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema.
	// Used during schema initialization when overwriting existing data.
	DropAllTables(ctx context.Context) error

	// ExpeditionUploaded reports whether a table already holds rows of
	// the given expedition. Append semantics perform no duplicate
	// check on their own; this is the guard callers use before
	// appending.
	ExpeditionUploaded(
		ctx context.Context, table, expeditionID string,
	) (bool, error)

	// DeleteExpedition removes an expedition's rows from a table,
	// implementing replace semantics. Returns the number of rows
	// deleted.
	DeleteExpedition(
		ctx context.Context, table, expeditionID string,
	) (int64, error)
}
