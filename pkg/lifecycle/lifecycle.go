// Package lifecycle defines the interfaces for the stages of the
// expedition data workflow: schema management, the normalization
// pipeline, the taxonomic lookup builder, and the warehouse uploader.
// Implementations live in internal/io and are impure; the interfaces
// here keep cmd wired to behavior, not implementation.
package lifecycle

import (
	"context"

	"github.com/pristineseas/psdb/pkg/config"
	"github.com/pristineseas/psdb/pkg/db"
)

// SchemaManager handles database schema operations using GORM's
// auto-migration.
type SchemaManager interface {
	// Create initializes the warehouse schema in an empty database.
	Create(ctx context.Context, op db.Operator, cfg *config.Config) error

	// Migrate brings an existing schema up to date with the current
	// models without dropping data.
	Migrate(ctx context.Context, op db.Operator, cfg *config.Config) error
}

// Pipeline runs the normalization workflow for the configured
// expeditions: ingest raw exports, normalize and apply overrides,
// derive identifiers, link tables, and write the results to the
// local staging store.
type Pipeline interface {
	Run(ctx context.Context, cfg *config.Config) error
}

// TaxaBuilder resolves observed taxon names into parsed, accepted
// records ready for the taxa table.
type TaxaBuilder interface {
	Build(ctx context.Context, cfg *config.Config) error
}

// Uploader moves staged expedition tables into the warehouse.
type Uploader interface {
	Upload(ctx context.Context, op db.Operator, cfg *config.Config) error
}
