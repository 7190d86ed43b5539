// Package ioschema implements the SchemaManager interface for
// warehouse schema management. This is an impure I/O package that
// wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pristineseas/psdb/pkg/config"
	"github.com/pristineseas/psdb/pkg/db"
	"github.com/pristineseas/psdb/pkg/lifecycle"
	"github.com/pristineseas/psdb/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type manager struct{}

// NewManager creates a new SchemaManager.
func NewManager() lifecycle.SchemaManager {
	return &manager{}
}

// Create creates the initial warehouse schema using GORM AutoMigrate
// and applies the lookup indexes the migration cannot express.
func (m *manager) Create(
	ctx context.Context,
	op db.Operator,
	cfg *config.Config,
) error {
	gormDB, err := m.open(op)
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}

	if err := m.createIndexes(ctx, op); err != nil {
		return err
	}

	return nil
}

// Migrate updates the warehouse schema to the latest version using
// GORM AutoMigrate.
func (m *manager) Migrate(
	ctx context.Context,
	op db.Operator,
	cfg *config.Config,
) error {
	gormDB, err := m.open(op)
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return MigrateSchemaError(err)
	}

	if err := m.createIndexes(ctx, op); err != nil {
		return err
	}

	return nil
}

// open wraps the operator's pgx pool in a GORM session. The pool
// stays owned by the operator; GORM only borrows connections.
func (m *manager) open(op db.Operator) (*gorm.DB, error) {
	pool := op.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}

	return gormDB, nil
}

// createIndexes applies the IndexDDL statements declared by the
// models. Statements use IF NOT EXISTS, so the call is idempotent.
func (m *manager) createIndexes(
	ctx context.Context, op db.Operator,
) error {
	pool := op.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	for _, model := range schema.AllModels() {
		gen, ok := model.(schema.DDLGenerator)
		if !ok {
			continue
		}
		for _, stmt := range gen.IndexDDL() {
			if _, err := pool.Exec(ctx, stmt); err != nil {
				return IndexError(gen.TableName(), err)
			}
		}
	}

	return nil
}
