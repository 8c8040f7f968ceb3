// Package ioschema implements the SchemaManager interface. It wraps GORM
// AutoMigrate over the pgx connection pool.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/gnames/ifcdb/pkg/db"
	"github.com/gnames/ifcdb/pkg/lifecycle"
	"github.com/gnames/ifcdb/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements lifecycle.SchemaManager using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// globalIDColumns keep IFC GlobalIds. GlobalIds are case-sensitive, so
// they are compared byte by byte.
var globalIDColumns = []struct {
	table, column string
	varchar       int
}{
	{"storeys", "global_id", 64},
	{"element_types", "global_id", 64},
	{"building_elements", "global_id", 64},
	{"spaces", "global_id", 64},
}

// Create creates the schema and sets collation of GlobalId columns.
func (m *manager) Create(ctx context.Context) error {
	gormDB, err := m.gorm(ctx)
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}

	if err := m.setCollation(ctx); err != nil {
		return err
	}

	slog.Info("Database schema created", "tables", len(schema.AllModels()))
	return nil
}

// Migrate updates the schema to the current models.
func (m *manager) Migrate(ctx context.Context) error {
	gormDB, err := m.gorm(ctx)
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return MigrateSchemaError(err)
	}

	slog.Info("Database schema migrated")
	return nil
}

func (m *manager) gorm(ctx context.Context) (*gorm.DB, error) {
	pool := m.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB.WithContext(ctx), nil
}

func (m *manager) setCollation(ctx context.Context) error {
	pool := m.operator.Pool()
	for _, col := range globalIDColumns {
		q := collationSQL(col.table, col.column, col.varchar)
		if _, err := pool.Exec(ctx, q); err != nil {
			return CollationError(col.table, col.column, err)
		}
	}
	return nil
}
