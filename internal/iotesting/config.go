// Package iotesting provides shared test utilities: test configuration,
// disposable PostgreSQL and IFC fixture builders.
package iotesting

import (
	"context"
	"os"
	"testing"

	"github.com/gnames/ifcdb/internal/ioconfig"
	"github.com/gnames/ifcdb/internal/iofs"
	"github.com/gnames/ifcdb/pkg/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// Tests never run against a production database.
	TestDatabaseName = "ifcdb_test"

	// PostgresImage is the container image for integration tests.
	PostgresImage = "postgres:16-alpine"
)

// GetTestConfig returns a configuration for tests. It reads default
// config and IFCDB_* environment variables from a temporary home
// directory, and forces the database name to TestDatabaseName.
func GetTestConfig(t *testing.T) *config.Config {
	t.Helper()
	home := t.TempDir()
	if err := iofs.EnsureDirs(home); err != nil {
		t.Fatalf("cannot create dirs: %v", err)
	}
	if err := iofs.EnsureConfigFile(home); err != nil {
		t.Fatalf("cannot create config: %v", err)
	}

	cfgViper, err := ioconfig.Load(home)
	if err != nil {
		t.Fatalf("cannot load config: %v", err)
	}

	res := config.New()
	res.Update(cfgViper.ToOptions())
	res.Update([]config.Option{
		config.OptHomeDir(home),
		config.OptDatabaseDatabase(TestDatabaseName),
	})
	return res
}

// Postgres returns connection settings of an empty PostgreSQL database.
// If IFCDB_DATABASE_HOST is set, the server it points to is used,
// otherwise a disposable container is started and terminated when the
// test ends.
func Postgres(t *testing.T) *config.DatabaseConfig {
	t.Helper()
	cfg := GetTestConfig(t)
	if os.Getenv("IFCDB_DATABASE_HOST") != "" {
		return &cfg.Database
	}

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, PostgresImage,
		postgres.WithDatabase(TestDatabaseName),
		postgres.WithUsername(cfg.Database.User),
		postgres.WithPassword(cfg.Database.Password),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("cannot start postgres container: %v", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		t.Fatalf("cannot get container host: %v", err)
	}
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("cannot get container port: %v", err)
	}

	cfg.Database.Host = host
	cfg.Database.Port = port.Int()
	cfg.Database.SSLMode = "disable"
	return &cfg.Database
}
