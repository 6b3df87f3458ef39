package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"identity/config"
	"identity/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"github.com/spf13/cobra"
)

const (
	// databaseURLEnv overrides the postgres section of the config file.
	databaseURLEnv = "DATABASE_URL"

	migrateTimeout = 2 * time.Minute
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Apply all pending schema migrations to the PostgreSQL database and exit.
The connection comes from $DATABASE_URL when set, otherwise from the
postgres section of config.yaml.`,
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
	defer cancel()

	cmd.Println("Connecting to database...")
	db, err := openMigrationDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cmd.Println("Running migrations...")
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}

	cmd.Println("Migrations completed successfully")

	return nil
}

func openMigrationDB() (*sql.DB, error) {
	if dsn := os.Getenv(databaseURLEnv); dsn != "" {
		return postgres.OpenSQL(dsn)
	}

	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if cfg.Postgres == nil {
		return nil, errors.Errorf("postgres section is missing and %s is not set", databaseURLEnv)
	}

	gormDB, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	return sqlDB, nil
}
