package postgres

import (
	"context"
	"database/sql"

	"identity/internal/infra/persistence/postgres/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate applies the embedded schema migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return errors.Wrap(err, "failed to set goose dialect")
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	return nil
}

// OpenSQL opens a database/sql handle through the pgx stdlib driver. It is
// used by the migrate command, which does not need a GORM session.
func OpenSQL(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PostgreSQL connection")
	}

	return db, nil
}
