package postgres

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/chocomax/shop/internal/shop/store/drivers/postgres/migrations"
)

// gooseUpContext is swapped in tests.
var gooseUpContext = goose.UpContext

// ApplyMigrations creates the schema and stored functions.
func (s *Store) ApplyMigrations(ctx context.Context) error {
	return runMigrations(ctx, s.db)
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
