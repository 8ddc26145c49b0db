package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/vadimbarashkov/flashurl/migrations"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
)

// RunMigrations applies the embedded migrations to the database behind databaseURL.
// The URL scheme picks the migrate driver: postgres://... or sqlite://path.
// Running it against an up-to-date schema is a no-op.
func RunMigrations(databaseURL string) error {
	const op = "database.RunMigrations"

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("%s: failed to open migrations source: %w", op, err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("%s: failed to initialize migrations: %w", op, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	return nil
}
