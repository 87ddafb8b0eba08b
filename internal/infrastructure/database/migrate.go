package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"

	"library-backend/migrations"
)

const (
	MigrateUp   = "up"
	MigrateDown = "down"
)

// RunMigrations applies the embedded migrations against dsn. Being
// already at the target version is not an error.
func RunMigrations(dsn, direction string) error {
	if dsn == "" {
		return errors.New("database DSN is empty")
	}
	if direction != MigrateUp && direction != MigrateDown {
		return fmt.Errorf("direction must be %s or %s, got %q", MigrateUp, MigrateDown, direction)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	switch direction {
	case MigrateUp:
		err = m.Up()
	case MigrateDown:
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}

	version, dirty, verr := m.Version()
	if verr == nil {
		log.Info().Uint("version", version).Bool("dirty", dirty).Str("direction", direction).Msg("Migrations applied")
	}
	return nil
}

// Migrate runs RunMigrations with this database's connection settings
func (db *PostgresDB) Migrate(direction string) error {
	return RunMigrations(db.buildConnectionString(), direction)
}
