package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

// Migrator applies schema migrations from a directory of numbered SQL files.
// It borrows connections from the pool through a database/sql shim, so Close
// must be called to hand them back.
type Migrator struct {
	m      *migrate.Migrate
	shim   *sql.DB
	logger zerolog.Logger
}

// NewMigrator opens the migrations directory and binds it to the pool.
func NewMigrator(db *DB, dir string, logger zerolog.Logger) (*Migrator, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}
	if db.pool == nil {
		return nil, errors.New("database pool not initialized")
	}
	if dir == "" {
		return nil, errors.New("migrations path is required")
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("migrations path validation failed: %w", err)
	}

	shim := stdlib.OpenDBFromPool(db.pool)
	driver, err := postgres.WithInstance(shim, &postgres.Config{
		MigrationsTable: "schema_migrations",
	})
	if err != nil {
		return nil, fmt.Errorf("postgres migrate driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}

	return &Migrator{m: m, shim: shim, logger: logger.With().Str("component", "migrator").Logger()}, nil
}

// Up applies every pending migration. Already being at the latest version
// is not an error.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.logger.Info().Msg("schema already up to date")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}
	mg.logVersion("migrations applied")
	return nil
}

// Down rolls back every applied migration.
func (mg *Migrator) Down() error {
	if err := mg.m.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.logger.Info().Msg("nothing to roll back")
			return nil
		}
		return fmt.Errorf("rollback migrations: %w", err)
	}
	mg.logger.Warn().Msg("all migrations rolled back")
	return nil
}

// Steps migrates n versions forward when n is positive, backward when
// negative. Running off either end of the migration set is not an error.
func (mg *Migrator) Steps(n int) error {
	if err := mg.m.Steps(n); err != nil {
		if errors.Is(err, migrate.ErrNoChange) || errors.Is(err, os.ErrNotExist) {
			mg.logger.Info().Int("steps", n).Msg("no migrations in that direction")
			return nil
		}
		return fmt.Errorf("step migrations: %w", err)
	}
	mg.logVersion("migration steps applied")
	return nil
}

// Version reports the current schema version and whether a prior run left
// it dirty.
func (mg *Migrator) Version() (uint, bool, error) {
	return mg.m.Version()
}

// Force overwrites the recorded version without running any migration.
// Recovery tool for a dirty schema; use with care.
func (mg *Migrator) Force(version int) error {
	mg.logger.Warn().Int("version", version).Msg("forcing schema version")
	return mg.m.Force(version)
}

// Close releases the migration source and returns the borrowed connections
// to the pool.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	if mg.shim != nil {
		if err := mg.shim.Close(); err != nil && dbErr == nil {
			dbErr = err
		}
	}
	switch {
	case srcErr != nil && dbErr != nil:
		return fmt.Errorf("close migrator: source: %v, database: %w", srcErr, dbErr)
	case srcErr != nil:
		return fmt.Errorf("close migration source: %w", srcErr)
	case dbErr != nil:
		return fmt.Errorf("close migrator database: %w", dbErr)
	}
	return nil
}

func (mg *Migrator) logVersion(msg string) {
	if v, dirty, err := mg.m.Version(); err == nil {
		mg.logger.Info().Uint("version", v).Bool("dirty", dirty).Msg(msg)
		return
	}
	mg.logger.Info().Msg(msg)
}
