// Command migrate applies or rolls back the database schema migrations.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsnexus/news-api/internal/config"
	"github.com/newsnexus/news-api/internal/database"
	"github.com/newsnexus/news-api/internal/observability"
)

type options struct {
	up      bool
	down    bool
	steps   int
	version bool
	force   int
	dir     string
}

func parseFlags() (options, error) {
	var opts options
	flag.BoolVar(&opts.up, "up", false, "apply all pending migrations")
	flag.BoolVar(&opts.down, "down", false, "roll back all migrations")
	flag.IntVar(&opts.steps, "steps", 0, "migrate N versions (negative rolls back)")
	flag.BoolVar(&opts.version, "version", false, "print the current schema version")
	flag.IntVar(&opts.force, "force", -1, "overwrite the recorded schema version")
	flag.StringVar(&opts.dir, "path", "", "migrations directory (defaults to configured path)")
	flag.Parse()

	chosen := 0
	for _, set := range []bool{opts.up, opts.down, opts.steps != 0, opts.version, opts.force >= 0} {
		if set {
			chosen++
		}
	}
	switch {
	case chosen == 0:
		flag.Usage()
		return opts, errors.New("specify one of: -up, -down, -steps N, -version, -force V")
	case chosen > 1:
		return opts, errors.New("specify only one action at a time")
	}
	return opts, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	opts, err := parseFlags()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// CLI output goes to the console whatever the service log format is.
	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	}).With().Str("component", "migrate").Logger()

	dir := cfg.Database.MigrationPath
	if opts.dir != "" {
		dir = opts.dir
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.New(ctx, &cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db, dir, logger)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close migrator")
		}
	}()

	switch {
	case opts.up:
		err = migrator.Up()
	case opts.down:
		err = migrator.Down()
	case opts.steps != 0:
		err = migrator.Steps(opts.steps)
	case opts.force >= 0:
		err = migrator.Force(opts.force)
	}
	if err != nil {
		return err
	}

	reportVersion(migrator, logger)
	return nil
}

func reportVersion(migrator *database.Migrator, logger zerolog.Logger) {
	v, dirty, err := migrator.Version()
	if err != nil {
		logger.Warn().Err(err).Msg("could not determine schema version")
		return
	}
	logger.Info().Uint("version", v).Bool("dirty", dirty).Msg("current schema version")
}
