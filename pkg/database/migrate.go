package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// MigrateUp applies every pending migration from migrationsPath (a migrate
// source URL such as "file://migrations").
func MigrateUp(databaseURL, migrationsPath string, logger *slog.Logger) error {
	return runMigrations(databaseURL, migrationsPath, logger, func(m *migrate.Migrate) error { return m.Up() })
}

// MigrateDown rolls back the given number of migrations.
func MigrateDown(databaseURL, migrationsPath string, steps int, logger *slog.Logger) error {
	return runMigrations(databaseURL, migrationsPath, logger, func(m *migrate.Migrate) error { return m.Steps(-steps) })
}

func runMigrations(databaseURL, migrationsPath string, logger *slog.Logger, apply func(*migrate.Migrate) error) error {
	// A plain sql.DB over the pgx stdlib driver, only for the migration run.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	err = apply(m)
	noChange := errors.Is(err, migrate.ErrNoChange)
	if err != nil && !noChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if version, dirty, verr := m.Version(); verr == nil {
		logger.Info("Migration state", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	}

	if noChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
