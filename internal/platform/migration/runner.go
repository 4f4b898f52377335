// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration wraps golang-migrate for the schema under data/migrations.
//
// The API server applies pending migrations at startup; the admin CLI also
// exposes step-wise rollback and version inspection.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Status describes the schema version currently recorded in the database.
type Status struct {
	Version uint
	Dirty   bool
	Empty   bool
}

// RunUp applies all pending UP migrations.
func RunUp(dsn, migrationsPath string, logger *slog.Logger) error {
	return withMigrator(dsn, migrationsPath, logger, func(migrator *migrate.Migrate) error {
		from, err := currentStatus(migrator)
		if err != nil {
			return err
		}
		if from.Dirty {
			return fmt.Errorf("migration: database is dirty at version %d (manual intervention required)", from.Version)
		}

		logger.Info("migration_started", slog.Int("current_version", int(from.Version)))

		if err := migrator.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				logger.Info("migration_already_up_to_date")
				return nil
			}
			return fmt.Errorf("migration: up failed: %w", err)
		}

		to, _ := currentStatus(migrator)
		logger.Info("migration_successful",
			slog.Int("from_version", int(from.Version)),
			slog.Int("to_version", int(to.Version)),
		)
		return nil
	})
}

// RunDown rolls back the given number of migrations.
func RunDown(dsn, migrationsPath string, steps int, logger *slog.Logger) error {
	if steps <= 0 {
		return fmt.Errorf("migration: steps must be positive, got %d", steps)
	}
	return withMigrator(dsn, migrationsPath, logger, func(migrator *migrate.Migrate) error {
		if err := migrator.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration: down failed: %w", err)
		}
		logger.Info("migration_rolled_back", slog.Int("steps", steps))
		return nil
	})
}

// Version reports the current schema version.
func Version(dsn, migrationsPath string, logger *slog.Logger) (Status, error) {
	var status Status
	err := withMigrator(dsn, migrationsPath, logger, func(migrator *migrate.Migrate) error {
		var err error
		status, err = currentStatus(migrator)
		return err
	})
	return status, err
}

func withMigrator(dsn, migrationsPath string, logger *slog.Logger, fn func(*migrate.Migrate) error) error {
	migrator, err := migrate.New("file://"+migrationsPath, ToPgx5DSN(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	migrator.Log = &migrateLogger{logger: logger}
	return fn(migrator)
}

func currentStatus(migrator *migrate.Migrate) (Status, error) {
	version, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return Status{Empty: true}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("migration: failed to get current version: %w", err)
	}
	return Status{Version: version, Dirty: dirty}, nil
}

// ToPgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme
// expected by the golang-migrate pgx/v5 driver. Other inputs are returned as is.
func ToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger *slog.Logger
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return false
}
