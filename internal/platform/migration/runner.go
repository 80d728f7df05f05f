// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration wraps golang-migrate for the shelf schema.
//
// The API server runs [RunUp] at boot; shelfctl exposes the same runner as
// "migrate up" and "migrate version".
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers the "pgx5" scheme.
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

func open(dsn, migrationsPath string, logger *slog.Logger) (*migrate.Migrate, func(), error) {
	migrator, err := migrate.New("file://"+migrationsPath, ToPgx5DSN(dsn))
	if err != nil {
		return nil, nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}
	migrator.Log = &migrateLogger{logger: logger}

	closeFn := func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}
	return migrator, closeFn, nil
}

// RunUp applies all pending UP migrations. A dirty schema is refused.
func RunUp(dsn, migrationsPath string, logger *slog.Logger) error {
	migrator, closeFn, err := open(dsn, migrationsPath, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	currentVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}
	if isDirty {
		return fmt.Errorf("migration: database is dirty at version %d, manual intervention required", currentVersion)
	}

	logger.Info("migration_started", slog.Uint64("current_version", uint64(currentVersion)))

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	newVersion, _, _ := migrator.Version()
	logger.Info("migration_successful",
		slog.Uint64("from_version", uint64(currentVersion)),
		slog.Uint64("to_version", uint64(newVersion)),
	)
	return nil
}

// Version reports the schema version without applying anything.
func Version(dsn, migrationsPath string, logger *slog.Logger) (Status, error) {
	migrator, closeFn, err := open(dsn, migrationsPath, logger)
	if err != nil {
		return Status{}, err
	}
	defer closeFn()

	version, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return Status{Empty: true}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("migration: failed to get version: %w", err)
	}
	return Status{Version: version, Dirty: dirty}, nil
}

// ToPgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme golang-migrate expects.
func ToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, found := strings.CutPrefix(dsn, prefix); found {
			return "pgx5://" + rest
		}
	}
	return dsn
}

type migrateLogger struct {
	logger  *slog.Logger
	verbose bool
}

func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *migrateLogger) Verbose() bool {
	return l.verbose
}
