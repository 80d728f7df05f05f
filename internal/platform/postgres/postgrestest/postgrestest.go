// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package postgrestest opens a migrated PostgreSQL pool for store tests.

Tests that call [Pool] are skipped unless SHELF_TEST_DATABASE_URL points at a
disposable database. The schema is migrated to the latest version on first use.
*/
package postgrestest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-shelf/internal/platform/migration"
	"github.com/taibuivan/yomira-shelf/internal/platform/postgres"
	"github.com/taibuivan/yomira-shelf/pkg/uuid"
)

// EnvDatabaseURL names the variable holding the test DSN.
const EnvDatabaseURL = "SHELF_TEST_DATABASE_URL"

func migrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "data", "migrations")
}

// Pool returns a migrated pool closed at test cleanup, or skips the test.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		t.Skipf("%s not set", EnvDatabaseURL)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migration.RunUp(dsn, migrationsPath(), logger))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn, 5*time.Second, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

// SeedOwner inserts a throwaway account and removes it, with everything it owns, at cleanup.
func SeedOwner(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users.account (id, email, passwordhash) VALUES ($1, $2, 'x')`,
		id, fmt.Sprintf("%s@shelf.test", id))
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM users.account WHERE id = $1`, id)
	})
	return id
}
