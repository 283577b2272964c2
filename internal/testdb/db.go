// Package testdb provides utilities for database-backed tests. Tests
// that need a real PostgreSQL instance are gated on an environment
// variable and skip cleanly when it is absent, so the unit suite runs
// anywhere.
package testdb

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"taskapp/internal/platform/postgres"
)

// connectTimeout bounds the initial ping when opening a test database.
const connectTimeout = 5 * time.Second

// URL returns the database URL for integration tests. It checks
// DATABASE_URL and TASKAPP_TEST_DB_URL in that order, returning the
// first non-empty value.
func URL() string {
	if u := os.Getenv("DATABASE_URL"); u != "" {
		return u
	}
	return os.Getenv("TASKAPP_TEST_DB_URL")
}

// IsIntegrationTestEnvironment reports whether a test database URL is
// configured.
func IsIntegrationTestEnvironment() bool {
	return URL() != ""
}

// Open connects to the configured test database, runs the embedded
// migrations, and registers cleanup. Tests calling Open are skipped
// when no test database is configured.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	if !IsIntegrationTestEnvironment() {
		t.Skip("integration test: set DATABASE_URL or TASKAPP_TEST_DB_URL to run")
	}

	db, err := sql.Open("pgx", URL())
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "test database is unreachable")

	goose.SetLogger(&gooseTestLogger{t: t})
	goose.SetBaseFS(postgres.Migrations)
	require.NoError(t, goose.Up(db, postgres.MigrationsDir), "failed to run migrations")

	return db
}

// Reset empties the tasks table and restarts id assignment, giving
// each test a deterministic starting point.
func Reset(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec(`TRUNCATE TABLE tasks RESTART IDENTITY`)
	require.NoError(t, err, "failed to reset tasks table")
}

// gooseTestLogger routes goose output through the test log.
type gooseTestLogger struct {
	t *testing.T
}

func (l *gooseTestLogger) Fatalf(format string, v ...interface{}) {
	l.t.Fatalf(format, v...)
}

func (l *gooseTestLogger) Printf(format string, v ...interface{}) {
	l.t.Logf(format, v...)
}
