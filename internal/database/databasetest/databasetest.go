// Package databasetest opens a migrated, empty Postgres database for integration tests.
// Tests are skipped unless DATABASE_URL is set.
package databasetest

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/MrJamesThe3rd/sanctuary/internal/database"
)

func Open(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := database.New(dsn, 10)
	if err != nil {
		t.Fatalf("connecting: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	ctx := context.Background()

	// Packages run as parallel processes against one database; hold a lock for the whole test.
	conn, err := db.Conn(ctx)
	if err != nil {
		t.Fatalf("pinning connection: %v", err)
	}

	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock(hashtext('sanctuary_tests'))"); err != nil {
		t.Fatalf("locking test database: %v", err)
	}

	t.Cleanup(func() {
		conn.ExecContext(ctx, "SELECT pg_advisory_unlock(hashtext('sanctuary_tests'))")
		conn.Close()
	})

	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	const truncate = `TRUNCATE withdrawal_approvals, withdrawal_requests, allocations, payments, wallets RESTART IDENTITY CASCADE`
	if _, err := db.ExecContext(ctx, truncate); err != nil {
		t.Fatalf("truncating: %v", err)
	}

	return db
}
