// Package testutil provides helpers shared by database-backed tests.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stocktake/stocktake/internal/database"
)

// TestDB is an in-memory database with the full schema applied.
type TestDB struct {
	*sql.DB
	store *database.DB
}

// NewTestDB opens an in-memory SQLite database and runs the embedded
// migrations against it.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := database.NewInMemory()
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	migrator, err := database.NewMigrator(store)
	if err != nil {
		t.Fatalf("failed to create migrator: %v", err)
	}
	if _, err := migrator.MigrateUp(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &TestDB{DB: store.DB, store: store}
}

// Store returns the wrapped database handle.
func (tdb *TestDB) Store() *database.DB {
	return tdb.store
}

// Close closes the test database.
func (tdb *TestDB) Close(t *testing.T) {
	t.Helper()

	if err := tdb.store.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}

// AssertRowCount asserts the row count for a table.
func (tdb *TestDB) AssertRowCount(t *testing.T, table string, expected int) {
	t.Helper()

	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := tdb.QueryRow(query).Scan(&count); err != nil {
		t.Fatalf("failed to count rows in %s: %v", table, err)
	}

	if count != expected {
		t.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
}

// ExecSQL executes arbitrary SQL for test setup.
func (tdb *TestDB) ExecSQL(t *testing.T, query string, args ...any) {
	t.Helper()

	if _, err := tdb.Exec(query, args...); err != nil {
		t.Fatalf("failed to execute SQL: %v\nSQL: %s", err, query)
	}
}
