package credstore

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"

	_ "github.com/mattn/go-sqlite3"
)

// applySchema creates the identity service's credential tables via the
// embedded goose fixture.
func applySchema(db *sql.DB) error {
	goose.SetBaseFS(schemaFS)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}
	if err := goose.Up(db, "schema"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// CreateTestDB creates a credential database file with the service's
// schema under t.TempDir() and returns its path.
func CreateTestDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "db.sqlite")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("create test database: %v", err)
	}
	if err := applySchema(db); err != nil {
		_ = db.Close()
		t.Fatalf("apply schema: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close test database: %v", err)
	}
	return path
}

// OpenTestStore opens a Store over a fresh schema-complete database and
// returns it together with a raw handle for seeding and inspecting rows.
func OpenTestStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()

	path := CreateTestDB(t)
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	raw, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open raw handle: %v", err)
	}
	t.Cleanup(func() {
		_ = raw.Close()
		_ = store.Close()
	})
	return store, raw
}
