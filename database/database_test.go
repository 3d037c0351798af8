package database

import (
	"path/filepath"
	"testing"
)

func TestParseSQLStatements(t *testing.T) {
	content := `
-- first
CREATE TABLE a (
	id TEXT
);
-- second
CREATE INDEX a_id ON a (id);
SELECT 1`

	stmts := parseSQLStatements(content)
	want := []string{
		"CREATE TABLE a ( id TEXT )",
		"CREATE INDEX a_id ON a (id)",
		"SELECT 1",
	}
	if len(stmts) != len(want) {
		t.Fatalf("expected %d statements, got %d: %q", len(want), len(stmts), stmts)
	}
	for i := range want {
		if stmts[i] != want[i] {
			t.Errorf("statement %d = %q, want %q", i, stmts[i], want[i])
		}
	}
}

func TestDialectPlaceholder(t *testing.T) {
	if got := DialectPostgres.Placeholder(2); got != "$2" {
		t.Errorf("postgres placeholder = %q, want $2", got)
	}
	if got := DialectSQLite.Placeholder(2); got != "?" {
		t.Errorf("sqlite placeholder = %q, want ?", got)
	}
}

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer Close(db)

	if err := Migrate(db, KVSchema); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// a second run against the existing schema is harmless
	if err := Migrate(db, KVSchema); err != nil {
		t.Fatalf("re-migrate: %v", err)
	}

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("expected WAL journal mode, got %s", mode)
	}
}

func TestConnectRequiresURL(t *testing.T) {
	if _, err := Connect("  "); err == nil {
		t.Errorf("expected an error for an empty database url")
	}
	if _, err := OpenSQLite(""); err == nil {
		t.Errorf("expected an error for an empty sqlite path")
	}
}
