package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fenilmodi00/stock-tracker/database"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	store, err := NewSQLStore(db, database.DialectSQLite)
	if err != nil {
		t.Fatalf("new sql store: %v", err)
	}
	return store
}

func exerciseKeyValueStore(t *testing.T, store KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	if _, found, err := store.Load(ctx, "missing"); err != nil || found {
		t.Fatalf("expected missing key to be not found, got found=%v err=%v", found, err)
	}

	if err := store.Save(ctx, WatchlistKey, []byte(`["AAPL"]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, WatchlistKey, []byte(`["AAPL","TSLA"]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	value, found, err := store.Load(ctx, WatchlistKey)
	if err != nil || !found {
		t.Fatalf("expected key to be found, got found=%v err=%v", found, err)
	}
	if string(value) != `["AAPL","TSLA"]` {
		t.Errorf("expected overwritten value, got %s", value)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	exerciseKeyValueStore(t, store)
	if store.SaveCount() != 2 {
		t.Errorf("expected 2 saves, got %d", store.SaveCount())
	}
}

func TestSQLiteStore(t *testing.T) {
	exerciseKeyValueStore(t, newSQLiteStore(t))
}

func TestSQLiteStoreWatchlistSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "watchlist.db")

	db, err := database.OpenSQLite(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store, err := NewSQLStore(db, database.DialectSQLite)
	if err != nil {
		t.Fatalf("new sql store: %v", err)
	}
	w := LoadWatchlist(ctx, store, WatchlistKey)
	w.Toggle(ctx, "GOOGL")
	w.Toggle(ctx, "AMZN")
	database.Close(db)

	db, err = database.OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer database.Close(db)
	store, err = NewSQLStore(db, database.DialectSQLite)
	if err != nil {
		t.Fatalf("new sql store: %v", err)
	}

	reloaded := LoadWatchlist(ctx, store, WatchlistKey)
	if got := reloaded.Symbols(); len(got) != 2 || got[0] != "GOOGL" || got[1] != "AMZN" {
		t.Errorf("expected [GOOGL AMZN] after reopen, got %v", got)
	}
}

func TestPostgresStore(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("Skipping postgres store test - TEST_DATABASE_URL not set")
	}

	db, err := database.Connect(dbURL)
	if err != nil {
		t.Skipf("Skipping postgres store test - database not available: %v", err)
	}
	defer database.Close(db)

	store, err := NewSQLStore(db, database.DialectPostgres)
	if err != nil {
		t.Fatalf("new sql store: %v", err)
	}
	if _, err := db.Exec("DELETE FROM kv_store WHERE key IN ($1, $2)", WatchlistKey, "missing"); err != nil {
		t.Fatalf("reset kv_store: %v", err)
	}
	exerciseKeyValueStore(t, store)
}
