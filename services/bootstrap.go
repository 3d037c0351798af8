package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fenilmodi00/stock-tracker/config"
	"github.com/fenilmodi00/stock-tracker/database"
	"github.com/sirupsen/logrus"
)

// Runtime bundles the long-lived collaborators built from configuration
type Runtime struct {
	Store     KeyValueStore
	Quotes    *CachedQuoteSource
	Watchlist *WatchlistService
	Charts    *ChartRegistry
	Session   *Session
	Snapshots *SnapshotService

	db *sql.DB
}

// OpenKeyValueStore opens the storage backend selected by cfg. The returned db is
// nil for the memory backend.
func OpenKeyValueStore(cfg *config.Config) (KeyValueStore, *sql.DB, error) {
	switch cfg.Backend() {
	case config.StorageMemory:
		return NewMemoryStore(), nil, nil
	case config.StoragePostgres:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		store, err := NewSQLStore(db, database.DialectPostgres)
		if err != nil {
			database.Close(db)
			return nil, nil, err
		}
		return store, db, nil
	default:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		store, err := NewSQLStore(db, database.DialectSQLite)
		if err != nil {
			database.Close(db)
			return nil, nil, err
		}
		return store, db, nil
	}
}

// NewRuntime opens storage, loads the watchlist and wires the session
func NewRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	store, db, err := OpenKeyValueStore(cfg)
	if err != nil {
		return nil, err
	}

	rt := NewRuntimeWithStore(ctx, store, RuntimeOptions{
		HistoryDays:     cfg.GetHistoryDays(),
		SearchDelay:     cfg.GetSearchDelay(),
		QuoteCacheTTL:   cfg.GetQuoteCacheTTL(),
		SnapshotEnabled: cfg.SnapshotEnabled(),
	})
	rt.db = db

	logrus.WithFields(logrus.Fields{
		"storage_backend": cfg.Backend(),
		"history_days":    cfg.GetHistoryDays(),
		"search_delay":    cfg.GetSearchDelay(),
		"quote_cache_ttl": cfg.GetQuoteCacheTTL(),
		"watchlist_size":  len(rt.Watchlist.Symbols()),
	}).Info("Stock tracker runtime initialized")

	return rt, nil
}

// RuntimeOptions are the tunables NewRuntimeWithStore needs
type RuntimeOptions struct {
	HistoryDays     int
	SearchDelay     time.Duration
	QuoteCacheTTL   time.Duration
	SnapshotEnabled bool
	History         *HistoryGenerator
}

// NewRuntimeWithStore wires a runtime over an already opened store
func NewRuntimeWithStore(ctx context.Context, store KeyValueStore, opts RuntimeOptions) *Runtime {
	history := opts.History
	if history == nil {
		history = NewHistoryGenerator()
	}

	cacheConfig := config.DefaultCacheConfig()
	ttl := opts.QuoteCacheTTL
	if ttl <= 0 {
		ttl = cacheConfig.DefaultTTL
	}

	demo := NewDemoQuoteSource(history, opts.HistoryDays)
	quotes := NewCachedQuoteSource(demo, NewCacheService(ttl, cacheConfig.MaxSize))
	watchlist := LoadWatchlist(ctx, store, WatchlistKey)
	charts := NewChartRegistry()

	return &Runtime{
		Store:     store,
		Quotes:    quotes,
		Watchlist: watchlist,
		Charts:    charts,
		Session:   NewSession(quotes, watchlist, charts, WithSearchDelay(opts.SearchDelay)),
		Snapshots: NewSnapshotService(opts.SnapshotEnabled),
	}
}

// HealthCheck pings the SQL backend, if any
func (rt *Runtime) HealthCheck(ctx context.Context) error {
	if rt.db == nil {
		return nil
	}
	return database.HealthCheck(ctx, rt.db)
}

// Close releases the storage connection
func (rt *Runtime) Close() {
	database.Close(rt.db)
}
