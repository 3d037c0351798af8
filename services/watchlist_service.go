package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/fenilmodi00/stock-tracker/models"
	"github.com/fenilmodi00/stock-tracker/shared"
	"github.com/sirupsen/logrus"
)

const (
	// WatchlistKey is the storage key holding the serialized watchlist
	WatchlistKey = "stockWatchlist"

	watchlistServiceName = "watchlist-service"
)

// WatchlistService is an ordered set of symbols persisted in full after every toggle
type WatchlistService struct {
	mutex   sync.RWMutex
	store   KeyValueStore
	key     string
	symbols []string
}

// LoadWatchlist reads the persisted watchlist under key. Missing, unreadable or
// malformed data yields an empty watchlist; it never fails.
func LoadWatchlist(ctx context.Context, store KeyValueStore, key string) *WatchlistService {
	logger := logrus.WithFields(logrus.Fields{
		"component": "WatchlistService",
		"key":       key,
	})

	w := &WatchlistService{store: store, key: key, symbols: []string{}}

	raw, found, err := store.Load(ctx, key)
	if err != nil {
		logger.WithError(err).Warn("Failed to read watchlist, starting empty")
		return w
	}
	if !found {
		return w
	}

	var stored []string
	if err := json.Unmarshal(raw, &stored); err != nil {
		logger.WithError(err).Warn("Malformed watchlist data, starting empty")
		return w
	}

	seen := make(map[string]struct{}, len(stored))
	for _, symbol := range stored {
		if _, dup := seen[symbol]; dup {
			continue
		}
		seen[symbol] = struct{}{}
		w.symbols = append(w.symbols, symbol)
	}

	logger.WithField("count", len(w.symbols)).Info("Loaded watchlist")
	return w
}

// Contains reports whether symbol is watched
func (w *WatchlistService) Contains(symbol string) bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	return w.indexOf(symbol) >= 0
}

// Symbols returns the watched symbols in insertion order
func (w *WatchlistService) Symbols() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	out := make([]string, len(w.symbols))
	copy(out, w.symbols)
	return out
}

// Toggle removes symbol if present, otherwise appends it, then persists the whole
// list. It reports whether symbol is watched afterwards. A failed write is
// returned but the in-memory change is kept.
func (w *WatchlistService) Toggle(ctx context.Context, symbol string) (bool, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	added := false
	if idx := w.indexOf(symbol); idx >= 0 {
		w.symbols = append(w.symbols[:idx], w.symbols[idx+1:]...)
	} else {
		w.symbols = append(w.symbols, symbol)
		added = true
	}

	if err := w.persist(ctx); err != nil {
		return added, err
	}
	return added, nil
}

// Render pairs each watched symbol with a fresh lookup, in watchlist order.
// Symbols with no matching quote are dropped.
func (w *WatchlistService) Render(ctx context.Context, source QuoteSource) ([]models.WatchlistEntry, error) {
	symbols := w.Symbols()

	entries := make([]models.WatchlistEntry, 0, len(symbols))
	for _, symbol := range symbols {
		quote, err := source.Lookup(ctx, symbol)
		if err != nil {
			if shared.IsErrorCode(err, shared.CodeSymbolNotFound) {
				continue
			}
			return nil, err
		}
		entries = append(entries, models.WatchlistEntry{Symbol: symbol, Quote: quote})
	}
	return entries, nil
}

func (w *WatchlistService) indexOf(symbol string) int {
	for i, s := range w.symbols {
		if s == symbol {
			return i
		}
	}
	return -1
}

// persist must be called with the write lock held
func (w *WatchlistService) persist(ctx context.Context) error {
	payload, err := json.Marshal(w.symbols)
	if err != nil {
		return shared.NewServiceError(shared.ErrorCategoryDatabase, shared.CodeStorageWriteFailed,
			"failed to encode watchlist", watchlistServiceName, "persist", false, err)
	}

	if err := w.store.Save(ctx, w.key, payload); err != nil {
		serviceErr := shared.WrapError(err, shared.ErrorCategoryDatabase, shared.CodeStorageWriteFailed,
			watchlistServiceName, "persist", true)
		serviceErr.LogError()
		return serviceErr
	}
	return nil
}
