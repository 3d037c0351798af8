package models

// WatchlistEntry pairs a watched symbol with its freshly looked-up quote
type WatchlistEntry struct {
	Symbol string `json:"symbol"`
	Quote  *Quote `json:"quote"`
}

// ToggleResult reports the watchlist state after a toggle
type ToggleResult struct {
	Symbol      string   `json:"symbol"`
	InWatchlist bool     `json:"in_watchlist"`
	Symbols     []string `json:"symbols"`
}
