package models

// HistorySample is one day of a quote's price series
type HistorySample struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Price float64 `json:"price"`
}

// Quote is a symbol's current market snapshot plus its price history
type Quote struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Price         float64         `json:"price"`
	Change        float64         `json:"change"`
	ChangePercent float64         `json:"change_percent"`
	MarketCap     string          `json:"market_cap"`
	Volume        string          `json:"volume"`
	DayHigh       float64         `json:"day_high"`
	DayLow        float64         `json:"day_low"`
	History       []HistorySample `json:"history"`
}

// IsPositive reports whether the quote moved up (or stayed flat) today
func (q *Quote) IsPositive() bool {
	return q.Change >= 0
}

// Summary returns the suggestion form of the quote
func (q *Quote) Summary() MarketSummary {
	return MarketSummary{
		Symbol:        q.Symbol,
		Name:          q.Name,
		Price:         q.Price,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
		IsPositive:    q.IsPositive(),
	}
}

// Clone returns a copy that shares nothing with q
func (q *Quote) Clone() *Quote {
	if q == nil {
		return nil
	}
	cp := *q
	cp.History = make([]HistorySample, len(q.History))
	copy(cp.History, q.History)
	return &cp
}

// SearchResult is the outcome of a delivered symbol search
type SearchResult struct {
	Token       string `json:"token"`
	Quote       *Quote `json:"quote"`
	InWatchlist bool   `json:"in_watchlist"`
}
