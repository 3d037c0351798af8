package services

import (
	"context"
	"sync"
	"time"

	"github.com/fenilmodi00/stock-tracker/models"
	"github.com/fenilmodi00/stock-tracker/shared"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const sessionServiceName = "session"

// DefaultSearchDelay models quote fetch latency
const DefaultSearchDelay = time.Second

// Session is the viewer's state: the symbol on screen, the latest search token,
// the watchlist and the chart. Handlers act only through it.
type Session struct {
	quotes    QuoteSource
	watchlist *WatchlistService
	charts    ChartRenderer
	delay     time.Duration
	newToken  func() string

	mutex         sync.Mutex
	latestToken   string
	currentSymbol string
	currentQuote  *models.Quote
	timeframe     string
	chart         *models.ChartSpec
}

// SessionOption customizes a Session
type SessionOption func(*Session)

// WithSearchDelay overrides the simulated fetch latency
func WithSearchDelay(delay time.Duration) SessionOption {
	return func(s *Session) {
		if delay >= 0 {
			s.delay = delay
		}
	}
}

// WithTokenGenerator overrides how search tokens are issued
func WithTokenGenerator(fn func() string) SessionOption {
	return func(s *Session) {
		if fn != nil {
			s.newToken = fn
		}
	}
}

// NewSession wires a session over its collaborators
func NewSession(quotes QuoteSource, watchlist *WatchlistService, charts ChartRenderer, opts ...SessionOption) *Session {
	s := &Session{
		quotes:    quotes,
		watchlist: watchlist,
		charts:    charts,
		delay:     DefaultSearchDelay,
		newToken:  uuid.NewString,
		timeframe: DefaultTimeframe,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search normalizes input, waits the fetch delay and looks the symbol up. Only the
// most recently issued search is delivered: an earlier one still waiting when a
// newer search starts returns STALE_REQUEST and leaves the session untouched.
// Blank input fails with EMPTY_INPUT before any token is issued.
func (s *Session) Search(ctx context.Context, input string) (*models.SearchResult, error) {
	symbol, err := NormalizeSymbol(input)
	if err != nil {
		return nil, err
	}

	token := s.issueToken()
	logger := logrus.WithFields(logrus.Fields{
		"component": "Session",
		"symbol":    symbol,
		"token":     token,
	})

	if err := s.wait(ctx); err != nil {
		logger.Debug("Search cancelled before delivery")
		return nil, shared.NewServiceError(shared.ErrorCategoryTimeout, shared.CodeRequestCancelled,
			"search cancelled", sessionServiceName, "search", true, err)
	}

	quote, lookupErr := s.quotes.Lookup(ctx, symbol)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if token != s.latestToken {
		logger.Debug("Discarding stale search result")
		return nil, shared.NewServiceError(shared.ErrorCategorySuperseded, shared.CodeStaleRequest,
			"search superseded by a newer request", sessionServiceName, "search", false, nil).
			WithDetails(map[string]string{"symbol": symbol, "token": token})
	}
	if lookupErr != nil {
		return nil, lookupErr
	}

	s.currentSymbol = symbol
	s.currentQuote = quote
	rendered := s.charts.Render(BuildPriceChart(symbol, quote.History, s.timeframe))
	s.chart = &rendered

	return &models.SearchResult{
		Token:       token,
		Quote:       quote.Clone(),
		InWatchlist: s.watchlist.Contains(symbol),
	}, nil
}

// ChangeTimeframe selects a timeframe and redraws the current symbol's chart with
// the same history. With no symbol on screen it only records the selection.
func (s *Session) ChangeTimeframe(timeframe string) (*models.ChartSpec, error) {
	if err := ValidateTimeframe(timeframe); err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.timeframe = timeframe
	if s.currentQuote == nil {
		return nil, nil
	}

	rendered := s.charts.Render(BuildPriceChart(s.currentSymbol, s.currentQuote.History, timeframe))
	s.chart = &rendered
	cp := rendered
	return &cp, nil
}

// ToggleWatchlist adds or removes input's symbol from the watchlist
func (s *Session) ToggleWatchlist(ctx context.Context, input string) (*models.ToggleResult, error) {
	symbol, err := NormalizeSymbol(input)
	if err != nil {
		return nil, err
	}

	watched, err := s.watchlist.Toggle(ctx, symbol)
	result := &models.ToggleResult{
		Symbol:      symbol,
		InWatchlist: watched,
		Symbols:     s.watchlist.Symbols(),
	}
	return result, err
}

// RemoveFromWatchlist removes symbol if it is watched; otherwise it is a no-op
func (s *Session) RemoveFromWatchlist(ctx context.Context, input string) (*models.ToggleResult, error) {
	symbol, err := NormalizeSymbol(input)
	if err != nil {
		return nil, err
	}

	if s.watchlist.Contains(symbol) {
		if _, err := s.watchlist.Toggle(ctx, symbol); err != nil {
			return nil, err
		}
	}
	return &models.ToggleResult{
		Symbol:      symbol,
		InWatchlist: false,
		Symbols:     s.watchlist.Symbols(),
	}, nil
}

// Watchlist renders the watchlist panel entries
func (s *Session) Watchlist(ctx context.Context) ([]models.WatchlistEntry, error) {
	return s.watchlist.Render(ctx, s.quotes)
}

// WatchlistSymbols returns the raw watched symbols
func (s *Session) WatchlistSymbols() []string {
	return s.watchlist.Symbols()
}

// Quote looks a symbol up directly, without delay or token
func (s *Session) Quote(ctx context.Context, input string) (*models.Quote, error) {
	symbol, err := NormalizeSymbol(input)
	if err != nil {
		return nil, err
	}
	return s.quotes.Lookup(ctx, symbol)
}

// Quotes exposes the session's quote source
func (s *Session) Quotes() QuoteSource {
	return s.quotes
}

// CurrentSymbol returns the symbol on screen, empty before the first delivered search
func (s *Session) CurrentSymbol() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.currentSymbol
}

// Timeframe returns the selected timeframe
func (s *Session) Timeframe() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.timeframe
}

// Chart returns the chart currently drawn for the session
func (s *Session) Chart() (*models.ChartSpec, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.chart == nil {
		return nil, false
	}
	cp := *s.chart
	return &cp, true
}

func (s *Session) issueToken() string {
	token := s.newToken()

	s.mutex.Lock()
	s.latestToken = token
	s.mutex.Unlock()

	return token
}

func (s *Session) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsStale reports whether err means a newer search replaced this one
func IsStale(err error) bool {
	return shared.IsErrorCode(err, shared.CodeStaleRequest)
}
