package services

import (
	"context"
	"strings"

	"github.com/fenilmodi00/stock-tracker/models"
	"github.com/fenilmodi00/stock-tracker/shared"
)

const quoteServiceName = "quote-service"

// QuoteSource looks up quotes by normalized symbol. A miss returns a
// SYMBOL_NOT_FOUND ServiceError.
type QuoteSource interface {
	Lookup(ctx context.Context, symbol string) (*models.Quote, error)
	Symbols() []string
}

// NormalizeSymbol trims and upper-cases user input, rejecting blank input
func NormalizeSymbol(input string) (string, error) {
	symbol := strings.ToUpper(strings.TrimSpace(input))
	if symbol == "" {
		return "", shared.NewEmptyInputError(quoteServiceName, "normalize_symbol")
	}
	return symbol, nil
}

// DemoQuoteSource serves a fixed table of seeded quotes
type DemoQuoteSource struct {
	order  []string
	quotes map[string]*models.Quote
}

// demoSeeds is the static snapshot each demo quote starts from
var demoSeeds = []models.Quote{
	{Symbol: "AAPL", Name: "Apple Inc.", Price: 175.43, Change: 2.15, ChangePercent: 1.24, MarketCap: "2.8T", Volume: "58.2M", DayHigh: 176.80, DayLow: 174.20},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Price: 142.65, Change: -1.23, ChangePercent: -0.85, MarketCap: "1.8T", Volume: "28.5M", DayHigh: 144.10, DayLow: 141.90},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Price: 378.85, Change: 3.42, ChangePercent: 0.91, MarketCap: "2.9T", Volume: "22.1M", DayHigh: 380.50, DayLow: 376.20},
	{Symbol: "TSLA", Name: "Tesla, Inc.", Price: 238.45, Change: -5.67, ChangePercent: -2.32, MarketCap: "758B", Volume: "45.8M", DayHigh: 245.30, DayLow: 237.10},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Price: 178.35, Change: 1.89, ChangePercent: 1.07, MarketCap: "1.8T", Volume: "35.2M", DayHigh: 179.80, DayLow: 176.90},
}

// NewDemoQuoteSource builds the demo table, generating each quote's history once
func NewDemoQuoteSource(generator *HistoryGenerator, days int) *DemoQuoteSource {
	source := &DemoQuoteSource{
		order:  make([]string, 0, len(demoSeeds)),
		quotes: make(map[string]*models.Quote, len(demoSeeds)),
	}

	for _, seed := range demoSeeds {
		quote := seed
		quote.History = generator.Generate(seed.Price, days)
		source.order = append(source.order, quote.Symbol)
		source.quotes[quote.Symbol] = &quote
	}

	return source
}

// Lookup returns a copy of the quote for symbol
func (s *DemoQuoteSource) Lookup(ctx context.Context, symbol string) (*models.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	quote, ok := s.quotes[symbol]
	if !ok {
		return nil, shared.NewSymbolNotFoundError(symbol, s.Symbols(), quoteServiceName, "lookup")
	}
	return quote.Clone(), nil
}

// Symbols returns the table's symbols in display order
func (s *DemoQuoteSource) Symbols() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// MarketSummaries returns a summary for every symbol the source knows
func MarketSummaries(ctx context.Context, source QuoteSource) ([]models.MarketSummary, error) {
	symbols := source.Symbols()
	summaries := make([]models.MarketSummary, 0, len(symbols))
	for _, symbol := range symbols {
		quote, err := source.Lookup(ctx, symbol)
		if err != nil {
			if shared.IsErrorCode(err, shared.CodeSymbolNotFound) {
				continue
			}
			return nil, err
		}
		summaries = append(summaries, quote.Summary())
	}
	return summaries, nil
}
