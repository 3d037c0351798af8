package handlers

import (
	"github.com/fenilmodi00/stock-tracker/services"
	"github.com/gofiber/fiber/v2"
)

type MarketHandler struct {
	Quotes services.QuoteSource
}

func NewMarketHandler(quotes services.QuoteSource) *MarketHandler {
	return &MarketHandler{Quotes: quotes}
}

// GetSymbols returns every known symbol with its price summary
func (h *MarketHandler) GetSymbols(c *fiber.Ctx) error {
	summaries, err := services.MarketSummaries(c.UserContext(), h.Quotes)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, summaries)
}
