package handlers

import (
	"github.com/fenilmodi00/stock-tracker/services"
	"github.com/fenilmodi00/stock-tracker/shared"
	"github.com/gofiber/fiber/v2"
)

type QuoteHandler struct {
	Session *services.Session
	Metrics *shared.ServiceMetrics
}

func NewQuoteHandler(session *services.Session, metrics *shared.ServiceMetrics) *QuoteHandler {
	return &QuoteHandler{Session: session, Metrics: metrics}
}

// Search runs a delayed, token-guarded lookup and draws the chart on success
func (h *QuoteHandler) Search(c *fiber.Ctx) error {
	var req symbolRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	done := h.Metrics.Track("search")
	result, err := h.Session.Search(c.UserContext(), req.Symbol)
	done(err)
	if err != nil {
		return respondError(c, err)
	}
	c.Set("X-Search-Token", result.Token)
	return respondData(c, result)
}

// GetQuote returns a quote without the simulated delay
func (h *QuoteHandler) GetQuote(c *fiber.Ctx) error {
	done := h.Metrics.Track("quote")
	quote, err := h.Session.Quote(c.UserContext(), c.Params("symbol"))
	done(err)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, quote)
}
