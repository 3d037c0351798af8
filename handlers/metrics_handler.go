package handlers

import (
	"github.com/fenilmodi00/stock-tracker/services"
	"github.com/fenilmodi00/stock-tracker/shared"
	"github.com/gofiber/fiber/v2"
)

type MetricsHandler struct {
	Metrics *shared.ServiceMetrics
	Quotes  *services.CachedQuoteSource
}

func NewMetricsHandler(metrics *shared.ServiceMetrics, quotes *services.CachedQuoteSource) *MetricsHandler {
	return &MetricsHandler{Metrics: metrics, Quotes: quotes}
}

// GetMetrics returns per-operation request metrics and cache size
func (h *MetricsHandler) GetMetrics(c *fiber.Ctx) error {
	data := fiber.Map{
		"operations": h.Metrics.GetSnapshot(),
	}
	if h.Quotes != nil {
		data["quote_cache_size"] = h.Quotes.Cache().Size()
	}
	return respondData(c, data)
}

func (h *MetricsHandler) ResetMetrics(c *fiber.Ctx) error {
	h.Metrics.Reset()
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Metrics reset",
	})
}
