package handlers

import (
	"github.com/fenilmodi00/stock-tracker/services"
	"github.com/gofiber/fiber/v2"
)

type ChartHandler struct {
	Session *services.Session
}

func NewChartHandler(session *services.Session) *ChartHandler {
	return &ChartHandler{Session: session}
}

type timeframeRequest struct {
	Timeframe string `json:"timeframe"`
}

func (h *ChartHandler) GetChart(c *fiber.Ctx) error {
	chart, ok := h.Session.Chart()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "No chart drawn yet",
		})
	}
	return respondData(c, chart)
}

// ChangeTimeframe switches the selected timeframe; the data does not change
func (h *ChartHandler) ChangeTimeframe(c *fiber.Ctx) error {
	var req timeframeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	chart, err := h.Session.ChangeTimeframe(req.Timeframe)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"timeframe":  h.Session.Timeframe(),
		"timeframes": services.Timeframes,
		"data":       chart,
	})
}
