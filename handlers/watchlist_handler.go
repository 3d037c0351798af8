package handlers

import (
	"github.com/fenilmodi00/stock-tracker/services"
	"github.com/fenilmodi00/stock-tracker/shared"
	"github.com/gofiber/fiber/v2"
)

type WatchlistHandler struct {
	Session   *services.Session
	Snapshots *services.SnapshotService
	Metrics   *shared.ServiceMetrics
}

func NewWatchlistHandler(session *services.Session, snapshots *services.SnapshotService, metrics *shared.ServiceMetrics) *WatchlistHandler {
	return &WatchlistHandler{Session: session, Snapshots: snapshots, Metrics: metrics}
}

func (h *WatchlistHandler) GetWatchlist(c *fiber.Ctx) error {
	entries, err := h.Session.Watchlist(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    entries,
		"symbols": h.Session.WatchlistSymbols(),
	})
}

func (h *WatchlistHandler) Toggle(c *fiber.Ctx) error {
	var req symbolRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	done := h.Metrics.Track("watchlist_toggle")
	result, err := h.Session.ToggleWatchlist(c.UserContext(), req.Symbol)
	done(err)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, result)
}

// Remove backs the per-item remove control; removing an unwatched symbol is a no-op
func (h *WatchlistHandler) Remove(c *fiber.Ctx) error {
	done := h.Metrics.Track("watchlist_remove")
	result, err := h.Session.RemoveFromWatchlist(c.UserContext(), c.Params("symbol"))
	done(err)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, result)
}

// GetPanel returns the watchlist panel as an HTML fragment
func (h *WatchlistHandler) GetPanel(c *fiber.Ctx) error {
	entries, err := h.Session.Watchlist(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	panel, err := h.Snapshots.RenderPanel(entries)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(panel)
}

// GetSnapshot returns the watchlist panel rendered to PNG
func (h *WatchlistHandler) GetSnapshot(c *fiber.Ctx) error {
	entries, err := h.Session.Watchlist(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	done := h.Metrics.Track("watchlist_snapshot")
	png, err := h.Snapshots.RenderPNG(c.UserContext(), entries)
	done(err)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
