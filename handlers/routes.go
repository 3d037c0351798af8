package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/fenilmodi00/stock-tracker/services"
	"github.com/fenilmodi00/stock-tracker/shared"
	"github.com/fenilmodi00/stock-tracker/web"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// NewApp builds the Fiber app with every route wired to rt
func NewApp(rt *services.Runtime, metrics *shared.ServiceMetrics) *fiber.App {
	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		if err := rt.HealthCheck(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":    "degraded",
				"error":     err.Error(),
				"timestamp": time.Now().Unix(),
			})
		}
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	quoteHandler := NewQuoteHandler(rt.Session, metrics)
	marketHandler := NewMarketHandler(rt.Quotes)
	watchlistHandler := NewWatchlistHandler(rt.Session, rt.Snapshots, metrics)
	chartHandler := NewChartHandler(rt.Session)
	metricsHandler := NewMetricsHandler(metrics, rt.Quotes)

	api := app.Group("/api/v1")

	// Quote Routes
	api.Post("/search", quoteHandler.Search)
	api.Get("/quotes/:symbol", quoteHandler.GetQuote)

	// Market Routes
	api.Get("/market/symbols", marketHandler.GetSymbols)

	// Watchlist Routes
	api.Get("/watchlist", watchlistHandler.GetWatchlist)
	api.Post("/watchlist/toggle", watchlistHandler.Toggle)
	api.Get("/watchlist/panel", watchlistHandler.GetPanel)
	api.Get("/watchlist/snapshot.png", watchlistHandler.GetSnapshot)
	api.Delete("/watchlist/:symbol", watchlistHandler.Remove)

	// Chart Routes
	api.Get("/chart", chartHandler.GetChart)
	api.Post("/chart/timeframe", chartHandler.ChangeTimeframe)

	// Metrics Routes
	api.Get("/metrics", metricsHandler.GetMetrics)
	api.Delete("/metrics", metricsHandler.ResetMetrics)

	app.Use("/", filesystem.New(filesystem.Config{
		Root:  http.FS(web.Assets),
		Index: "index.html",
	}))

	return app
}
