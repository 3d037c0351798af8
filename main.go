package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fenilmodi00/stock-tracker/config"
	"github.com/fenilmodi00/stock-tracker/handlers"
	"github.com/fenilmodi00/stock-tracker/jobs"
	"github.com/fenilmodi00/stock-tracker/services"
	"github.com/fenilmodi00/stock-tracker/shared"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load config
	cfg := config.LoadConfig()
	shared.ConfigureLogging(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open storage, load the watchlist and wire the session
	rt, err := services.NewRuntime(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}
	defer rt.Close()

	metrics := shared.NewServiceMetrics("stock-tracker")

	// Background jobs
	cacheConfig := config.DefaultCacheConfig()
	jobs.NewCacheCleanupJob(rt.Quotes.Cache()).Start(ctx, cacheConfig.CleanupInterval)

	app := handlers.NewApp(rt, metrics)

	go func() {
		<-ctx.Done()
		logrus.Info("Shutting down server")
		metrics.LogSummary()
		if err := app.Shutdown(); err != nil {
			logrus.WithError(err).Warn("Server shutdown failed")
		}
	}()

	// Start server
	logrus.Infof("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
