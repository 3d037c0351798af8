package config

import (
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{
		ServerPort:           "8080",
		StorageBackend:       StorageSQLite,
		SearchDelayMS:        "1000",
		HistoryDays:          "30",
		QuoteCacheTTLSeconds: "300",
		ChromeSnapshot:       "true",
	}

	if cfg.GetSearchDelay() != time.Second {
		t.Errorf("expected 1s search delay, got %v", cfg.GetSearchDelay())
	}
	if cfg.GetHistoryDays() != 30 {
		t.Errorf("expected 30 history days, got %d", cfg.GetHistoryDays())
	}
	if cfg.GetQuoteCacheTTL() != 5*time.Minute {
		t.Errorf("expected 5m cache TTL, got %v", cfg.GetQuoteCacheTTL())
	}
	if !cfg.SnapshotEnabled() {
		t.Errorf("expected snapshots enabled by default")
	}
	if cfg.Backend() != StorageSQLite {
		t.Errorf("expected sqlite backend, got %s", cfg.Backend())
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_BACKEND", " Memory ")
	t.Setenv("SEARCH_DELAY_MS", "0")
	t.Setenv("HISTORY_DAYS", "90")
	t.Setenv("QUOTE_CACHE_TTL_SECONDS", "15")
	t.Setenv("CHROME_SNAPSHOT", "false")

	cfg := LoadConfig()

	if cfg.ServerPort != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.ServerPort)
	}
	if cfg.Backend() != StorageMemory {
		t.Errorf("expected memory backend, got %s", cfg.Backend())
	}
	if cfg.GetSearchDelay() != 0 {
		t.Errorf("expected zero search delay, got %v", cfg.GetSearchDelay())
	}
	if cfg.GetHistoryDays() != 90 {
		t.Errorf("expected 90 history days, got %d", cfg.GetHistoryDays())
	}
	if cfg.GetQuoteCacheTTL() != 15*time.Second {
		t.Errorf("expected 15s TTL, got %v", cfg.GetQuoteCacheTTL())
	}
	if cfg.SnapshotEnabled() {
		t.Errorf("expected snapshots disabled")
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	cfg := &Config{
		StorageBackend:       "mongodb",
		SearchDelayMS:        "-5",
		HistoryDays:          "lots",
		QuoteCacheTTLSeconds: "0",
		ChromeSnapshot:       "maybe",
	}

	if cfg.GetSearchDelay() != time.Second {
		t.Errorf("expected default delay, got %v", cfg.GetSearchDelay())
	}
	if cfg.GetHistoryDays() != 30 {
		t.Errorf("expected default history days, got %d", cfg.GetHistoryDays())
	}
	if cfg.GetQuoteCacheTTL() != DefaultCacheConfig().DefaultTTL {
		t.Errorf("expected default TTL, got %v", cfg.GetQuoteCacheTTL())
	}
	if !cfg.SnapshotEnabled() {
		t.Errorf("expected snapshots enabled when unparseable")
	}
	if cfg.Backend() != StorageSQLite {
		t.Errorf("expected sqlite fallback, got %s", cfg.Backend())
	}
}
