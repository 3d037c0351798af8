package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Storage backends accepted by STORAGE_BACKEND
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

type Config struct {
	ServerPort           string
	StorageBackend       string
	DatabaseURL          string
	SQLitePath           string
	SearchDelayMS        string
	HistoryDays          string
	QuoteCacheTTLSeconds string
	LogLevel             string
	LogFormat            string
	ChromeSnapshot       string
}

// SimplifiedCacheConfig holds quote cache configuration
type SimplifiedCacheConfig struct {
	DefaultTTL      time.Duration `json:"default_ttl"`
	MaxSize         int           `json:"max_size"`
	CleanupInterval time.Duration `json:"cleanup_interval"`
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() *SimplifiedCacheConfig {
	return &SimplifiedCacheConfig{
		DefaultTTL:      5 * time.Minute,
		MaxSize:         256,
		CleanupInterval: 5 * time.Minute,
	}
}

// GetSearchDelay returns the simulated fetch latency applied to searches
func (c *Config) GetSearchDelay() time.Duration {
	ms, err := strconv.Atoi(c.SearchDelayMS)
	if err != nil || ms < 0 {
		logrus.Warnf("Invalid SEARCH_DELAY_MS value: %s, using default 1000ms", c.SearchDelayMS)
		return time.Second
	}
	return time.Duration(ms) * time.Millisecond
}

// GetHistoryDays returns the number of days of demo history per quote
func (c *Config) GetHistoryDays() int {
	days, err := strconv.Atoi(c.HistoryDays)
	if err != nil || days < 0 {
		logrus.Warnf("Invalid HISTORY_DAYS value: %s, using default 30", c.HistoryDays)
		return 30
	}
	return days
}

// GetQuoteCacheTTL returns the quote cache TTL from environment or default
func (c *Config) GetQuoteCacheTTL() time.Duration {
	if c.QuoteCacheTTLSeconds == "" {
		return DefaultCacheConfig().DefaultTTL
	}

	seconds, err := strconv.Atoi(c.QuoteCacheTTLSeconds)
	if err != nil || seconds <= 0 {
		logrus.Warnf("Invalid QUOTE_CACHE_TTL_SECONDS value: %s, using default", c.QuoteCacheTTLSeconds)
		return DefaultCacheConfig().DefaultTTL
	}

	return time.Duration(seconds) * time.Second
}

// SnapshotEnabled reports whether PNG snapshots through headless Chrome are served
func (c *Config) SnapshotEnabled() bool {
	enabled, err := strconv.ParseBool(c.ChromeSnapshot)
	if err != nil {
		return true
	}
	return enabled
}

// Backend returns the normalized storage backend name
func (c *Config) Backend() string {
	backend := strings.ToLower(strings.TrimSpace(c.StorageBackend))
	switch backend {
	case StorageMemory, StorageSQLite, StoragePostgres:
		return backend
	default:
		logrus.Warnf("Unknown STORAGE_BACKEND value: %s, using %s", c.StorageBackend, StorageSQLite)
		return StorageSQLite
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		StorageBackend:       getEnv("STORAGE_BACKEND", StorageSQLite),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		SQLitePath:           getEnv("SQLITE_PATH", "data/stock-tracker.db"),
		SearchDelayMS:        getEnv("SEARCH_DELAY_MS", "1000"),
		HistoryDays:          getEnv("HISTORY_DAYS", "30"),
		QuoteCacheTTLSeconds: getEnv("QUOTE_CACHE_TTL_SECONDS", "300"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "json"),
		ChromeSnapshot:       getEnv("CHROME_SNAPSHOT", "true"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
