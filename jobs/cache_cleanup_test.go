package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/fenilmodi00/stock-tracker/services"
)

func TestCacheCleanupJobRun(t *testing.T) {
	cache := services.NewCacheService(time.Hour, 10)
	cache.SetWithTTL("quote:AAPL", 1, time.Nanosecond)
	cache.Set("quote:MSFT", 2)
	time.Sleep(5 * time.Millisecond)

	job := NewCacheCleanupJob(cache)
	if removed := job.Run(); removed != 1 {
		t.Errorf("expected 1 entry removed, got %d", removed)
	}
	if cache.Size() != 1 {
		t.Errorf("expected 1 entry remaining, got %d", cache.Size())
	}
}

func TestCacheCleanupJobStart(t *testing.T) {
	cache := services.NewCacheService(time.Hour, 10)
	cache.SetWithTTL("quote:TSLA", 1, time.Nanosecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	NewCacheCleanupJob(cache).Start(ctx, 10*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for cache.Size() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expired entry was not cleaned up")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
