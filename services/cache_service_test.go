package services

import (
	"context"
	"testing"
	"time"

	"github.com/fenilmodi00/stock-tracker/models"
	"github.com/fenilmodi00/stock-tracker/shared"
)

type countingQuoteSource struct {
	QuoteSource
	lookups int
}

func (c *countingQuoteSource) Lookup(ctx context.Context, symbol string) (*models.Quote, error) {
	c.lookups++
	return c.QuoteSource.Lookup(ctx, symbol)
}

func TestCacheServiceExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cache := NewCacheService(time.Minute, 10)
	cache.now = func() time.Time { return now }

	cache.Set("a", 1)
	cache.SetWithTTL("b", 2, time.Hour)

	if v, ok := cache.Get("a"); !ok || v.(int) != 1 {
		t.Fatalf("expected a=1, got %v %v", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := cache.Get("a"); ok {
		t.Errorf("expected a to have expired")
	}
	if removed := cache.CleanupExpired(); removed != 1 {
		t.Errorf("expected 1 expired entry removed, got %d", removed)
	}
	if cache.Size() != 1 {
		t.Errorf("expected only b to remain, size %d", cache.Size())
	}
}

func TestCacheServiceEvictsWhenFull(t *testing.T) {
	cache := NewCacheService(time.Minute, 2)

	cache.SetWithTTL("short", 1, time.Second)
	cache.SetWithTTL("long", 2, time.Hour)
	cache.Set("new", 3)

	if cache.Size() != 2 {
		t.Fatalf("expected size 2, got %d", cache.Size())
	}
	if _, ok := cache.Get("short"); ok {
		t.Errorf("expected the entry closest to expiry to be evicted")
	}
	if _, ok := cache.Get("new"); !ok {
		t.Errorf("expected new entry to be present")
	}
}

func TestCachedQuoteSourceCachesHitsOnly(t *testing.T) {
	inner := &countingQuoteSource{QuoteSource: newTestQuoteSource()}
	cached := NewCachedQuoteSource(inner, NewCacheService(time.Minute, 10))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := cached.Lookup(ctx, "MSFT"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if inner.lookups != 1 {
		t.Errorf("expected 1 underlying lookup for repeated hits, got %d", inner.lookups)
	}

	for i := 0; i < 2; i++ {
		if _, err := cached.Lookup(ctx, "NOPE"); !shared.IsErrorCode(err, shared.CodeSymbolNotFound) {
			t.Fatalf("expected SYMBOL_NOT_FOUND, got %v", err)
		}
	}
	if inner.lookups != 3 {
		t.Errorf("expected misses to reach the source every time, got %d lookups", inner.lookups)
	}
	if cached.Cache().Size() != 1 {
		t.Errorf("expected one cached quote, got %d", cached.Cache().Size())
	}
}
