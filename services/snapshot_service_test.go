package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fenilmodi00/stock-tracker/models"
	"github.com/fenilmodi00/stock-tracker/shared"
)

func parsePanel(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse panel: %v", err)
	}
	return doc
}

func TestRenderPanelEmpty(t *testing.T) {
	html, err := NewSnapshotService(false).RenderPanel(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := parsePanel(t, html)
	if got := strings.TrimSpace(doc.Find("p.empty-watchlist").Text()); got != "Add stocks to your watchlist to track them easily" {
		t.Errorf("unexpected empty state text: %q", got)
	}
	if doc.Find(".watchlist-item").Length() != 0 {
		t.Errorf("expected no rows")
	}
}

func TestRenderPanelRows(t *testing.T) {
	ctx := context.Background()
	source := newTestQuoteSource()
	w := LoadWatchlist(ctx, NewMemoryStore(), WatchlistKey)
	w.Toggle(ctx, "AAPL")
	w.Toggle(ctx, "GOOGL")
	entries, err := w.Render(ctx, source)
	if err != nil {
		t.Fatalf("render watchlist: %v", err)
	}

	snapshots := NewSnapshotService(false)
	snapshots.now = func() time.Time { return time.Date(2026, 1, 2, 9, 30, 5, 0, time.UTC) }
	html, err := snapshots.RenderPanel(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := parsePanel(t, html)
	if updated, _ := doc.Find(".watchlist").Attr("data-updated"); updated != "09:30:05" {
		t.Errorf("expected data-updated 09:30:05, got %q", updated)
	}

	rows := doc.Find(".watchlist-item")
	if rows.Length() != 2 {
		t.Fatalf("expected 2 rows, got %d", rows.Length())
	}

	aapl := rows.Eq(0)
	if aapl.Find(".symbol").Text() != "AAPL" || aapl.Find(".price").Text() != "$175.43" {
		t.Errorf("unexpected AAPL row: %s / %s", aapl.Find(".symbol").Text(), aapl.Find(".price").Text())
	}
	if !aapl.Find(".change").HasClass("positive") || aapl.Find(".change").Text() != "+2.15 (+1.24%)" {
		t.Errorf("unexpected AAPL change cell: %q", aapl.Find(".change").Text())
	}

	googl := rows.Eq(1)
	if !googl.Find(".change").HasClass("negative") || googl.Find(".change").Text() != "-1.23 (-0.85%)" {
		t.Errorf("unexpected GOOGL change cell: %q", googl.Find(".change").Text())
	}
	if symbol, _ := googl.Find("button.remove").Attr("data-symbol"); symbol != "GOOGL" {
		t.Errorf("expected remove control for GOOGL, got %q", symbol)
	}
}

func TestRenderPanelEscapesSymbols(t *testing.T) {
	entries := []models.WatchlistEntry{{
		Symbol: `<script>alert(1)</script>`,
		Quote:  &models.Quote{Price: 1, Change: 0},
	}}

	html, err := NewSnapshotService(false).RenderPanel(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>alert") {
		t.Errorf("symbol was not escaped: %s", html)
	}
}

func TestRenderPNGDisabled(t *testing.T) {
	_, err := NewSnapshotService(false).RenderPNG(context.Background(), nil)
	if !shared.IsErrorCode(err, shared.CodeSnapshotUnavailable) {
		t.Fatalf("expected SNAPSHOT_UNAVAILABLE, got %v", err)
	}
	if shared.HTTPStatusFor(err) != 503 {
		t.Errorf("expected status 503, got %d", shared.HTTPStatusFor(err))
	}
}

func TestFormatChange(t *testing.T) {
	cases := []struct {
		change, pct float64
		want        string
	}{
		{2.15, 1.24, "+2.15 (+1.24%)"},
		{-5.67, -2.32, "-5.67 (-2.32%)"},
		{0, 0, "+0.00 (+0.00%)"},
	}
	for _, c := range cases {
		if got := FormatChange(c.change, c.pct); got != c.want {
			t.Errorf("FormatChange(%v, %v) = %q, want %q", c.change, c.pct, got, c.want)
		}
	}
}
