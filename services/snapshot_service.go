package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/fenilmodi00/stock-tracker/models"
	"github.com/fenilmodi00/stock-tracker/shared"
	"github.com/sirupsen/logrus"
)

const (
	snapshotServiceName = "snapshot-service"
	snapshotWidth       = 480
	snapshotTimeout     = 20 * time.Second
)

type watchlistRowView struct {
	Symbol string
	Price  string
	Change string
	Class  string
}

type watchlistPanelView struct {
	Rows      []watchlistRowView
	Timestamp string
}

var watchlistPanelTemplate = template.Must(template.New("watchlist").Parse(watchlistPanelHTML))

// SnapshotService renders the watchlist panel as HTML and, through headless
// Chrome, as a PNG image
type SnapshotService struct {
	enabled bool
	now     func() time.Time
}

// NewSnapshotService creates a snapshot service. With enabled=false PNG rendering
// always reports SNAPSHOT_UNAVAILABLE.
func NewSnapshotService(enabled bool) *SnapshotService {
	return &SnapshotService{enabled: enabled, now: time.Now}
}

// RenderPanel renders entries as the watchlist panel fragment
func (s *SnapshotService) RenderPanel(entries []models.WatchlistEntry) (string, error) {
	view := watchlistPanelView{
		Rows:      buildRowViews(entries),
		Timestamp: s.now().Format("15:04:05"),
	}

	var builder strings.Builder
	if err := watchlistPanelTemplate.Execute(&builder, view); err != nil {
		return "", fmt.Errorf("failed to render watchlist panel: %w", err)
	}
	return builder.String(), nil
}

// RenderPNG renders entries to a PNG screenshot of the panel
func (s *SnapshotService) RenderPNG(ctx context.Context, entries []models.WatchlistEntry) ([]byte, error) {
	if !s.enabled {
		return nil, shared.NewServiceError(shared.ErrorCategoryResource, shared.CodeSnapshotUnavailable,
			"snapshots are disabled", snapshotServiceName, "render_png", false, nil)
	}

	panel, err := s.RenderPanel(entries)
	if err != nil {
		return nil, err
	}
	page := "<!DOCTYPE html><html><head><meta charset=\"UTF-8\" /></head><body>" + panel + "</body></html>"

	png, err := renderHTMLToPNG(ctx, page, snapshotWidth, estimatePanelHeight(len(entries)))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"component": "SnapshotService",
			"rows":      len(entries),
		}).WithError(err).Warn("Headless Chrome snapshot failed")
		return nil, shared.NewServiceError(shared.ErrorCategoryResource, shared.CodeSnapshotUnavailable,
			"headless Chrome is not available", snapshotServiceName, "render_png", true, err)
	}
	return png, nil
}

func buildRowViews(entries []models.WatchlistEntry) []watchlistRowView {
	rows := make([]watchlistRowView, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, watchlistRowView{
			Symbol: entry.Symbol,
			Price:  fmt.Sprintf("$%.2f", entry.Quote.Price),
			Change: FormatChange(entry.Quote.Change, entry.Quote.ChangePercent),
			Class:  trendClass(entry.Quote.Change),
		})
	}
	return rows
}

// FormatChange renders "+2.15 (+1.24%)" style change text
func FormatChange(change, changePercent float64) string {
	return fmt.Sprintf("%s%.2f (%s%.2f%%)", signPrefix(change), change, signPrefix(changePercent), changePercent)
}

func signPrefix(v float64) string {
	if v >= 0 {
		return "+"
	}
	return ""
}

func trendClass(change float64) string {
	if change >= 0 {
		return "positive"
	}
	return "negative"
}

func estimatePanelHeight(rows int) int64 {
	const (
		basePadding = 48
		rowHeight   = 64
		emptyHeight = 56
	)
	if rows == 0 {
		return basePadding + emptyHeight
	}
	return int64(basePadding + rows*rowHeight)
}

func renderHTMLToPNG(ctx context.Context, html string, width int, height int64) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
	var buf []byte
	err := chromedp.Run(ctx,
		chromedp.EmulateViewport(int64(width), height),
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

const watchlistPanelHTML = `<div class="watchlist" data-updated="{{.Timestamp}}">
<style>
  .watchlist { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; padding: 12px; }
  .watchlist-item { display: flex; justify-content: space-between; padding: 12px; border-bottom: 1px solid #eee; }
  .symbol { font-weight: 600; }
  .positive { color: #1ca05c; }
  .negative { color: #d83a3a; }
  .empty-watchlist { color: #888; }
</style>
{{- if not .Rows}}
  <p class="empty-watchlist">Add stocks to your watchlist to track them easily</p>
{{- end}}
{{- range .Rows}}
  <div class="watchlist-item" data-symbol="{{.Symbol}}">
    <div>
      <div class="symbol">{{.Symbol}}</div>
      <div class="price">{{.Price}}</div>
    </div>
    <div>
      <div class="change {{.Class}}">{{.Change}}</div>
      <button class="remove" data-symbol="{{.Symbol}}" title="Remove from watchlist">&times;</button>
    </div>
  </div>
{{- end}}
</div>
`
