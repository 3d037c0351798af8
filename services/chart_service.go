package services

import (
	"fmt"
	"sync"

	"github.com/fenilmodi00/stock-tracker/models"
	"github.com/fenilmodi00/stock-tracker/shared"
	"github.com/sirupsen/logrus"
)

const (
	// PriceChartCanvas is the canvas id the quote page draws its chart on
	PriceChartCanvas = "stockChart"
	// DefaultTimeframe is selected until the user picks another
	DefaultTimeframe = "1M"
)

// Timeframes are the selector buttons offered on the chart. They are cosmetic:
// every timeframe shows the same history.
var Timeframes = []string{"1D", "1W", "1M", "3M", "1Y"}

// ChartRenderer draws a chart, replacing whatever was previously on spec.Canvas
type ChartRenderer interface {
	Render(spec models.ChartSpec) models.ChartSpec
}

// ChartRegistry keeps exactly one live chart per canvas
type ChartRegistry struct {
	mutex   sync.RWMutex
	charts  map[string]models.ChartSpec
	version int64
}

// NewChartRegistry creates an empty registry
func NewChartRegistry() *ChartRegistry {
	return &ChartRegistry{charts: make(map[string]models.ChartSpec)}
}

// Render destroys the canvas's previous chart and stores spec with a new version
func (r *ChartRegistry) Render(spec models.ChartSpec) models.ChartSpec {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if previous, ok := r.charts[spec.Canvas]; ok {
		logrus.WithFields(logrus.Fields{
			"component": "ChartRegistry",
			"canvas":    spec.Canvas,
			"previous":  previous.Version,
		}).Debug("Destroying previous chart")
	}

	r.version++
	spec.Version = r.version
	spec.Labels = append([]string(nil), spec.Labels...)
	spec.Prices = append([]float64(nil), spec.Prices...)
	r.charts[spec.Canvas] = spec
	return spec
}

// Current returns the live chart on canvas
func (r *ChartRegistry) Current(canvas string) (models.ChartSpec, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	spec, ok := r.charts[canvas]
	return spec, ok
}

// Count returns the number of live charts
func (r *ChartRegistry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.charts)
}

// BuildPriceChart converts a quote's history into a chart spec for the price canvas
func BuildPriceChart(symbol string, history []models.HistorySample, timeframe string) models.ChartSpec {
	spec := models.ChartSpec{
		Canvas:    PriceChartCanvas,
		Label:     fmt.Sprintf("%s Price", symbol),
		Labels:    make([]string, 0, len(history)),
		Prices:    make([]float64, 0, len(history)),
		Timeframe: timeframe,
	}
	for _, sample := range history {
		spec.Labels = append(spec.Labels, sample.Date)
		spec.Prices = append(spec.Prices, sample.Price)
	}
	return spec
}

// ValidateTimeframe rejects timeframes the chart does not offer
func ValidateTimeframe(timeframe string) error {
	for _, tf := range Timeframes {
		if tf == timeframe {
			return nil
		}
	}
	return shared.NewServiceError(shared.ErrorCategoryValidation, shared.CodeInvalidTimeframe,
		fmt.Sprintf("unknown timeframe %q, expected one of %v", timeframe, Timeframes),
		"chart-service", "validate_timeframe", false, nil)
}
