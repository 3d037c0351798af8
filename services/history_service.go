package services

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/fenilmodi00/stock-tracker/models"
	"github.com/shopspring/decimal"
)

const (
	// DefaultHistoryDays is the number of days generated before today
	DefaultHistoryDays = 30
	// HistoryFloorRatio bounds every sample to at least this fraction of the seed
	HistoryFloorRatio = 0.8
	// HistoryStepRange is the width of the uniform per-day perturbation
	HistoryStepRange = 10.0

	historyDateLayout = "2006-01-02"
)

// HistoryGenerator produces synthetic daily price series by a floored random walk
type HistoryGenerator struct {
	mutex sync.Mutex
	rng   *rand.Rand
	now   func() time.Time
}

// NewHistoryGenerator creates a generator with an unseeded random source and the wall clock
func NewHistoryGenerator() *HistoryGenerator {
	return NewHistoryGeneratorWithSource(rand.NewPCG(rand.Uint64(), rand.Uint64()), time.Now)
}

// NewHistoryGeneratorWithSource creates a generator with an explicit random source and clock
func NewHistoryGeneratorWithSource(src rand.Source, now func() time.Time) *HistoryGenerator {
	if now == nil {
		now = time.Now
	}
	return &HistoryGenerator{
		rng: rand.New(src),
		now: now,
	}
}

// Generate returns days+1 samples ending today, oldest first. The first sample is
// the seed; each later one adds a perturbation in [-5, +5) to the running value
// and clamps it to no lower than 0.8*seed. There is no upper bound.
func (g *HistoryGenerator) Generate(seed float64, days int) []models.HistorySample {
	if days < 0 {
		days = 0
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	today := g.now()
	floor := priceFloor(seed)
	price := seed

	history := make([]models.HistorySample, 0, days+1)
	for i := 0; i <= days; i++ {
		if i > 0 {
			price += (g.rng.Float64() - 0.5) * HistoryStepRange
			if price < floor {
				price = floor
			}
		}

		history = append(history, models.HistorySample{
			Date:  today.AddDate(0, 0, i-days).Format(historyDateLayout),
			Price: roundPrice(price),
		})
	}

	return history
}

// priceFloor is 0.8*seed rounded up to the cent, so rounded samples never fall
// below 0.8*seed
func priceFloor(seed float64) float64 {
	return decimal.NewFromFloat(seed).Mul(decimal.NewFromFloat(HistoryFloorRatio)).RoundCeil(2).InexactFloat64()
}

// roundPrice rounds half away from zero to 2 decimal places
func roundPrice(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}
