package models

// ChartSpec is everything the browser needs to draw a line chart on one canvas
type ChartSpec struct {
	Canvas    string    `json:"canvas"`
	Label     string    `json:"label"`
	Labels    []string  `json:"labels"`
	Prices    []float64 `json:"prices"`
	Timeframe string    `json:"timeframe"`
	Version   int64     `json:"version"`
}
