package entity

// Assessment is the composite score computed for a trip
type Assessment struct {
	OverallScore              float64 `json:"overallScore"`
	HistoricalScore           float64 `json:"historicalScore"`
	HistoricalDelayPercentage float64 `json:"historicalDelayPercentage"`
	WeatherScore              float64 `json:"weatherScore"`
	WeatherDelayMultiplier    float64 `json:"weatherDelayMultiplier"`
	ProjectedDelay            int     `json:"projectedDelay"` // minutes
}
