package entity

// Forecast is the static weather forecast attached to a trip.
// Only PrecipitationProbability and WindSpeed feed the assessment; the rest is display data.
type Forecast struct {
	Description              string  `json:"description" yaml:"description" bson:"description"`
	Icon                     string  `json:"icon" yaml:"icon" bson:"icon"`
	TempLow                  string  `json:"tempLow" yaml:"temp_low" bson:"tempLow"`
	TempHigh                 string  `json:"tempHigh" yaml:"temp_high" bson:"tempHigh"`
	PrecipitationProbability float64 `json:"precipitationProbability" yaml:"precipitation_probability" bson:"precipitationProbability"` // 0..1
	WindSpeed                float64 `json:"windSpeed" yaml:"wind_speed" bson:"windSpeed"`                                              // mph
}

// ForecastRecord is a forecast together with the airport and day it applies to.
// It is the storage shape used by the YAML table and the forecasts collection.
type ForecastRecord struct {
	Origin   string   `yaml:"origin" bson:"origin"`
	Date     string   `yaml:"date" bson:"date"` // YYYY-MM-DD
	Forecast Forecast `yaml:",inline" bson:",inline"`
}

// Key returns the lookup key of the record
func (r ForecastRecord) Key() string {
	return r.Origin + "_" + r.Date
}
