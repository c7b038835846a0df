package entity

import (
	"math"
	"time"
)

// ForecastKeyDateLayout is the date layout used in forecast lookup keys
const ForecastKeyDateLayout = "2006-01-02"

// TripAggregate is one pre-joined trip row supplied by the trip aggregate provider
type TripAggregate struct {
	FlightNumber      string    `json:"flightNumber"`
	AirlineName       string    `json:"airlineName"`
	AirlineCode       string    `json:"airlineCode"`
	FlightDate        time.Time `json:"flightDate"`
	Origin            string    `json:"origin"`
	Destination       string    `json:"destination"`
	DepartureTime     string    `json:"departureTime"`
	ArrivalTime       string    `json:"arrivalTime"`
	DelayedPercentage float64   `json:"delayedPercentage"` // percent of historical flights departing late
	AverageDelay      float64   `json:"averageDelay"`      // minutes, may be negative
}

// AssessedTrip is a trip row annotated with its assessment and the forecast used to compute it
type AssessedTrip struct {
	TripAggregate
	Assessment Assessment `json:"assessment"`
	Forecast   Forecast   `json:"forecast"`
}

// ForecastKey builds the "{origin}_{YYYY-MM-DD}" lookup key
func ForecastKey(origin string, date time.Time) string {
	return origin + "_" + date.UTC().Format(ForecastKeyDateLayout)
}

// ForecastKey returns the forecast lookup key of the trip
func (t TripAggregate) ForecastKey() string {
	return ForecastKey(t.Origin, t.FlightDate)
}

// Validate checks the fields the assessment depends on.
// index is the row position reported back in the error.
func (t TripAggregate) Validate(index int) error {
	switch {
	case t.Origin == "":
		return &MalformedRowError{Index: index, Field: "origin", Reason: "is required"}
	case t.FlightDate.IsZero():
		return &MalformedRowError{Index: index, Field: "flightDate", Reason: "is required"}
	case math.IsNaN(t.DelayedPercentage) || t.DelayedPercentage < 0 || t.DelayedPercentage > 100:
		return &MalformedRowError{Index: index, Field: "delayedPercentage", Reason: "must be within [0,100]"}
	case math.IsNaN(t.AverageDelay) || math.IsInf(t.AverageDelay, 0):
		return &MalformedRowError{Index: index, Field: "averageDelay", Reason: "must be a finite number"}
	}
	return nil
}
