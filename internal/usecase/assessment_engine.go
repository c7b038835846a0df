package usecase

import (
	"errors"
	"math"

	"tripcast-service/internal/domain/entity"
	"tripcast-service/internal/domain/repository"
	"tripcast-service/pkg/utils"
)

// Score ceiling shared by the weather and historical scores
const maxScore = 5.0

// ErrProjectedDelayOutOfRange is returned by Assess when the projected delay
// is not a finite number that fits in an int.
var ErrProjectedDelayOutOfRange = errors.New("projected delay is outside the integer range")

// AssessmentEngine annotates trips with weather and historical delay scores
type AssessmentEngine struct {
	forecasts repository.ForecastLookup
}

// NewAssessmentEngine creates an engine backed by the given forecast lookup
func NewAssessmentEngine(forecasts repository.ForecastLookup) *AssessmentEngine {
	return &AssessmentEngine{forecasts: forecasts}
}

// Analyze returns a new slice with one assessed trip per input row, in input order.
// The first malformed row or missing forecast aborts the whole batch: nothing is
// returned but the error, which is a *entity.MalformedRowError or
// *entity.MissingForecastError carrying the row index.
func (e *AssessmentEngine) Analyze(trips []entity.TripAggregate) ([]entity.AssessedTrip, error) {
	assessed := make([]entity.AssessedTrip, 0, len(trips))

	for i, trip := range trips {
		if err := trip.Validate(i); err != nil {
			return nil, err
		}

		forecast, ok := e.forecasts.Lookup(trip.Origin, trip.FlightDate)
		if !ok {
			return nil, &entity.MissingForecastError{Index: i, Key: trip.ForecastKey()}
		}

		assessment, err := Assess(trip, forecast)
		if err != nil {
			return nil, &entity.MalformedRowError{Index: i, Field: "averageDelay", Reason: "projects a delay outside the integer range"}
		}

		assessed = append(assessed, entity.AssessedTrip{
			TripAggregate: trip,
			Assessment:    assessment,
			Forecast:      forecast,
		})
	}

	return assessed, nil
}

// Assess computes the assessment of a single trip under the given forecast
func Assess(trip entity.TripAggregate, forecast entity.Forecast) (entity.Assessment, error) {
	weatherFactor := forecast.PrecipitationProbability + forecast.WindSpeed/100

	// The explicit conversion stops the compiler from fusing the multiply and
	// subtract, which would change the low bits on some architectures.
	weatherScore := maxScore - float64(maxScore*weatherFactor)
	historicalScore := utils.Round(maxScore*((100-trip.DelayedPercentage)/100), 1)
	overallScore := utils.Round((weatherScore+historicalScore)/2, 1)
	multiplier := utils.Round(weatherFactor*5, 3)
	projectedDelay := utils.Round(multiplier*trip.AverageDelay, 0)
	if !fitsInt(projectedDelay) {
		return entity.Assessment{}, ErrProjectedDelayOutOfRange
	}

	return entity.Assessment{
		OverallScore:              overallScore,
		HistoricalScore:           historicalScore,
		HistoricalDelayPercentage: trip.DelayedPercentage,
		WeatherScore:              weatherScore,
		WeatherDelayMultiplier:    multiplier,
		ProjectedDelay:            int(projectedDelay),
	}, nil
}

// fitsInt reports whether v converts to int without overflow.
// float64(math.MinInt) is exact; -float64(math.MinInt) is the first value past math.MaxInt.
func fitsInt(v float64) bool {
	return !math.IsNaN(v) && v >= float64(math.MinInt) && v < -float64(math.MinInt)
}
