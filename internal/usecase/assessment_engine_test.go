package usecase

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcast-service/internal/domain/entity"
	"tripcast-service/internal/infrastructure/forecast"
	"tripcast-service/pkg/utils"
)

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

// stubLookup is a map-backed forecast lookup keyed like the real table
type stubLookup map[string]entity.Forecast

func (s stubLookup) Lookup(origin string, date time.Time) (entity.Forecast, bool) {
	f, ok := s[entity.ForecastKey(origin, date)]
	return f, ok
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func trip(origin string, day time.Time, delayedPct, avgDelay float64) entity.TripAggregate {
	return entity.TripAggregate{
		FlightNumber:      "1234",
		AirlineName:       "United Air Lines Inc.",
		AirlineCode:       "UA",
		FlightDate:        day,
		Origin:            origin,
		Destination:       "LAX",
		DepartureTime:     "0800",
		ArrivalTime:       "1035",
		DelayedPercentage: delayedPct,
		AverageDelay:      avgDelay,
	}
}

func mustAssess(t *testing.T, tr entity.TripAggregate, f entity.Forecast) entity.Assessment {
	t.Helper()
	a, err := Assess(tr, f)
	require.NoError(t, err)
	return a
}

func embeddedEngine(t *testing.T) *AssessmentEngine {
	t.Helper()
	table, err := forecast.LoadEmbedded()
	require.NoError(t, err)
	return NewAssessmentEngine(table)
}

// ---------------------------------------------------------------------------
// Scoring
// ---------------------------------------------------------------------------

func TestAnalyze_ReferenceScenario(t *testing.T) {
	engine := embeddedEngine(t)

	out, err := engine.Analyze([]entity.TripAggregate{trip("ORD", date(2020, time.February, 4), 20, 10)})
	require.NoError(t, err)
	require.Len(t, out, 1)

	a := out[0].Assessment
	assert.Equal(t, 1.25, a.WeatherScore)
	assert.Equal(t, 4.0, a.HistoricalScore)
	assert.Equal(t, 2.6, a.OverallScore)
	assert.Equal(t, 3.75, a.WeatherDelayMultiplier)
	assert.Equal(t, 38, a.ProjectedDelay)
	assert.Equal(t, 20.0, a.HistoricalDelayPercentage)

	assert.Equal(t, entity.Forecast{
		Description:              "Snow",
		Icon:                     "snow",
		TempLow:                  "28°F",
		TempHigh:                 "29°F",
		PrecipitationProbability: 0.6,
		WindSpeed:                15,
	}, out[0].Forecast)
}

func TestAssess(t *testing.T) {
	tests := []struct {
		name                 string
		precip, wind         float64
		delayedPct, avgDelay float64
		wantWeather          float64
		wantHistorical       float64
		wantOverall          float64
		wantMultiplier       float64
		wantProjected        int
	}{
		{"clear skies light wind", 0, 5, 20, 10, 4.75, 4.0, 4.4, 0.25, 3},
		{"negative average delay", 0, 5, 33.33, -4.5, 4.75, 3.3, 4.0, 0.25, -1},
		{"always delayed", 0.6, 15, 100, 12.5, 1.25, 0.0, 0.6, 3.75, 47},
		{"never delayed no weather", 0, 0, 0, 25, 5.0, 5.0, 5.0, 0.0, 0},
		{"extreme weather goes negative", 1, 100, 50, 10, -5.0, 2.5, -1.3, 10.0, 100},
		{"early departures", 0.6, 15, 37.5, -8, 1.25, 3.1, 2.2, 3.75, -30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := mustAssess(t,
				trip("ORD", date(2020, time.February, 4), tc.delayedPct, tc.avgDelay),
				entity.Forecast{PrecipitationProbability: tc.precip, WindSpeed: tc.wind},
			)

			assert.Equal(t, tc.wantWeather, a.WeatherScore, "weatherScore")
			assert.Equal(t, tc.wantHistorical, a.HistoricalScore, "historicalScore")
			assert.Equal(t, tc.wantOverall, a.OverallScore, "overallScore")
			assert.Equal(t, tc.wantMultiplier, a.WeatherDelayMultiplier, "weatherDelayMultiplier")
			assert.Equal(t, tc.wantProjected, a.ProjectedDelay, "projectedDelay")
		})
	}
}

func TestAssess_HistoricalScoreBounds(t *testing.T) {
	f := entity.Forecast{PrecipitationProbability: 0.3, WindSpeed: 10}
	day := date(2020, time.February, 4)

	assert.Equal(t, 5.0, mustAssess(t, trip("ORD", day, 0, 10), f).HistoricalScore)
	assert.Equal(t, 0.0, mustAssess(t, trip("ORD", day, 100, 10), f).HistoricalScore)
}

func TestAssess_CalmWeather(t *testing.T) {
	calm := entity.Forecast{PrecipitationProbability: 0, WindSpeed: 0}

	for _, avgDelay := range []float64{-30, 0, 4.4, 120} {
		a := mustAssess(t, trip("LAX", date(2020, time.February, 6), 42, avgDelay), calm)
		assert.Equal(t, 5.0, a.WeatherScore)
		assert.Equal(t, 0.0, a.WeatherDelayMultiplier)
		assert.Equal(t, 0, a.ProjectedDelay)
	}
}

func TestAssess_OverallIsRoundedMean(t *testing.T) {
	day := date(2020, time.February, 4)

	for _, precip := range []float64{0, 0.1, 0.35, 0.6, 0.95} {
		for _, wind := range []float64{0, 3, 15, 27.5} {
			for _, pct := range []float64{0, 12.34, 50, 87.5, 100} {
				a := mustAssess(t, trip("ORD", day, pct, 7), entity.Forecast{PrecipitationProbability: precip, WindSpeed: wind})
				want := utils.Round((a.WeatherScore+a.HistoricalScore)/2, 1)
				assert.Equal(t, want, a.OverallScore, "precip=%v wind=%v pct=%v", precip, wind, pct)
			}
		}
	}
}

func TestAssess_MultiplierMonotonic(t *testing.T) {
	day := date(2020, time.February, 4)
	prev := -1.0

	for _, precip := range []float64{0, 0.2, 0.4, 0.6, 0.8, 1} {
		a := mustAssess(t, trip("ORD", day, 10, 10), entity.Forecast{PrecipitationProbability: precip, WindSpeed: 10})
		assert.Greater(t, a.WeatherDelayMultiplier, prev)
		prev = a.WeatherDelayMultiplier
	}
}

// ---------------------------------------------------------------------------
// Batch behaviour
// ---------------------------------------------------------------------------

func TestAnalyze_EmptyInput(t *testing.T) {
	engine := embeddedEngine(t)

	out, err := engine.Analyze(nil)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	out, err = engine.Analyze([]entity.TripAggregate{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestAnalyze_PreservesOrderAndLength(t *testing.T) {
	lookup := stubLookup{}
	var in []entity.TripAggregate
	for i := 0; i < 50; i++ {
		origin := fmt.Sprintf("A%02d", i)
		day := date(2021, time.March, 1+i%28)
		lookup[entity.ForecastKey(origin, day)] = entity.Forecast{PrecipitationProbability: float64(i%10) / 10, WindSpeed: float64(i)}
		tr := trip(origin, day, float64(i*2), float64(i))
		tr.FlightNumber = fmt.Sprintf("%d", 1000+i)
		in = append(in, tr)
	}

	out, err := NewAssessmentEngine(lookup).Analyze(in)
	require.NoError(t, err)
	require.Len(t, out, len(in))

	for i := range in {
		assert.Equal(t, in[i], out[i].TripAggregate, "row %d", i)
		assert.Equal(t, lookup[in[i].ForecastKey()], out[i].Forecast, "row %d", i)
	}
}

func TestAnalyze_DoesNotMutateInput(t *testing.T) {
	engine := embeddedEngine(t)
	in := []entity.TripAggregate{
		trip("ORD", date(2020, time.February, 4), 20, 10),
		trip("LAX", date(2020, time.February, 6), 5, -2),
	}
	snapshot := append([]entity.TripAggregate(nil), in...)

	_, err := engine.Analyze(in)
	require.NoError(t, err)
	assert.Equal(t, snapshot, in)
}

func TestAnalyze_MissingForecast(t *testing.T) {
	engine := embeddedEngine(t)
	in := []entity.TripAggregate{
		trip("ORD", date(2020, time.February, 4), 20, 10),
		trip("JFK", date(2020, time.February, 5), 20, 10),
		trip("LAX", date(2020, time.February, 6), 20, 10),
	}

	out, err := engine.Analyze(in)
	require.Error(t, err)
	assert.Nil(t, out)

	var missing *entity.MissingForecastError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, 1, missing.Index)
	assert.Equal(t, "JFK_2020-02-05", missing.Key)
}

func TestAnalyze_ForecastDayMismatch(t *testing.T) {
	engine := embeddedEngine(t)

	// ORD has a forecast for Feb 4 only
	_, err := engine.Analyze([]entity.TripAggregate{trip("ORD", date(2020, time.February, 5), 20, 10)})

	var missing *entity.MissingForecastError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "ORD_2020-02-05", missing.Key)
}

func TestAnalyze_MalformedRow(t *testing.T) {
	engine := embeddedEngine(t)
	in := []entity.TripAggregate{
		trip("ORD", date(2020, time.February, 4), 20, 10),
		trip("LAX", date(2020, time.February, 6), 120, 10),
	}

	out, err := engine.Analyze(in)
	assert.Nil(t, out)

	var malformed *entity.MalformedRowError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 1, malformed.Index)
	assert.Equal(t, "delayedPercentage", malformed.Field)
}

func TestAssess_ProjectedDelayOutOfRange(t *testing.T) {
	day := date(2020, time.February, 4)
	ord := entity.Forecast{PrecipitationProbability: 0.6, WindSpeed: 15}

	tests := []struct {
		name     string
		avgDelay float64
		forecast entity.Forecast
	}{
		{"huge positive delay", 1e19, ord},
		{"huge negative delay", -1e19, ord},
		{"infinite wind", 10, entity.Forecast{WindSpeed: math.Inf(1)}},
		{"infinite wind with zero delay", 0, entity.Forecast{WindSpeed: math.Inf(1)}},
		{"finite wind overflowing the multiplier", 10, entity.Forecast{WindSpeed: math.MaxFloat64}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Assess(trip("ORD", day, 20, tc.avgDelay), tc.forecast)
			assert.ErrorIs(t, err, ErrProjectedDelayOutOfRange)
		})
	}
}

func TestAssess_LargeDelayKeepsSign(t *testing.T) {
	ord := entity.Forecast{PrecipitationProbability: 0.6, WindSpeed: 15}
	day := date(2020, time.February, 4)

	a := mustAssess(t, trip("ORD", day, 20, 1e12), ord)
	assert.Equal(t, 3750000000000, a.ProjectedDelay)

	a = mustAssess(t, trip("ORD", day, 20, -1e12), ord)
	assert.Equal(t, -3750000000000, a.ProjectedDelay)
}

func TestAnalyze_ProjectedDelayOutOfRange(t *testing.T) {
	lookup := stubLookup{
		"ORD_2020-02-04": {PrecipitationProbability: 0.6, WindSpeed: 15},
		"DEN_2020-02-04": {PrecipitationProbability: 0.1, WindSpeed: math.Inf(1)},
	}
	engine := NewAssessmentEngine(lookup)
	day := date(2020, time.February, 4)

	for _, in := range [][]entity.TripAggregate{
		{trip("ORD", day, 20, 10), trip("ORD", day, 20, 1e19)},
		{trip("ORD", day, 20, 10), trip("DEN", day, 20, 10)},
	} {
		out, err := engine.Analyze(in)
		assert.Nil(t, out)

		var malformed *entity.MalformedRowError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, 1, malformed.Index)
		assert.Equal(t, "averageDelay", malformed.Field)
	}
}
