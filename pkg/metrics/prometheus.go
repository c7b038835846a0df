package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Failure reasons used as the "reason" label of AssessmentFailures
const (
	ReasonFetch           = "fetch"
	ReasonMissingForecast = "missing_forecast"
	ReasonMalformedRow    = "malformed_row"
	ReasonOther           = "other"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	TripsAssessed      prometheus.Counter
	AssessmentFailures *prometheus.CounterVec
	RequestDuration    prometheus.Histogram
	ForecastEntries    prometheus.Gauge
}

// NewMetrics creates the service metrics and registers them with reg
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TripsAssessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trips_assessed_total",
			Help:      "The total number of trips annotated with an assessment",
		}),
		AssessmentFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessment_failures_total",
			Help:      "The total number of failed trip assessment requests",
		}, []string{"reason"}),
		RequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "trip_request_duration_seconds",
			Help:      "Time taken to fetch and assess trips",
			Buckets:   prometheus.DefBuckets,
		}),
		ForecastEntries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "forecast_entries",
			Help:      "Number of forecasts loaded into the reference table",
		}),
	}
}
