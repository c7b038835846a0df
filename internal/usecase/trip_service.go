package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripcast-service/internal/domain/entity"
	"tripcast-service/internal/domain/repository"
	"tripcast-service/pkg/logger"
	"tripcast-service/pkg/metrics"
)

// TripService fetches trip aggregates and assesses them
type TripService struct {
	tripRepo       repository.TripAggregateRepository
	engine         *AssessmentEngine
	defaultMinYear int
	metrics        *metrics.Metrics
	logger         logger.Logger
	now            func() time.Time
}

// NewTripService creates a new trip service.
// defaultMinYear is used when a request does not name a year; 0 means the current year.
func NewTripService(
	tripRepo repository.TripAggregateRepository,
	engine *AssessmentEngine,
	defaultMinYear int,
	m *metrics.Metrics,
	logger logger.Logger,
) *TripService {
	return &TripService{
		tripRepo:       tripRepo,
		engine:         engine,
		defaultMinYear: defaultMinYear,
		metrics:        m,
		logger:         logger,
		now:            time.Now,
	}
}

// ResolveMinYear returns the year filter used for a request
func (s *TripService) ResolveMinYear(minYear int) int {
	if minYear > 0 {
		return minYear
	}
	if s.defaultMinYear > 0 {
		return s.defaultMinYear
	}
	return s.now().UTC().Year()
}

// ListAssessedTrips returns the assessed trips for flights operated in minYear or later
func (s *TripService) ListAssessedTrips(ctx context.Context, minYear int) ([]entity.AssessedTrip, error) {
	start := time.Now()
	defer func() {
		s.metrics.RequestDuration.Observe(time.Since(start).Seconds())
	}()

	year := s.ResolveMinYear(minYear)

	trips, err := s.tripRepo.ListTrips(ctx, year)
	if err != nil {
		s.metrics.AssessmentFailures.WithLabelValues(metrics.ReasonFetch).Inc()
		s.logger.Error("Failed to fetch trips", "minYear", year, "error", err)
		return nil, fmt.Errorf("fetch trips: %w", err)
	}

	assessed, err := s.engine.Analyze(trips)
	if err != nil {
		s.metrics.AssessmentFailures.WithLabelValues(failureReason(err)).Inc()
		s.logger.Error("Failed to assess trips", "minYear", year, "trips", len(trips), "error", err)
		return nil, fmt.Errorf("assess trips: %w", err)
	}

	s.metrics.TripsAssessed.Add(float64(len(assessed)))
	s.logger.Info("Assessed trips", "minYear", year, "count", len(assessed))

	return assessed, nil
}

func failureReason(err error) string {
	var missing *entity.MissingForecastError
	var malformed *entity.MalformedRowError
	switch {
	case errors.As(err, &missing):
		return metrics.ReasonMissingForecast
	case errors.As(err, &malformed):
		return metrics.ReasonMalformedRow
	default:
		return metrics.ReasonOther
	}
}
