package repository

import (
	"context"
	"time"

	"tripcast-service/internal/domain/entity"
)

// ForecastLookup resolves the forecast for an airport on a given day.
// Implementations must be safe for concurrent reads.
type ForecastLookup interface {
	Lookup(origin string, date time.Time) (entity.Forecast, bool)
}

// ForecastRepository defines the interface for forecast storage operations
type ForecastRepository interface {
	FindAll(ctx context.Context) ([]entity.ForecastRecord, error)
	UpsertMany(ctx context.Context, records []entity.ForecastRecord) error
}
