package repository

import (
	"context"

	"tripcast-service/internal/domain/entity"
)

// TripAggregateRepository supplies pre-joined trip rows with their historical delay statistics
type TripAggregateRepository interface {
	// ListTrips returns the trips whose flights were operated in minYear or later
	ListTrips(ctx context.Context, minYear int) ([]entity.TripAggregate, error)
}
