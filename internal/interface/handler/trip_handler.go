package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"tripcast-service/internal/domain/entity"
)

// TripService defines the operations the trip handler depends on
type TripService interface {
	ListAssessedTrips(ctx context.Context, minYear int) ([]entity.AssessedTrip, error)
}

// TripHandler handles HTTP requests for assessed trips
type TripHandler struct {
	service TripService
	timeout time.Duration
}

// NewTripHandler creates a new handler with the given service
func NewTripHandler(service TripService) *TripHandler {
	return &TripHandler{service: service, timeout: 5 * time.Second}
}

// GetTrips handles GET /api/trips
// Query params: min_year (optional, defaults to the configured year)
func (h *TripHandler) GetTrips(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	minYear := 0
	if v := r.URL.Query().Get("min_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil || year < 1 || year > 9999 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: "min_year must be a year between 1 and 9999",
				Details: map[string]interface{}{
					"min_year": v,
				},
			})
			return
		}
		minYear = year
	}

	trips, err := h.service.ListAssessedTrips(ctx, minYear)
	if err != nil {
		var missing *entity.MissingForecastError
		var malformed *entity.MalformedRowError

		switch {
		case errors.As(err, &missing):
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error: "No forecast available for trip",
				Details: map[string]interface{}{
					"row": missing.Index,
					"key": missing.Key,
				},
			})
		case errors.As(err, &malformed):
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error: "Malformed trip record",
				Details: map[string]interface{}{
					"row":    malformed.Index,
					"field":  malformed.Field,
					"reason": malformed.Reason,
				},
			})
		default:
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "Failed to retrieve trips",
				Details: map[string]interface{}{
					"internal": err.Error(),
				},
			})
		}
		return
	}

	if trips == nil {
		trips = []entity.AssessedTrip{}
	}

	writeJSON(w, http.StatusOK, trips)
}
