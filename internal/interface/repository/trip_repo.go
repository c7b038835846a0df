package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tripcast-service/internal/domain/entity"
	"tripcast-service/internal/domain/repository"

	"gorm.io/gorm"
)

// Historical statistics are matched on carrier, month and day only, so the same
// calendar day of every recorded year contributes to a trip's delay figures.
const tripAggregateQuery = `
	SELECT
		t.fl_num   AS flight_number,
		a.airline  AS airline_name,
		t.carrier  AS airline_code,
		t.fl_date  AS flight_date,
		t.origin   AS origin,
		t.dest     AS destination,
		f.dep_time AS departure_time,
		f.arr_time AS arrival_time,
		fh.delayed_pct,
		fh.avg_delay
	FROM trips_idb tr
		INNER JOIN tickets_idb t ON tr.ticket_id = t.id
		INNER JOIN airlines_idb a ON t.carrier = a.iata_code
		INNER JOIN flights_idb f
			ON f.year >= ?
			AND t.carrier = f.carrier
			AND t.fl_date = f.fl_date
			AND t.fl_num = f.fl_num
		INNER JOIN (
			SELECT
				carrier,
				month,
				day,
				COALESCE(AVG(dep_delay), 0)::float8 AS avg_delay,
				ROUND(100 * SUM(CASE WHEN dep_delay > 0 THEN 1 ELSE 0 END)::numeric / COUNT(*), 2)::float8 AS delayed_pct
			FROM flights_cs
			WHERE
				month IN (SELECT EXTRACT(MONTH FROM t2.fl_date) FROM trips_idb tr2 INNER JOIN tickets_idb t2 ON tr2.ticket_id = t2.id)
				AND day IN (SELECT EXTRACT(DAY FROM t2.fl_date) FROM trips_idb tr2 INNER JOIN tickets_idb t2 ON tr2.ticket_id = t2.id)
			GROUP BY day, month, carrier
		) fh
			ON t.carrier = fh.carrier
			AND fh.month = EXTRACT(MONTH FROM t.fl_date)
			AND fh.day = EXTRACT(DAY FROM t.fl_date)
	ORDER BY t.fl_date, t.carrier, t.fl_num
`

// GormTripRepository implements the TripAggregateRepository interface
type GormTripRepository struct {
	db *gorm.DB
}

// NewGormTripRepository creates a new GORM trip repository
func NewGormTripRepository(db *gorm.DB) repository.TripAggregateRepository {
	return &GormTripRepository{
		db: db,
	}
}

// tripAggregateRow is the scan target of tripAggregateQuery
type tripAggregateRow struct {
	FlightNumber  string         `gorm:"column:flight_number"`
	AirlineName   string         `gorm:"column:airline_name"`
	AirlineCode   string         `gorm:"column:airline_code"`
	FlightDate    time.Time      `gorm:"column:flight_date"`
	Origin        string         `gorm:"column:origin"`
	Destination   string         `gorm:"column:destination"`
	DepartureTime sql.NullString `gorm:"column:departure_time"`
	ArrivalTime   sql.NullString `gorm:"column:arrival_time"`
	DelayedPct    float64        `gorm:"column:delayed_pct"`
	AvgDelay      float64        `gorm:"column:avg_delay"`
}

// ListTrips runs the trip aggregation for flights operated in minYear or later
func (r *GormTripRepository) ListTrips(ctx context.Context, minYear int) ([]entity.TripAggregate, error) {
	var rows []tripAggregateRow
	result := r.db.WithContext(ctx).Raw(tripAggregateQuery, minYear).Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to query trip aggregates: %w", result.Error)
	}

	// Convert rows to domain entities
	trips := make([]entity.TripAggregate, 0, len(rows))
	for _, row := range rows {
		trips = append(trips, entity.TripAggregate{
			FlightNumber:      row.FlightNumber,
			AirlineName:       row.AirlineName,
			AirlineCode:       row.AirlineCode,
			FlightDate:        row.FlightDate,
			Origin:            row.Origin,
			Destination:       row.Destination,
			DepartureTime:     row.DepartureTime.String,
			ArrivalTime:       row.ArrivalTime.String,
			DelayedPercentage: row.DelayedPct,
			AverageDelay:      row.AvgDelay,
		})
	}

	return trips, nil
}
