package forecast

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"tripcast-service/internal/domain/entity"
)

// Table is an immutable forecast lookup keyed by "{origin}_{YYYY-MM-DD}".
// It is built once and only read afterwards, so concurrent lookups need no locking.
type Table struct {
	entries map[string]entity.Forecast
}

// NewTable validates the records and builds a table from them
func NewTable(records []entity.ForecastRecord) (*Table, error) {
	entries := make(map[string]entity.Forecast, len(records))

	for i, rec := range records {
		if err := validateRecord(rec); err != nil {
			return nil, fmt.Errorf("forecast %d: %w", i, err)
		}
		key := rec.Key()
		if _, exists := entries[key]; exists {
			return nil, fmt.Errorf("forecast %d: duplicate key %q", i, key)
		}
		entries[key] = rec.Forecast
	}

	return &Table{entries: entries}, nil
}

// Lookup returns the forecast for origin on the UTC day of date
func (t *Table) Lookup(origin string, date time.Time) (entity.Forecast, bool) {
	f, ok := t.entries[entity.ForecastKey(origin, date)]
	return f, ok
}

// Len returns the number of forecasts in the table
func (t *Table) Len() int {
	return len(t.entries)
}

// Records returns the table content sorted by key
func (t *Table) Records() []entity.ForecastRecord {
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	records := make([]entity.ForecastRecord, 0, len(keys))
	for _, k := range keys {
		// keys are built as origin + "_" + date, and dates never contain "_"
		sep := strings.LastIndex(k, "_")
		records = append(records, entity.ForecastRecord{
			Origin:   k[:sep],
			Date:     k[sep+1:],
			Forecast: t.entries[k],
		})
	}
	return records
}

func validateRecord(rec entity.ForecastRecord) error {
	if rec.Origin == "" {
		return fmt.Errorf("origin is required")
	}
	if _, err := time.Parse(entity.ForecastKeyDateLayout, rec.Date); err != nil {
		return fmt.Errorf("date %q: %w", rec.Date, err)
	}
	p := rec.Forecast.PrecipitationProbability
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%s: precipitation probability %v outside [0,1]", rec.Key(), p)
	}
	w := rec.Forecast.WindSpeed
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return fmt.Errorf("%s: wind speed %v must be a finite non-negative number", rec.Key(), w)
	}
	return nil
}
