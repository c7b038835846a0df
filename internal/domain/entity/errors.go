package entity

import "fmt"

// MissingForecastError is returned when no forecast exists for a trip's origin and date
type MissingForecastError struct {
	Index int
	Key   string
}

func (e *MissingForecastError) Error() string {
	return fmt.Sprintf("row %d: no forecast for key %q", e.Index, e.Key)
}

// MalformedRowError is returned when a trip row is missing a required field or holds an out-of-range value
type MalformedRowError struct {
	Index  int
	Field  string
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d: %s %s", e.Index, e.Field, e.Reason)
}
