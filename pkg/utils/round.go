package utils

import "math"

// Round rounds value to precision decimal places by scaling, rounding half away
// from zero and scaling back. Results follow the float64 product, so
// Round(1.005, 2) is 1 because 1.005*100 is 100.49999999999999.
func Round(value float64, precision int) float64 {
	multiplier := math.Pow(10, float64(precision))
	return math.Round(value*multiplier) / multiplier
}
