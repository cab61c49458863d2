package domain

import "math"

// Checkout deals with two currency conventions: the payment provider charges
// in minor units (cents), order records keep major units. Both conversions
// live here so no caller multiplies by 100 on its own.

// MinorUnits converts a major-unit amount to the provider's minor-unit
// convention, rounding half away from zero.
func MinorUnits(major float64) int64 {
	return int64(math.Round(major * 100))
}

// MajorUnits converts a minor-unit amount back to major units.
func MajorUnits(minor int64) float64 {
	return float64(minor) / 100
}
