package utils

import "math"

// Round2 rounds a money amount to 2 decimal places.
// Uses math.Round, not truncation, so repeated cart math doesn't drift.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
