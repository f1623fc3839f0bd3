package utils

import (
	"fmt"
	"math"
)

// FormatPace renders seconds-per-kilometre as m:ss, e.g. 233.3 -> "3:53".
func FormatPace(secondsPerKm float64) string {
	if secondsPerKm <= 0 || math.IsNaN(secondsPerKm) || math.IsInf(secondsPerKm, 0) {
		return "-"
	}

	total := int(math.Round(secondsPerKm))
	minutes := total / 60
	seconds := total % 60
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormatVelocity renders metres-per-second with two decimals.
func FormatVelocity(metersPerSecond float64) string {
	if metersPerSecond <= 0 || math.IsNaN(metersPerSecond) || math.IsInf(metersPerSecond, 0) {
		return "-"
	}
	return fmt.Sprintf("%.2f m/s", metersPerSecond)
}
