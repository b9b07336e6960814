package calculation

import "time"

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// resolveAsOfYear returns the plan's as-of year, falling back to the clock
func resolveAsOfYear(asOfYear int) int {
	if asOfYear > 0 {
		return asOfYear
	}
	return nowFunc().Year()
}
