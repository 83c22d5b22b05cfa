// Package calc provides progress arithmetic for time-based operations.
package calc

import (
	"time"

	"vidpeek/pkg/maths"
)

// Progress calculates the percentage of total that elapsed represents.
func Progress(elapsed, total time.Duration) int {
	if total > 0 {
		return maths.RoundFloat64ToInt(float64(elapsed) / float64(total) * 100)
	}

	return 0
}

// Remaining calculates how much of total is left after elapsed, never below zero.
func Remaining(elapsed, total time.Duration) time.Duration {
	if elapsed >= total {
		return 0
	}

	return total - elapsed
}
