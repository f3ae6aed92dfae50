package srs

import "time"

// Day is the length of one scheduling day.
const Day = 24 * time.Hour

// Params defines the difficulty-to-interval table used by the scheduler.
type Params struct {
	// Intervals maps a difficulty rating to the delay before the next review.
	Intervals map[float64]time.Duration

	// DefaultInterval applies to absent or unrecognised ratings.
	DefaultInterval time.Duration
}

// NewDefaultParams creates a new Params instance with the standard table:
// 1 (easy) waits a week, 2 (medium) three days, 3 (hard) one day.
func NewDefaultParams() *Params {
	return &Params{
		Intervals: map[float64]time.Duration{
			1: 7 * Day,
			2: 3 * Day,
			3: 1 * Day,
		},
		DefaultInterval: 1 * Day,
	}
}
