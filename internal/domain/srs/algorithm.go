package srs

import "time"

var defaultParams = NewDefaultParams()

// calculateInterval looks up the delay for difficulty in params.
// Only exact table values match; 2.5 or 4 fall through to the default.
func calculateInterval(difficulty *float64, params *Params) time.Duration {
	if difficulty == nil {
		return params.DefaultInterval
	}
	if interval, ok := params.Intervals[*difficulty]; ok {
		return interval
	}
	return params.DefaultInterval
}

// calculateNextReview resolves the next review time. A non-nil, non-zero override
// wins over the table.
func calculateNextReview(difficulty *float64, override *time.Time, now time.Time, params *Params) time.Time {
	if override != nil && !override.IsZero() {
		return *override
	}
	return now.Add(calculateInterval(difficulty, params))
}

// IntervalFor returns the delay the default table assigns to difficulty.
func IntervalFor(difficulty *float64) time.Duration {
	return calculateInterval(difficulty, defaultParams)
}

// NextReview computes when a card should next be reviewed using the default table.
//
// An explicit override is returned unchanged. Otherwise difficulty 1 schedules
// now+7d, 2 now+3d, 3 now+1d, and anything else (including nil) now+1d.
func NextReview(difficulty *float64, override *time.Time, now time.Time) time.Time {
	return calculateNextReview(difficulty, override, now, defaultParams)
}
