package attendance

import (
	"math"
	"time"
)

// ComputeHours turns a check-in/check-out pair plus an optional break interval
// into worked and break hours, both rounded half-up to two decimals.
//
// A break counts only when both bounds are present; a single bound is treated
// as no break. Inverted intervals and breaks escaping the worked interval are
// rejected with ErrInvalidInterval rather than silently corrected.
func ComputeHours(checkIn, checkOut time.Time, breakStart, breakEnd *time.Time) (worked, brk float64, err error) {
	if !checkOut.After(checkIn) {
		return 0, 0, ErrInvalidInterval
	}

	breakSeconds := 0.0
	if breakStart != nil && breakEnd != nil {
		if !breakEnd.After(*breakStart) {
			return 0, 0, ErrInvalidInterval
		}
		if breakStart.Before(checkIn) || breakEnd.After(checkOut) {
			return 0, 0, ErrInvalidInterval
		}
		breakSeconds = breakEnd.Sub(*breakStart).Seconds()
	}

	workedSeconds := checkOut.Sub(checkIn).Seconds() - breakSeconds
	if workedSeconds < 0 {
		workedSeconds = 0
	}

	return roundHours(workedSeconds / 3600), roundHours(breakSeconds / 3600), nil
}

// roundHours rounds half-up to two decimals.
func roundHours(h float64) float64 {
	return math.Floor(h*100+0.5) / 100
}
