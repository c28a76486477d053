package service

import (
	"time"

	"github.com/glowtrack/glowtrack/internal/repository"
)

// ComputeStreak returns the number of consecutive calendar days with a
// completion, ending at asOf. Missing asOf resets the streak to 0 no matter
// how long the historical run is. Pure function of the date set.
func ComputeStreak(dates []time.Time, asOf time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	days := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		days[repository.Day(d)] = struct{}{}
	}

	streak := 0
	for day := repository.Day(asOf); ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[day]; !ok {
			break
		}
		streak++
	}
	return streak
}

// CountWithin returns how many completion dates fall within the last n days
// of asOf, inclusive: a date exactly n days back still counts (asOf − d ≤ n,
// not <). All historical completions are considered, not just the trailing
// streak.
func CountWithin(dates []time.Time, asOf time.Time, n int) int {
	cutoff := repository.Day(asOf).AddDate(0, 0, -n)

	count := 0
	for _, d := range dates {
		if !repository.Day(d).Before(cutoff) {
			count++
		}
	}
	return count
}
