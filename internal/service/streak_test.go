package service

import (
	"testing"
	"time"
)

func day(t *testing.T, offset int) time.Time {
	t.Helper()
	base := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestComputeStreak(t *testing.T) {
	t.Parallel()

	asOf := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		offsets []int // days relative to asOf
		want    int
	}{
		{"no_completions", nil, 0},
		{"three_consecutive_ending_today", []int{0, -1, -2}, 3},
		{"missing_today_resets", []int{-1, -2}, 0},
		{"gap_breaks_run", []int{0, -2}, 1},
		{"today_only", []int{0}, 1},
		{"long_run", []int{0, -1, -2, -3, -4, -5, -6}, 7},
		{"long_historical_run_without_today", []int{-2, -3, -4, -5, -6, -7, -8, -9}, 0},
		{"unordered_input", []int{-2, 0, -1}, 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var dates []time.Time
			for _, offset := range test.offsets {
				dates = append(dates, day(t, offset))
			}

			if got := ComputeStreak(dates, asOf); got != test.want {
				t.Errorf("expected streak %d, got %d", test.want, got)
			}
		})
	}
}

func TestComputeStreak_IgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	// Completions carry timestamps from different hours; only the calendar
	// day matters.
	dates := []time.Time{
		time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC),
		time.Date(2025, 6, 14, 0, 1, 0, 0, time.UTC),
	}
	asOf := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	if got := ComputeStreak(dates, asOf); got != 2 {
		t.Errorf("expected streak 2, got %d", got)
	}
}

func TestCountWithin_BoundaryInclusive(t *testing.T) {
	t.Parallel()

	asOf := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		offsets []int
		n       int
		want    int
	}{
		{"exactly_seven_days_back_counts", []int{-7}, 7, 1},
		{"eight_days_back_does_not", []int{-8}, 7, 0},
		{"mixed_week", []int{0, -3, -7, -8, -20}, 7, 3},
		{"exactly_thirty_days_back_counts", []int{-30}, 30, 1},
		{"thirty_one_days_back_does_not", []int{-31}, 30, 0},
		{"broken_streak_still_counted", []int{-4, -5, -6}, 7, 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var dates []time.Time
			for _, offset := range test.offsets {
				dates = append(dates, day(t, offset))
			}

			if got := CountWithin(dates, asOf, test.n); got != test.want {
				t.Errorf("expected %d within %d days, got %d", test.want, test.n, got)
			}
		})
	}
}
