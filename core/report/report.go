// Package report derives occupancy and usage figures from lot snapshots.
// Every function is a pure computation over the data it is handed.
package report

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/parkwise/parkwise/core/model"
)

// PeakHours builds the histogram of session entries per hour of day over the
// whole history, active and closed sessions alike. All 24 buckets are present
// even when zero.
func PeakHours(history []model.Session) [24]int {
	var counts [24]int
	for _, s := range history {
		counts[s.EntryTime.Hour()]++
	}
	return counts
}

// HourCount pairs an hour of day with its entry count.
type HourCount struct {
	Hour  int
	Count int
}

// TopPeakHours returns the n busiest hours, busiest first. Ties resolve to
// the earlier hour so the ranking is stable.
func TopPeakHours(counts [24]int, n int) []HourCount {
	res := make([]HourCount, 0, 24)
	for h, c := range counts {
		res = append(res, HourCount{Hour: h, Count: c})
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Count > res[j].Count })
	if n < len(res) {
		res = res[:n]
	}
	return res
}

// OccupancyRate returns 100 * occupied / total, or 0 when total is 0.
func OccupancyRate(occupied, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(occupied) * 100 / float64(total)
}

// StayStats returns the mean and standard deviation of stay duration in
// minutes across closed sessions. Both are 0 when no session has closed yet.
func StayStats(history []model.Session, now time.Time) (mean, stddev float64) {
	var durations []float64
	for i := range history {
		if history[i].Active() {
			continue
		}
		durations = append(durations, float64(history[i].DurationMinutes(now)))
	}
	if len(durations) == 0 {
		return 0, 0
	}
	mean = stat.Mean(durations, nil)
	if len(durations) > 1 {
		stddev = stat.StdDev(durations, nil)
	}
	return mean, stddev
}
