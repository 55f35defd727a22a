// Package quarter generates the rolling fiscal-quarter labels used for
// project target periods.
package quarter

import (
	"fmt"
	"time"
)

// TBD is the open-ended target sentinel appended after the quarter labels.
const TBD = "TBD"

// Of returns the fiscal quarter (1..4) containing t.
func Of(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// Labels returns the next three quarter labels starting at the quarter
// containing now, formatted "{q}Q{year}" with year rollover, followed by
// the TBD sentinel. The clock is injected so callers stay deterministic.
func Labels(now time.Time) []string {
	q := Of(now)
	year := now.Year()

	out := make([]string, 0, 4)
	for i := 0; i < 3; i++ {
		out = append(out, fmt.Sprintf("%dQ%d", q, year))
		q++
		if q > 4 {
			q = 1
			year++
		}
	}
	return append(out, TBD)
}

// Valid reports whether target is one of the currently offered labels.
func Valid(now time.Time, target string) bool {
	for _, l := range Labels(now) {
		if l == target {
			return true
		}
	}
	return false
}
