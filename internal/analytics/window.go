// Package analytics is the time-windowed aggregation engine for transcript
// records: totals, period-over-period growth, hour-of-day activity, and
// sentiment trends.
package analytics

import (
	"fmt"
	"time"
)

// Range is a named analysis window.
type Range string

// Supported ranges. Anything else is a caller contract violation.
const (
	Range7d  Range = "7d"
	Range30d Range = "30d"
	Range90d Range = "90d"
	RangeAll Range = "all"
)

// ParseRange validates a range token from user input.
func ParseRange(s string) (Range, error) {
	switch Range(s) {
	case Range7d, Range30d, Range90d, RangeAll:
		return Range(s), nil
	}
	return "", fmt.Errorf("invalid range %q: must be one of 7d, 30d, 90d, all", s)
}

// days returns the window length in days, or 0 for RangeAll.
func (r Range) days() int {
	switch r {
	case Range7d:
		return 7
	case Range30d:
		return 30
	case Range90d:
		return 90
	}
	return 0
}

// Window holds the resolved current and previous comparison intervals.
//
// The current interval is inclusive at both ends. The previous interval is
// inclusive at its start and exclusive at its end, so the two are
// contiguous and non-overlapping: PreviousEnd == CurrentStart always holds
// when HasPrevious is true, and both intervals have equal length. That
// symmetry is what makes growth percentages comparable.
type Window struct {
	CurrentStart time.Time
	CurrentEnd   time.Time

	PreviousStart time.Time
	PreviousEnd   time.Time

	// HasPrevious is false for RangeAll, which has no comparison window.
	HasPrevious bool
}

// ResolveWindow maps a range token to concrete interval boundaries relative
// to the reference instant. Callers pass time.Now() in production and a
// fixed instant in tests. An unsupported token fails fast with an error.
func ResolveWindow(r Range, now time.Time) (Window, error) {
	if r == RangeAll {
		return Window{CurrentEnd: now}, nil
	}

	n := r.days()
	if n == 0 {
		return Window{}, fmt.Errorf("invalid range %q: must be one of 7d, 30d, 90d, all", string(r))
	}

	return Window{
		CurrentStart:  now.AddDate(0, 0, -n),
		CurrentEnd:    now,
		PreviousStart: now.AddDate(0, 0, -2*n),
		PreviousEnd:   now.AddDate(0, 0, -n),
		HasPrevious:   true,
	}, nil
}

// inCurrent reports whether t falls inside the current interval. For
// RangeAll windows the start is open-ended.
func (w Window) inCurrent(t time.Time) bool {
	if !t.After(w.CurrentEnd) {
		if w.CurrentStart.IsZero() {
			return true
		}
		return !t.Before(w.CurrentStart)
	}
	return false
}

// inPrevious reports whether t falls inside the previous interval
// (start inclusive, end exclusive).
func (w Window) inPrevious(t time.Time) bool {
	return w.HasPrevious && !t.Before(w.PreviousStart) && t.Before(w.PreviousEnd)
}
