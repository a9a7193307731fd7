package analytics

import (
	"math"
	"time"

	"github.com/ledgewood-systems/notewatch/internal/diag"
	"github.com/ledgewood-systems/notewatch/internal/transcript"
)

// minPreviousSample is the smallest previous-period value for which a
// growth percentage is considered statistically meaningful. Below it the
// growth field is NaN, which callers must treat as "insufficient data",
// never as zero.
const minPreviousSample = 5

// Growth holds period-over-period growth percentages per metric. Any field
// may be NaN (see minPreviousSample); RangeAll windows have no previous
// period, so every field is NaN.
type Growth struct {
	Recordings float64 `json:"recordings"`
	Hours      float64 `json:"hours"`
	Analyses   float64 `json:"analyses"`
	Bookmarks  float64 `json:"bookmarks"`
}

// Metrics is an immutable aggregation snapshot for one range. It is built
// fresh on every call and never mutated afterwards.
type Metrics struct {
	TotalRecordings int     `json:"total_recordings"`
	TotalHours      float64 `json:"total_hours"`
	TotalAnalyses   int     `json:"total_analyses"`
	TotalBookmarks  int     `json:"total_bookmarks"`

	Growth Growth `json:"growth_percentages"`

	// InvalidDateCount tallies records excluded for malformed timestamps
	// across both filtering passes.
	InvalidDateCount int `json:"invalid_date_count"`
}

// windowTotals are the four raw metrics for one filtered subset.
type windowTotals struct {
	recordings int
	hours      float64
	analyses   int
	bookmarks  int
}

func tally(records []transcript.Record) windowTotals {
	var t windowTotals
	t.recordings = len(records)
	for _, rec := range records {
		t.hours += EstimateHours(rec.Content)
		if rec.Analyzed() {
			t.analyses++
		}
		if rec.Flagged() {
			t.bookmarks++
		}
	}
	return t
}

// growthPercent computes the period-over-period growth for one metric.
// Edge policy, in precedence order:
//
//	previous == 0, current > 0  → +100
//	previous == 0, current == 0 → 0
//	previous < minPreviousSample → NaN
//	otherwise ((current−previous)/previous) × 100
func growthPercent(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	if previous < minPreviousSample {
		return math.NaN()
	}
	return (current - previous) / previous * 100
}

// noGrowth is the all-NaN Growth used when no previous window exists.
func noGrowth() Growth {
	nan := math.NaN()
	return Growth{Recordings: nan, Hours: nan, Analyses: nan, Bookmarks: nan}
}

// Aggregate resolves the window for the range, filters the collection into
// current and previous subsets, and produces the metrics snapshot. Empty
// input is not an error: counts are zero and the growth edge policies
// apply. An invalid range token is the only error condition.
func Aggregate(records []transcript.Record, r Range, now time.Time, sink diag.Sink) (Metrics, error) {
	w, err := ResolveWindow(r, now)
	if err != nil {
		return Metrics{}, err
	}

	current, invalidCurrent := FilterCurrent(records, w, sink)
	cur := tally(current)

	m := Metrics{
		TotalRecordings:  cur.recordings,
		TotalHours:       cur.hours,
		TotalAnalyses:    cur.analyses,
		TotalBookmarks:   cur.bookmarks,
		InvalidDateCount: invalidCurrent,
	}

	if !w.HasPrevious {
		m.Growth = noGrowth()
		return m, nil
	}

	previous, invalidPrevious := FilterPrevious(records, w, sink)
	m.InvalidDateCount += invalidPrevious

	prev := tally(previous)
	m.Growth = Growth{
		Recordings: growthPercent(float64(cur.recordings), float64(prev.recordings)),
		Hours:      growthPercent(cur.hours, prev.hours),
		Analyses:   growthPercent(float64(cur.analyses), float64(prev.analyses)),
		Bookmarks:  growthPercent(float64(cur.bookmarks), float64(prev.bookmarks)),
	}

	return m, nil
}
