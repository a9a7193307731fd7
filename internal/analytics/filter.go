package analytics

import (
	"fmt"
	"time"

	"github.com/ledgewood-systems/notewatch/internal/diag"
	"github.com/ledgewood-systems/notewatch/internal/transcript"
)

// intervalMembership decides whether a parsed timestamp belongs to the
// interval being filtered.
type intervalMembership func(time.Time) bool

// filterRecords returns the records whose timestamp parses and satisfies
// the membership test, preserving input order. Records with malformed
// timestamps are excluded, counted, and reported through the sink with the
// given diagnostic kind.
func filterRecords(records []transcript.Record, in intervalMembership, kind diag.Kind, sink diag.Sink) (kept []transcript.Record, invalid int) {
	for _, rec := range records {
		t := rec.Time()
		if t.IsZero() {
			invalid++
			sink.Emit(diag.Event{
				Kind:     kind,
				RecordID: rec.ID,
				Detail:   fmt.Sprintf("record %s excluded: unparseable timestamp %q", rec.ID, rec.Timestamp),
			})
			continue
		}
		if in(t) {
			kept = append(kept, rec)
		}
	}
	return kept, invalid
}

// FilterCurrent returns the records inside the window's current interval.
func FilterCurrent(records []transcript.Record, w Window, sink diag.Sink) ([]transcript.Record, int) {
	return filterRecords(records, w.inCurrent, diag.InvalidTimestamp, sink)
}

// FilterPrevious returns the records inside the window's previous interval.
// For RangeAll windows the result is always empty.
func FilterPrevious(records []transcript.Record, w Window, sink diag.Sink) ([]transcript.Record, int) {
	if !w.HasPrevious {
		return nil, 0
	}
	return filterRecords(records, w.inPrevious, diag.InvalidTimestamp, sink)
}
