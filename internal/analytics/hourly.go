package analytics

import (
	"fmt"
	"time"

	"github.com/ledgewood-systems/notewatch/internal/diag"
	"github.com/ledgewood-systems/notewatch/internal/transcript"
)

// HourBucket is one local-hour bin of the activity histogram.
type HourBucket struct {
	Hour     int `json:"hour"`
	Activity int `json:"activity"`
}

// ZoneResolver supplies the local timezone for hour-of-day conversion. It
// is called per record so a resolution failure can be recovered for that
// record alone. SystemZone is the production resolver; tests inject their
// own.
type ZoneResolver func() (*time.Location, error)

// SystemZone resolves the configured IANA zone name, or the process-local
// zone when name is empty.
func SystemZone(name string) ZoneResolver {
	return func() (*time.Location, error) {
		if name == "" {
			return time.Local, nil
		}
		return time.LoadLocation(name)
	}
}

// HourlyActivity buckets the records for the range into 24 local-hour bins.
//
// Records with unparseable timestamps are skipped with a diagnostic
// distinct from the window filter's. If zone resolution fails for a
// record, a diagnostic names it and that record's hour is derived from the
// UTC instant instead; the computation never aborts. All 24 buckets are
// returned, hour ascending, including zero-activity hours.
func HourlyActivity(records []transcript.Record, r Range, now time.Time, zones ZoneResolver, sink diag.Sink) ([]HourBucket, error) {
	w, err := ResolveWindow(r, now)
	if err != nil {
		return nil, err
	}

	windowed, _ := filterRecords(records, w.inCurrent, diag.HourlyInvalidTimestamp, sink)

	var counts [24]int
	for _, rec := range windowed {
		t := rec.Time().UTC()

		loc, err := zones()
		if err != nil {
			sink.Emit(diag.Event{
				Kind:     diag.TimezoneFallback,
				RecordID: rec.ID,
				Detail:   fmt.Sprintf("record %s: timezone resolution failed (%v), using UTC", rec.ID, err),
			})
		} else {
			t = t.In(loc)
		}

		counts[t.Hour()]++
	}

	buckets := make([]HourBucket, 24)
	for h := range buckets {
		buckets[h] = HourBucket{Hour: h, Activity: counts[h]}
	}
	return buckets, nil
}
