package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/ledgewood-systems/notewatch/internal/diag"
	"github.com/ledgewood-systems/notewatch/internal/transcript"
)

func utcZone() (*time.Location, error) { return time.UTC, nil }

func recAtHour(id string, hour int) transcript.Record {
	return transcript.Record{
		ID:        id,
		Timestamp: time.Date(2026, 8, 14, hour, 30, 0, 0, time.UTC).Format(time.RFC3339),
	}
}

func TestHourlyActivity_Shape(t *testing.T) {
	buckets, err := HourlyActivity(nil, Range7d, testNow, utcZone, diag.Discard{})
	if err != nil {
		t.Fatalf("HourlyActivity: %v", err)
	}

	if len(buckets) != 24 {
		t.Fatalf("got %d buckets, want 24", len(buckets))
	}
	for h, b := range buckets {
		if b.Hour != h {
			t.Errorf("bucket %d has hour %d, want ascending order", h, b.Hour)
		}
		if b.Activity != 0 {
			t.Errorf("bucket %d activity = %d, want 0 for empty input", h, b.Activity)
		}
	}
}

func TestHourlyActivity_CountsPreserved(t *testing.T) {
	records := []transcript.Record{
		recAtHour("a", 9),
		recAtHour("b", 9),
		recAtHour("c", 14),
		recAtHour("d", 0),
	}

	buckets, err := HourlyActivity(records, Range7d, testNow, utcZone, diag.Discard{})
	if err != nil {
		t.Fatalf("HourlyActivity: %v", err)
	}

	total := 0
	for _, b := range buckets {
		total += b.Activity
	}
	if total != len(records) {
		t.Errorf("total activity = %d, want %d (every valid record in exactly one bucket)", total, len(records))
	}

	if buckets[9].Activity != 2 {
		t.Errorf("hour 9 activity = %d, want 2", buckets[9].Activity)
	}
	if buckets[14].Activity != 1 {
		t.Errorf("hour 14 activity = %d, want 1", buckets[14].Activity)
	}
	if buckets[0].Activity != 1 {
		t.Errorf("hour 0 activity = %d, want 1", buckets[0].Activity)
	}
}

func TestHourlyActivity_ZoneShift(t *testing.T) {
	zones := func() (*time.Location, error) {
		return time.FixedZone("UTC+5", 5*60*60), nil
	}

	records := []transcript.Record{recAtHour("a", 9)}
	buckets, err := HourlyActivity(records, Range7d, testNow, zones, diag.Discard{})
	if err != nil {
		t.Fatalf("HourlyActivity: %v", err)
	}

	if buckets[14].Activity != 1 {
		t.Errorf("expected the 09:30 UTC record in hour 14 local, got buckets[14] = %d", buckets[14].Activity)
	}
	if buckets[9].Activity != 0 {
		t.Errorf("record should not stay in its UTC hour after zone shift")
	}
}

func TestHourlyActivity_ZoneFailureFallsBackPerRecord(t *testing.T) {
	// The resolver fails on the second call only: the first record lands
	// in its shifted hour, the second keeps its UTC hour.
	calls := 0
	zones := func() (*time.Location, error) {
		calls++
		if calls == 2 {
			return nil, errors.New("zone db unavailable")
		}
		return time.FixedZone("UTC+5", 5*60*60), nil
	}

	records := []transcript.Record{
		recAtHour("shifted", 9),
		recAtHour("fallback", 9),
	}

	sink := diag.NewRecorder(nil)
	buckets, err := HourlyActivity(records, Range7d, testNow, zones, sink)
	if err != nil {
		t.Fatalf("HourlyActivity: %v", err)
	}

	if buckets[14].Activity != 1 {
		t.Errorf("shifted record: buckets[14] = %d, want 1", buckets[14].Activity)
	}
	if buckets[9].Activity != 1 {
		t.Errorf("fallback record should use its UTC hour: buckets[9] = %d, want 1", buckets[9].Activity)
	}

	if n := sink.Count(diag.TimezoneFallback); n != 1 {
		t.Fatalf("timezone fallback diagnostics = %d, want 1", n)
	}
	for _, ev := range sink.Events() {
		if ev.Kind == diag.TimezoneFallback && ev.RecordID != "fallback" {
			t.Errorf("diagnostic names record %q, want fallback", ev.RecordID)
		}
	}
}

func TestHourlyActivity_InvalidTimestampDiagKind(t *testing.T) {
	records := []transcript.Record{
		recAtHour("ok", 10),
		{ID: "broken", Timestamp: "garbage"},
	}

	sink := diag.NewRecorder(nil)
	buckets, err := HourlyActivity(records, Range7d, testNow, utcZone, sink)
	if err != nil {
		t.Fatalf("HourlyActivity: %v", err)
	}

	total := 0
	for _, b := range buckets {
		total += b.Activity
	}
	if total != 1 {
		t.Errorf("total activity = %d, want 1 (malformed record skipped)", total)
	}

	// The skip is reported under the hourly kind, distinct from the
	// window filter's, so callers can tell the pipelines apart.
	if n := sink.Count(diag.HourlyInvalidTimestamp); n != 1 {
		t.Errorf("hourly invalid-timestamp diagnostics = %d, want 1", n)
	}
	if n := sink.Count(diag.InvalidTimestamp); n != 0 {
		t.Errorf("window-filter diagnostics = %d, want 0", n)
	}
}

func TestSystemZone(t *testing.T) {
	loc, err := SystemZone("America/New_York")()
	if err != nil {
		t.Fatalf("SystemZone: %v", err)
	}
	if loc.String() != "America/New_York" {
		t.Errorf("resolved %q", loc.String())
	}

	if _, err := SystemZone("Not/AZone")(); err == nil {
		t.Error("expected error for unknown zone name")
	}

	loc, err = SystemZone("")()
	if err != nil || loc == nil {
		t.Errorf("empty name should resolve the process-local zone, got %v, %v", loc, err)
	}
}
