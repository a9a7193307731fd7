// Package diag is the diagnostics side channel for the analytics engine.
//
// The engine never surfaces partial failures as errors: malformed
// timestamps, timezone fallbacks, and unusable sentiment responses are
// reported here and processing continues. The presentation layer decides
// whether to show aggregate counts to the user.
package diag

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Kind identifies the category of a diagnostic event.
type Kind string

const (
	// InvalidTimestamp is a record excluded during window filtering
	// because its timestamp could not be parsed.
	InvalidTimestamp Kind = "invalid_timestamp"

	// HourlyInvalidTimestamp is a record skipped by the hourly binner
	// because its timestamp could not be parsed. Kept distinct from
	// InvalidTimestamp so callers can tell the two stages apart.
	HourlyInvalidTimestamp Kind = "hourly_invalid_timestamp"

	// TimezoneFallback is a record whose local-hour conversion fell back
	// to UTC because timezone resolution failed.
	TimezoneFallback Kind = "timezone_fallback"

	// SentimentUnusable is an external analysis response whose payload
	// shape was neither a numeric score nor a known label.
	SentimentUnusable Kind = "sentiment_unusable"

	// SentimentCallFailed is an external analysis call that returned an
	// error and was replaced by the local fallback score.
	SentimentCallFailed Kind = "sentiment_call_failed"
)

// Event is a single diagnostic occurrence tied to a record.
type Event struct {
	Kind     Kind
	RecordID string
	Detail   string
}

// Sink receives diagnostic events. Implementations must be safe for
// concurrent use if the host is concurrent.
type Sink interface {
	Emit(Event)
}

// Logger is a Sink that writes events as structured logrus warnings.
type Logger struct {
	log *logrus.Logger
}

// NewLogger returns a Sink backed by the given logrus logger.
func NewLogger(log *logrus.Logger) *Logger {
	return &Logger{log: log}
}

// Emit logs the event at warning level with kind and record id fields.
func (l *Logger) Emit(e Event) {
	l.log.WithFields(logrus.Fields{
		"kind":      string(e.Kind),
		"record_id": e.RecordID,
	}).Warn(e.Detail)
}

// Recorder is a Sink that collects events in memory. It is used by tests
// and by the CLI to print aggregate skip counts after rendering.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	next   Sink
}

// NewRecorder returns an empty Recorder. If next is non-nil, every event
// is forwarded to it after being recorded.
func NewRecorder(next Sink) *Recorder {
	return &Recorder{next: next}
}

// Emit records the event and forwards it to the wrapped sink, if any.
func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()

	if r.next != nil {
		r.next.Emit(e)
	}
}

// Events returns a copy of all recorded events in emission order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns the number of recorded events of the given kind.
func (r *Recorder) Count(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Discard is a Sink that drops every event.
type Discard struct{}

// Emit does nothing.
func (Discard) Emit(Event) {}
