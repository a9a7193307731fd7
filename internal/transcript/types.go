// Package transcript defines the transcript record model and the clients
// that load records from the transcript service or a local export.
package transcript

import "time"

// Record is a single timestamped transcript entry as delivered by the
// transcript service. The analytics engine treats records as read-only.
type Record struct {
	// ID is an opaque identifier, unique within a collection.
	ID string `json:"id"`

	// Timestamp is the recording instant, expected ISO 8601. It may be
	// malformed; consumers must parse defensively.
	Timestamp string `json:"timestamp"`

	// Content is the transcribed text. Its length is used as a proxy for
	// recording duration and as sentiment fallback input.
	Content string `json:"content"`

	// Title is a display string, unused by analytics.
	Title string `json:"title"`

	// Summary is optional. A summary longer than 50 characters is the
	// signal that a record has been analyzed.
	Summary string `json:"summary,omitempty"`

	// Starred and Bookmarked are optional user flags.
	Starred    bool `json:"isStarred,omitempty"`
	Bookmarked bool `json:"isBookmarked,omitempty"`
}

// Time returns the parsed timestamp, or the zero time if it is malformed.
func (r Record) Time() time.Time {
	return ParseTimestamp(r.Timestamp)
}

// Analyzed reports whether the record carries a usable summary.
func (r Record) Analyzed() bool {
	return len(r.Summary) > 50
}

// Flagged reports whether the record is bookmarked or starred.
func (r Record) Flagged() bool {
	return r.Bookmarked || r.Starred
}
