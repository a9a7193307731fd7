package store

import "time"

// Snapshot is one stored analysis run.
type Snapshot struct {
	ID      int64
	TakenAt time.Time
	Range   string
	Version string
}

// MetricValue is a single named metric value belonging to a snapshot.
type MetricValue struct {
	ID         int64
	SnapshotID int64
	Name       string
	Value      float64
}
