package store

import (
	"database/sql"
	"time"
)

// CreateSnapshot inserts a new snapshot and returns its ID.
func (db *DB) CreateSnapshot(rangeName, version string, takenAt time.Time) (int64, error) {
	result, err := db.conn.Exec(
		"INSERT INTO snapshots (taken_at, range_name, version) VALUES (?, ?, ?)",
		takenAt.UTC().Format(time.RFC3339), rangeName, version,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetLatestSnapshot returns the most recent snapshot, or nil if none exist.
func (db *DB) GetLatestSnapshot() (*Snapshot, error) {
	row := db.conn.QueryRow("SELECT id, taken_at, range_name, version FROM snapshots ORDER BY id DESC LIMIT 1")
	return scanSnapshot(row)
}

// GetSnapshotN returns the Nth most recent snapshot (1 = latest, 2 = previous).
func (db *DB) GetSnapshotN(n int) (*Snapshot, error) {
	row := db.conn.QueryRow(
		"SELECT id, taken_at, range_name, version FROM snapshots ORDER BY id DESC LIMIT 1 OFFSET ?",
		n-1,
	)
	return scanSnapshot(row)
}

func scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var s Snapshot
	var takenAt string
	err := row.Scan(&s.ID, &takenAt, &s.Range, &s.Version)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	return &s, nil
}

// InsertMetricValue inserts one named metric value for a snapshot. NaN
// growth sentinels must not be stored; callers skip them.
func (db *DB) InsertMetricValue(snapshotID int64, name string, value float64) error {
	_, err := db.conn.Exec(
		"INSERT INTO metric_values (snapshot_id, metric_name, metric_value) VALUES (?, ?, ?)",
		snapshotID, name, value,
	)
	return err
}

// GetMetricValues returns all metric values for a snapshot keyed by name.
func (db *DB) GetMetricValues(snapshotID int64) (map[string]float64, error) {
	rows, err := db.conn.Query(
		"SELECT metric_name, metric_value FROM metric_values WHERE snapshot_id = ?",
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	values := make(map[string]float64)
	for rows.Next() {
		var name string
		var value float64
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		values[name] = value
	}
	return values, rows.Err()
}

// InsertHourlyActivity inserts one hour bucket for a snapshot.
func (db *DB) InsertHourlyActivity(snapshotID int64, hour, activity int) error {
	_, err := db.conn.Exec(
		"INSERT INTO hourly_activity (snapshot_id, hour, activity) VALUES (?, ?, ?)",
		snapshotID, hour, activity,
	)
	return err
}

// GetHourlyActivity returns the 24 stored hour buckets for a snapshot as
// an activity-by-hour slice.
func (db *DB) GetHourlyActivity(snapshotID int64) ([24]int, error) {
	var counts [24]int

	rows, err := db.conn.Query(
		"SELECT hour, activity FROM hourly_activity WHERE snapshot_id = ? ORDER BY hour",
		snapshotID,
	)
	if err != nil {
		return counts, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var hour, activity int
		if err := rows.Scan(&hour, &activity); err != nil {
			return counts, err
		}
		if hour >= 0 && hour < 24 {
			counts[hour] = activity
		}
	}
	return counts, rows.Err()
}
