package app

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/ledgewood-systems/notewatch/internal/analytics"
	"github.com/ledgewood-systems/notewatch/internal/config"
	"github.com/ledgewood-systems/notewatch/internal/output"
	"github.com/ledgewood-systems/notewatch/internal/store"
)

var trackRange string

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Snapshot metrics and compare against the previous run",
	Long: `Compute metrics for the selected range, store them as a snapshot in the
local database, and show deltas against the most recent previous snapshot
for the same range.`,
	RunE: runTrackCmd,
}

func init() {
	trackCmd.Flags().StringVar(&trackRange, "range", "", "Analysis range: 7d, 30d, 90d, all")
	rootCmd.AddCommand(trackCmd)
}

// snapshotMetricNames orders the stored metric keys for display.
var snapshotMetricNames = []string{"recordings", "hours", "analyses", "bookmarks"}

func runTrackCmd(cmd *cobra.Command, args []string) error {
	rc, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	r, err := rc.resolveRange(trackRange)
	if err != nil {
		return err
	}

	m, err := analytics.Aggregate(rc.records, r, rc.now, rc.diags)
	if err != nil {
		return err
	}

	zones := analytics.SystemZone(rc.cfg.Timezone)
	buckets, err := analytics.HourlyActivity(rc.records, r, rc.now, zones, rc.diags)
	if err != nil {
		return err
	}

	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Grab the previous snapshot before inserting the new one.
	prev, err := db.GetLatestSnapshot()
	if err != nil {
		return fmt.Errorf("reading previous snapshot: %w", err)
	}

	var prevValues map[string]float64
	if prev != nil && prev.Range == string(r) {
		prevValues, err = db.GetMetricValues(prev.ID)
		if err != nil {
			return fmt.Errorf("reading previous metrics: %w", err)
		}
	}

	snapshotID, err := db.CreateSnapshot(string(r), appVersion, rc.now)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}

	values := map[string]float64{
		"recordings": float64(m.TotalRecordings),
		"hours":      m.TotalHours,
		"analyses":   float64(m.TotalAnalyses),
		"bookmarks":  float64(m.TotalBookmarks),
	}
	for _, name := range snapshotMetricNames {
		if err := db.InsertMetricValue(snapshotID, name, values[name]); err != nil {
			return fmt.Errorf("storing metric %s: %w", name, err)
		}
	}
	for _, b := range buckets {
		if err := db.InsertHourlyActivity(snapshotID, b.Hour, b.Activity); err != nil {
			return fmt.Errorf("storing hourly activity: %w", err)
		}
	}

	renderTrack(r, values, prevValues)
	rc.printSkipSummary()
	return nil
}

func renderTrack(r analytics.Range, curr, prev map[string]float64) {
	fmt.Println(output.Section(fmt.Sprintf("Snapshot (%s)", r)))

	table := output.NewTable("Metric", "Value", "Change")
	for _, name := range snapshotMetricNames {
		change := output.StyleMuted.Render("first snapshot")
		if prev != nil {
			change = deltaLabel(curr[name] - prev[name])
		}
		table.AddRow(name, fmt.Sprintf("%.1f", curr[name]), change)
	}
	table.Print()
	fmt.Println()
}

// deltaLabel renders a snapshot-over-snapshot delta with direction color.
func deltaLabel(delta float64) string {
	if math.Abs(delta) < 1e-9 {
		return output.StyleMuted.Render("─")
	}
	if delta > 0 {
		return output.StyleSuccess.Render(fmt.Sprintf("▲ +%.1f", delta))
	}
	return output.StyleError.Render(fmt.Sprintf("▼ %.1f", delta))
}
