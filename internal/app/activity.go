package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgewood-systems/notewatch/internal/analytics"
	"github.com/ledgewood-systems/notewatch/internal/output"
)

var activityRange string

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Hour-of-day activity histogram",
	Long: `Bucket recordings in the selected range by local hour of day. Hours use
the configured timezone (or the system zone); records whose timezone cannot
be resolved fall back to UTC individually.`,
	RunE: runActivityCmd,
}

func init() {
	activityCmd.Flags().StringVar(&activityRange, "range", "", "Analysis range: 7d, 30d, 90d, all")
	rootCmd.AddCommand(activityCmd)
}

// activityOutput is the JSON-serializable output for the activity command.
type activityOutput struct {
	Range   string                 `json:"range"`
	Buckets []analytics.HourBucket `json:"buckets"`
}

func runActivityCmd(cmd *cobra.Command, args []string) error {
	rc, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	r, err := rc.resolveRange(activityRange)
	if err != nil {
		return err
	}

	zones := analytics.SystemZone(rc.cfg.Timezone)
	buckets, err := analytics.HourlyActivity(rc.records, r, rc.now, zones, rc.diags)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(activityOutput{Range: string(r), Buckets: buckets})
	}

	renderActivity(r, buckets, rc.cfg.Output.Width)
	rc.printSkipSummary()
	return nil
}

func renderActivity(r analytics.Range, buckets []analytics.HourBucket, width int) {
	fmt.Println(output.Section(fmt.Sprintf("Hourly Activity (%s)", r)))

	maxActivity := 0
	for _, b := range buckets {
		if b.Activity > maxActivity {
			maxActivity = b.Activity
		}
	}

	barWidth := width - 16
	for _, b := range buckets {
		fmt.Println(output.ActivityBar(b.Hour, b.Activity, maxActivity, barWidth))
	}

	fmt.Println()
}
