package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgewood-systems/notewatch/internal/analytics"
	"github.com/ledgewood-systems/notewatch/internal/output"
)

// runSummary is the bare `notewatch` invocation: metrics for the default
// range plus a compact activity sparkline.
func runSummary(cmd *cobra.Command, args []string) error {
	rc, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	r, err := rc.resolveRange("")
	if err != nil {
		return err
	}

	m, err := analytics.Aggregate(rc.records, r, rc.now, rc.diags)
	if err != nil {
		return err
	}

	renderMetrics(r, m)

	zones := analytics.SystemZone(rc.cfg.Timezone)
	buckets, err := analytics.HourlyActivity(rc.records, r, rc.now, zones, rc.diags)
	if err != nil {
		return err
	}

	peak := buckets[0]
	for _, b := range buckets {
		if b.Activity > peak.Activity {
			peak = b
		}
	}
	if peak.Activity > 0 {
		fmt.Printf(" %s %s\n\n",
			output.StyleLabel.Render("Peak hour"),
			output.StyleValue.Render(fmt.Sprintf("%02d:00", peak.Hour)))
	}

	rc.printSkipSummary()
	fmt.Println(output.StyleMuted.Render(" Subcommands: metrics, activity, sentiment, track"))
	return nil
}
