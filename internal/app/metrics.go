package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgewood-systems/notewatch/internal/analytics"
	"github.com/ledgewood-systems/notewatch/internal/output"
)

var metricsRange string

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Totals and period-over-period growth",
	Long: `Compute recording, hours, analysis, and bookmark totals for the selected
range, with growth percentages against the immediately preceding window of
equal length. Growth shows "n/a" when the previous period is too small for a
meaningful trend.`,
	RunE: runMetricsCmd,
}

func init() {
	metricsCmd.Flags().StringVar(&metricsRange, "range", "", "Analysis range: 7d, 30d, 90d, all")
	rootCmd.AddCommand(metricsCmd)
}

// metricsOutput is the JSON-serializable output for the metrics command.
type metricsOutput struct {
	Range   string            `json:"range"`
	Metrics analytics.Metrics `json:"metrics"`
}

func runMetricsCmd(cmd *cobra.Command, args []string) error {
	rc, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	r, err := rc.resolveRange(metricsRange)
	if err != nil {
		return err
	}

	m, err := analytics.Aggregate(rc.records, r, rc.now, rc.diags)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(metricsOutput{Range: string(r), Metrics: m})
	}

	renderMetrics(r, m)
	rc.printSkipSummary()
	return nil
}

func renderMetrics(r analytics.Range, m analytics.Metrics) {
	fmt.Println(output.Section(fmt.Sprintf("Metrics (%s)", r)))

	fmt.Printf(" %s %s %s\n",
		output.StyleLabel.Render("Recordings"),
		output.StyleValue.Render(fmt.Sprintf("%d", m.TotalRecordings)),
		output.GrowthArrow(m.Growth.Recordings))
	fmt.Printf(" %s %s %s\n",
		output.StyleLabel.Render("Estimated hours"),
		output.StyleValue.Render(fmt.Sprintf("%.1f", m.TotalHours)),
		output.GrowthArrow(m.Growth.Hours))
	fmt.Printf(" %s %s %s\n",
		output.StyleLabel.Render("Analyzed"),
		output.StyleValue.Render(fmt.Sprintf("%d", m.TotalAnalyses)),
		output.GrowthArrow(m.Growth.Analyses))
	fmt.Printf(" %s %s %s\n",
		output.StyleLabel.Render("Bookmarked"),
		output.StyleValue.Render(fmt.Sprintf("%d", m.TotalBookmarks)),
		output.GrowthArrow(m.Growth.Bookmarks))

	fmt.Println()
}
