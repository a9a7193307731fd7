package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgewood-systems/notewatch/internal/ai"
	"github.com/ledgewood-systems/notewatch/internal/analytics"
	"github.com/ledgewood-systems/notewatch/internal/output"
)

var sentimentRange string

var sentimentCmd = &cobra.Command{
	Use:   "sentiment",
	Short: "Sentiment trend over the selected range",
	Long: `Score each recording's sentiment via the analysis service, falling back
to a deterministic local word-list score when the service is unavailable or
returns an unusable response. Scores are memoized per record for the life of
the process.`,
	RunE: runSentimentCmd,
}

func init() {
	sentimentCmd.Flags().StringVar(&sentimentRange, "range", "", "Analysis range: 7d, 30d, 90d, all")
	rootCmd.AddCommand(sentimentCmd)
}

// sentimentOutput is the JSON-serializable output for the sentiment command.
type sentimentOutput struct {
	Range  string                 `json:"range"`
	Points []analytics.TrendPoint `json:"points"`
}

func runSentimentCmd(cmd *cobra.Command, args []string) error {
	rc, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	r, err := rc.resolveRange(sentimentRange)
	if err != nil {
		return err
	}

	client := ai.NewClient(rc.cfg.APIKey, rc.cfg.Model)
	gen := analytics.NewTrendGenerator(client, analytics.NewSentimentCache(), rc.diags)

	points, err := gen.Trend(cmd.Context(), rc.records, r, rc.now)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sentimentOutput{Range: string(r), Points: points})
	}

	renderSentiment(r, points)
	rc.printSkipSummary()
	return nil
}

func renderSentiment(r analytics.Range, points []analytics.TrendPoint) {
	fmt.Println(output.Section(fmt.Sprintf("Sentiment Trend (%s)", r)))

	if len(points) == 0 {
		fmt.Printf(" %s\n\n", output.StyleMuted.Render("No recordings in range"))
		return
	}

	table := output.NewTable("Date", "Score")
	for _, p := range points {
		table.AddRow(
			p.Timestamp.Format("2006-01-02 15:04"),
			output.SentimentLabel(p.Value),
		)
	}
	table.Print()

	var sum float64
	for _, p := range points {
		sum += p.Value
	}
	avg := sum / float64(len(points))
	fmt.Printf("\n %s %s\n\n",
		output.StyleLabel.Render("Average"),
		output.SentimentLabel(avg))
}
