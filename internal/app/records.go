package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ledgewood-systems/notewatch/internal/analytics"
	"github.com/ledgewood-systems/notewatch/internal/config"
	"github.com/ledgewood-systems/notewatch/internal/diag"
	"github.com/ledgewood-systems/notewatch/internal/output"
	"github.com/ledgewood-systems/notewatch/internal/transcript"
)

// runContext bundles everything a command needs after setup: config,
// loaded records, and a diagnostics recorder wrapping the logging sink.
type runContext struct {
	cfg     *config.Config
	records []transcript.Record
	diags   *diag.Recorder
	now     time.Time
}

// setup loads config, applies output flags, builds the diagnostics chain,
// and loads records from the --input export or the remote source.
func setup(ctx context.Context) (*runContext, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	}

	log := logrus.New()
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	diags := diag.NewRecorder(diag.NewLogger(log))

	var records []transcript.Record
	if flagInput != "" {
		records, err = transcript.LoadFile(flagInput)
		if err != nil {
			return nil, fmt.Errorf("loading export: %w", err)
		}
	} else {
		source := transcript.NewSource(cfg.SourceURL, cfg.APIKey)
		records, err = source.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching transcripts: %w", err)
		}
	}

	return &runContext{
		cfg:     cfg,
		records: records,
		diags:   diags,
		now:     time.Now(),
	}, nil
}

// resolveRange validates the --range flag, falling back to the configured
// default when empty.
func (rc *runContext) resolveRange(flag string) (analytics.Range, error) {
	if flag == "" {
		flag = rc.cfg.DefaultRange
	}
	return analytics.ParseRange(flag)
}

// printSkipSummary surfaces aggregate diagnostic counts after rendering,
// per the engine's contract that diagnostics are a side channel, never an
// error.
func (rc *runContext) printSkipSummary() {
	invalid := rc.diags.Count(diag.InvalidTimestamp) + rc.diags.Count(diag.HourlyInvalidTimestamp)
	if invalid > 0 {
		fmt.Printf(" %s\n", output.StyleMuted.Render(
			fmt.Sprintf("%d record(s) skipped due to invalid dates", invalid)))
	}
	if n := rc.diags.Count(diag.TimezoneFallback); n > 0 {
		fmt.Printf(" %s\n", output.StyleMuted.Render(
			fmt.Sprintf("%d record(s) binned in UTC after timezone resolution failed", n)))
	}
	if n := rc.diags.Count(diag.SentimentCallFailed) + rc.diags.Count(diag.SentimentUnusable); n > 0 {
		fmt.Printf(" %s\n", output.StyleMuted.Render(
			fmt.Sprintf("%d record(s) scored with the local sentiment fallback", n)))
	}
}
