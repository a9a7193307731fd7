package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/ledgewood-systems/notewatch/internal/diag"
	"github.com/ledgewood-systems/notewatch/internal/transcript"
)

// Label values mapped to fixed representative scores when the analysis
// service answers with a classification instead of a number.
const (
	labelPositiveScore = 75.0
	labelNegativeScore = -75.0
	labelNeutralScore  = 0.0
)

// SentimentClient is the external analysis call. The raw payload is the
// service's `data` field, whose shape is not guaranteed; classification
// happens here. Failures never propagate past the trend generator — they
// are always converted to the local fallback.
type SentimentClient interface {
	AnalyzeSentiment(ctx context.Context, content string) (json.RawMessage, error)
}

// TrendPoint is one record's sentiment sample.
type TrendPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// TrendGenerator produces sentiment time series from transcript records.
// The cache is injected so tests get fresh instances and hosts can swap in
// an evicting wrapper later.
type TrendGenerator struct {
	client SentimentClient
	cache  *SentimentCache
	sink   diag.Sink
}

// NewTrendGenerator wires a generator to its analysis client, cache, and
// diagnostics sink.
func NewTrendGenerator(client SentimentClient, cache *SentimentCache, sink diag.Sink) *TrendGenerator {
	return &TrendGenerator{client: client, cache: cache, sink: sink}
}

// scoreKind tags the classification of an analysis payload.
type scoreKind int

const (
	scoreNumeric scoreKind = iota
	scoreLabel
	scoreUnusable
)

// classified is the outcome of the single payload-classification step.
type classified struct {
	kind  scoreKind
	value float64
	shape string
}

// classifyPayload inspects the analysis payload exactly once and tags it:
// a JSON number is a direct score, the strings positive/negative/neutral
// (case-insensitive) map to fixed values, and anything else is unusable.
func classifyPayload(raw json.RawMessage) classified {
	result := gjson.ParseBytes(raw)

	switch result.Type {
	case gjson.Number:
		return classified{kind: scoreNumeric, value: result.Float()}
	case gjson.String:
		switch strings.ToLower(result.String()) {
		case "positive":
			return classified{kind: scoreLabel, value: labelPositiveScore}
		case "negative":
			return classified{kind: scoreLabel, value: labelNegativeScore}
		case "neutral":
			return classified{kind: scoreLabel, value: labelNeutralScore}
		}
		return classified{kind: scoreUnusable, shape: fmt.Sprintf("unknown label %q", result.String())}
	}

	return classified{kind: scoreUnusable, shape: fmt.Sprintf("unexpected payload shape %.100s", result.Raw)}
}

// Trend returns one sentiment point per record in the range's current
// window, in chronological order. Scores come from the cache when present;
// otherwise from the external call, falling back to the local lexicon
// score on any failure or unusable response. If ctx is cancelled mid-walk,
// no further external calls are issued and the partial series computed so
// far is returned without error.
func (g *TrendGenerator) Trend(ctx context.Context, records []transcript.Record, r Range, now time.Time) ([]TrendPoint, error) {
	w, err := ResolveWindow(r, now)
	if err != nil {
		return nil, err
	}

	windowed, _ := FilterCurrent(records, w, g.sink)

	sort.SliceStable(windowed, func(i, j int) bool {
		return windowed[i].Time().Before(windowed[j].Time())
	})

	points := make([]TrendPoint, 0, len(windowed))
	for _, rec := range windowed {
		if ctx.Err() != nil {
			break
		}

		score := g.cache.score(rec.ID, func() float64 {
			return g.analyze(ctx, rec)
		})

		points = append(points, TrendPoint{Timestamp: rec.Time(), Value: score})
	}

	return points, nil
}

// analyze runs the external call for one record and converts every failure
// mode into the deterministic local fallback.
func (g *TrendGenerator) analyze(ctx context.Context, rec transcript.Record) float64 {
	raw, err := g.client.AnalyzeSentiment(ctx, rec.Content)
	if err != nil {
		g.sink.Emit(diag.Event{
			Kind:     diag.SentimentCallFailed,
			RecordID: rec.ID,
			Detail:   fmt.Sprintf("record %s: analysis call failed (%v), using local fallback", rec.ID, err),
		})
		return FallbackScore(rec.Content)
	}

	c := classifyPayload(raw)
	switch c.kind {
	case scoreNumeric, scoreLabel:
		return c.value
	}

	g.sink.Emit(diag.Event{
		Kind:     diag.SentimentUnusable,
		RecordID: rec.ID,
		Detail:   fmt.Sprintf("record %s: unusable analysis response (%s), using local fallback", rec.ID, c.shape),
	})
	return FallbackScore(rec.Content)
}
