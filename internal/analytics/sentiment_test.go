package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgewood-systems/notewatch/internal/diag"
	"github.com/ledgewood-systems/notewatch/internal/transcript"
)

// fakeSentimentClient returns canned payloads keyed by record content and
// counts calls per content for cache assertions.
type fakeSentimentClient struct {
	mu       sync.Mutex
	payloads map[string]json.RawMessage
	errs     map[string]error
	calls    map[string]int
}

func newFakeClient() *fakeSentimentClient {
	return &fakeSentimentClient{
		payloads: make(map[string]json.RawMessage),
		errs:     make(map[string]error),
		calls:    make(map[string]int),
	}
}

func (f *fakeSentimentClient) AnalyzeSentiment(_ context.Context, content string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[content]++
	if err, ok := f.errs[content]; ok {
		return nil, err
	}
	return f.payloads[content], nil
}

func (f *fakeSentimentClient) callCount(content string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[content]
}

func trendRecord(id string, daysAgo int, content string) transcript.Record {
	r := rec(id, daysAgo)
	r.Content = content
	return r
}

func TestTrend_NumericPayload(t *testing.T) {
	client := newFakeClient()
	client.payloads["happy note"] = json.RawMessage(`42`)

	g := NewTrendGenerator(client, NewSentimentCache(), diag.Discard{})
	points, err := g.Trend(context.Background(), []transcript.Record{
		trendRecord("r1", 1, "happy note"),
	}, Range7d, testNow)

	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 42.0, points[0].Value)
}

func TestTrend_LabelPayloads(t *testing.T) {
	client := newFakeClient()
	client.payloads["pos"] = json.RawMessage(`"positive"`)
	client.payloads["neg"] = json.RawMessage(`"Negative"`)
	client.payloads["neu"] = json.RawMessage(`"neutral"`)

	g := NewTrendGenerator(client, NewSentimentCache(), diag.Discard{})
	points, err := g.Trend(context.Background(), []transcript.Record{
		trendRecord("r1", 3, "pos"),
		trendRecord("r2", 2, "neg"),
		trendRecord("r3", 1, "neu"),
	}, Range7d, testNow)

	require.NoError(t, err)
	require.Len(t, points, 3)
	// Chronological order: oldest first.
	assert.Equal(t, 75.0, points[0].Value)
	assert.Equal(t, -75.0, points[1].Value)
	assert.Equal(t, 0.0, points[2].Value)
}

func TestTrend_UnusablePayloadFallsBack(t *testing.T) {
	client := newFakeClient()
	content := "this was a good and great session"
	client.payloads[content] = json.RawMessage(`{"foo": 1}`)

	sink := diag.NewRecorder(nil)
	g := NewTrendGenerator(client, NewSentimentCache(), sink)
	points, err := g.Trend(context.Background(), []transcript.Record{
		trendRecord("r1", 1, content),
	}, Range7d, testNow)

	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, FallbackScore(content), points[0].Value)
	assert.Positive(t, points[0].Value, "positive-leaning content should score above zero")
	assert.Equal(t, 1, sink.Count(diag.SentimentUnusable))
}

func TestTrend_CallFailureFallsBack(t *testing.T) {
	client := newFakeClient()
	content := "good great fantastic"
	client.errs[content] = errors.New("upstream 500")

	sink := diag.NewRecorder(nil)
	g := NewTrendGenerator(client, NewSentimentCache(), sink)
	points, err := g.Trend(context.Background(), []transcript.Record{
		trendRecord("s2", 1, content),
	}, Range7d, testNow)

	require.NoError(t, err, "call failures must not propagate")
	require.Len(t, points, 1)
	assert.Positive(t, points[0].Value)

	require.Equal(t, 1, sink.Count(diag.SentimentCallFailed))
	events := sink.Events()
	assert.Equal(t, "s2", events[0].RecordID)
	assert.Contains(t, events[0].Detail, "s2")
}

func TestTrend_CacheAvoidsRepeatCalls(t *testing.T) {
	client := newFakeClient()
	client.payloads["note"] = json.RawMessage(`10`)

	cache := NewSentimentCache()
	g := NewTrendGenerator(client, cache, diag.Discard{})
	records := []transcript.Record{trendRecord("r1", 1, "note")}

	first, err := g.Trend(context.Background(), records, Range7d, testNow)
	require.NoError(t, err)
	second, err := g.Trend(context.Background(), records, Range7d, testNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.callCount("note"), "second run must be served from the cache")
}

func TestTrend_CacheKeyedByRecordID(t *testing.T) {
	client := newFakeClient()
	client.payloads["same words"] = json.RawMessage(`5`)

	g := NewTrendGenerator(client, NewSentimentCache(), diag.Discard{})
	records := []transcript.Record{
		trendRecord("r1", 2, "same words"),
		trendRecord("r2", 1, "same words"),
	}

	points, err := g.Trend(context.Background(), records, Range7d, testNow)
	require.NoError(t, err)
	require.Len(t, points, 2)
	// Identical content under different ids is analyzed separately.
	assert.Equal(t, 2, client.callCount("same words"))
}

func TestTrend_ChronologicalOrder(t *testing.T) {
	client := newFakeClient()
	for _, c := range []string{"a", "b", "c"} {
		client.payloads[c] = json.RawMessage(`1`)
	}

	g := NewTrendGenerator(client, NewSentimentCache(), diag.Discard{})
	// Input deliberately out of order.
	points, err := g.Trend(context.Background(), []transcript.Record{
		trendRecord("newest", 1, "a"),
		trendRecord("oldest", 6, "b"),
		trendRecord("middle", 3, "c"),
	}, Range7d, testNow)

	require.NoError(t, err)
	require.Len(t, points, 3)
	for i := 1; i < len(points); i++ {
		assert.False(t, points[i].Timestamp.Before(points[i-1].Timestamp),
			"points must be in ascending time order")
	}
}

func TestTrend_CancelledContextReturnsPartial(t *testing.T) {
	client := newFakeClient()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewTrendGenerator(client, NewSentimentCache(), diag.Discard{})
	points, err := g.Trend(ctx, []transcript.Record{
		trendRecord("r1", 1, "a"),
		trendRecord("r2", 2, "b"),
	}, Range7d, testNow)

	require.NoError(t, err, "cancellation yields the partial series, not an error")
	assert.Empty(t, points)
	assert.Equal(t, 0, client.callCount("a"))
	assert.Equal(t, 0, client.callCount("b"))
}

func TestTrend_WindowFiltering(t *testing.T) {
	client := newFakeClient()
	client.payloads["in"] = json.RawMessage(`1`)
	client.payloads["out"] = json.RawMessage(`1`)

	g := NewTrendGenerator(client, NewSentimentCache(), diag.Discard{})
	points, err := g.Trend(context.Background(), []transcript.Record{
		trendRecord("in", 2, "in"),
		trendRecord("out", 20, "out"),
	}, Range7d, testNow)

	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 0, client.callCount("out"), "out-of-window records are never analyzed")
}

func TestClassifyPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind scoreKind
		want float64
	}{
		{"integer", `42`, scoreNumeric, 42},
		{"negative float", `-12.5`, scoreNumeric, -12.5},
		{"positive label", `"positive"`, scoreLabel, 75},
		{"uppercase label", `"NEGATIVE"`, scoreLabel, -75},
		{"neutral label", `"neutral"`, scoreLabel, 0},
		{"unknown label", `"meh"`, scoreUnusable, 0},
		{"object", `{"score": 3}`, scoreUnusable, 0},
		{"array", `[1,2]`, scoreUnusable, 0},
		{"null", `null`, scoreUnusable, 0},
		{"empty", ``, scoreUnusable, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := classifyPayload(json.RawMessage(tt.raw))
			assert.Equal(t, tt.kind, c.kind)
			if tt.kind != scoreUnusable {
				assert.Equal(t, tt.want, c.value)
			}
		})
	}
}
