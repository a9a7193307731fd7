package analytics

// Words-per-minute basis for the duration proxy. Transcripts carry no
// ground-truth duration, so length is the only available signal.
const (
	charsPerWord    = 5
	wordsPerMinute  = 150
	minimumEstimate = 0.1
)

// EstimateHours derives an approximate duration for a record from its
// content length: wordCount = len/5, hours = wordCount/150, floored at 0.1
// so near-empty content never yields a degenerate value. This is an
// approximation with a stable monotonic ordering by content volume, not a
// measurement, and should be labeled as estimated wherever it is shown.
func EstimateHours(content string) float64 {
	words := float64(len(content)) / charsPerWord
	hours := words / wordsPerMinute
	if hours < minimumEstimate {
		return minimumEstimate
	}
	return hours
}
