package analytics

import "strings"

// Fixed sentiment lexicons for the local fallback scorer. Deliberately
// small: the fallback only needs to be deterministic and directionally
// right when the analysis service is unavailable.
var (
	positiveWords = map[string]bool{
		"good": true, "great": true, "excellent": true, "amazing": true,
		"wonderful": true, "fantastic": true, "happy": true, "love": true,
		"awesome": true, "perfect": true, "best": true, "excited": true,
		"grateful": true, "success": true, "successful": true, "win": true,
		"progress": true, "better": true, "enjoy": true, "glad": true,
	}

	negativeWords = map[string]bool{
		"bad": true, "terrible": true, "awful": true, "horrible": true,
		"sad": true, "angry": true, "hate": true, "worst": true,
		"fail": true, "failure": true, "failed": true, "problem": true,
		"difficult": true, "wrong": true, "frustrated": true,
		"frustrating": true, "annoying": true, "worse": true,
		"broken": true, "stuck": true,
	}
)

// FallbackScore computes a deterministic sentiment score from the fixed
// word lists: ((positive − negative) / totalWords) × 100, clamped to
// [−100, 100]. Empty content or content with no lexicon hits yields 0.
func FallbackScore(content string) float64 {
	words := strings.Fields(content)
	if len(words) == 0 {
		return 0
	}

	var pos, neg int
	for _, w := range words {
		w = strings.ToLower(strings.Trim(w, ".,!?;:\"'()[]"))
		if positiveWords[w] {
			pos++
		} else if negativeWords[w] {
			neg++
		}
	}

	score := float64(pos-neg) / float64(len(words)) * 100
	return clampScore(score)
}

// clampScore bounds a score to the sentiment domain shared with the
// external analysis path.
func clampScore(s float64) float64 {
	if s > 100 {
		return 100
	}
	if s < -100 {
		return -100
	}
	return s
}
