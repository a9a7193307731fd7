package output

import (
	"fmt"
	"math"
	"strings"
)

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

// GrowthArrow returns a styled indicator for a growth percentage. NaN is
// the insufficient-data sentinel and must never be shown as zero.
func GrowthArrow(pct float64) string {
	if math.IsNaN(pct) {
		return StyleMuted.Render("n/a (insufficient data)")
	}
	if pct == 0 {
		return StyleMuted.Render("─ 0%")
	}
	if pct > 0 {
		return StyleSuccess.Render(fmt.Sprintf("▲ +%.0f%%", pct))
	}
	return StyleError.Render(fmt.Sprintf("▼ %.0f%%", pct))
}

// ActivityBar renders one histogram row for an hour bucket, scaled to the
// maximum bucket in the series. Example: "14:00 ████████ 12".
func ActivityBar(hour, activity, maxActivity, width int) string {
	if width <= 0 {
		width = 32
	}

	filled := 0
	if maxActivity > 0 {
		filled = int(float64(activity) / float64(maxActivity) * float64(width))
	}
	if activity > 0 && filled == 0 {
		filled = 1
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	label := StyleMuted.Render(fmt.Sprintf("%02d:00", hour))
	count := StyleMuted.Render(fmt.Sprintf("%d", activity))
	if activity > 0 {
		count = fmt.Sprintf("%d", activity)
	}

	return fmt.Sprintf(" %s %s %s", label, StyleSuccess.Render(bar), count)
}

// SentimentLabel renders a score with its qualitative band.
func SentimentLabel(score float64) string {
	text := fmt.Sprintf("%+.0f", score)
	switch {
	case score > 25:
		return StyleSuccess.Render(text + " positive")
	case score < -25:
		return StyleError.Render(text + " negative")
	}
	return StyleMuted.Render(text + " neutral")
}
