package scorer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/smartfinancehub/content-engine/internal/model"
)

var takeawayMarkers = []string{
	"conclusion", "takeaway", "key points", "in summary", "bottom line", "final thoughts",
}

// structureScore gives fixed-point credit for an introduction, a
// conclusion or takeaway mention, a non-trivial CTA, and a heading count
// in the target range.
func structureScore(content, cta string) int {
	score := 0

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return midpointScore
	}

	// Introduction: first paragraph of non-trivial length.
	if first := doc.Find("p").First(); first.Length() > 0 {
		if model.WordCount(first.Text()) >= 30 {
			score += 25
		}
	}

	lower := strings.ToLower(doc.Text())
	for _, marker := range takeawayMarkers {
		if strings.Contains(lower, marker) {
			score += 25
			break
		}
	}

	if len(strings.TrimSpace(cta)) >= 20 {
		score += 25
	}

	headings := doc.Find("h1, h2, h3").Length()
	if headings >= 4 && headings <= 10 {
		score += 25
	}

	return clamp(score)
}

// lengthScore compares word count against the configured target. Full
// credit inside [target, target+1500], linear partial credit below with
// a floor, mild penalty for running long.
func lengthScore(words, target int) int {
	switch {
	case words >= target && words <= target+1500:
		return 100
	case words > target+1500:
		return 85
	default:
		score := int(float64(words) / float64(target) * 100)
		if score < 40 {
			return 40
		}
		return score
	}
}

// originalityScore is a placeholder heuristic scoring purely by content
// length buckets. There is no real duplicate detection behind it; it
// exists so the weight vector stays complete until a proper similarity
// check replaces it. Do not extend it silently.
func originalityScore(words int) int {
	switch {
	case words < 500:
		return 40
	case words < 1000:
		return 60
	case words < 2000:
		return 75
	default:
		return 85
	}
}
