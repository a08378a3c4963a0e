package scorer

import (
	"regexp"
	"strings"

	"github.com/smartfinancehub/content-engine/internal/model"
)

// keywordScore measures average keyword density against the [1%,3%]
// sweet spot and adds a coverage bonus for the fraction of target
// keywords that appear at all.
func keywordScore(text string, keywords []string) int {
	if len(keywords) == 0 {
		return midpointScore
	}

	totalWords := model.WordCount(text)
	if totalWords == 0 {
		return midpointScore
	}

	var densitySum float64
	covered := 0
	for _, kw := range keywords {
		occurrences := countWholeWord(text, kw)
		if occurrences > 0 {
			covered++
		}
		kwWords := model.WordCount(kw)
		if kwWords == 0 {
			kwWords = 1
		}
		densitySum += float64(occurrences*kwWords) / float64(totalWords) * 100
	}

	avgDensity := densitySum / float64(len(keywords))

	var base int
	switch {
	case avgDensity >= 1.0 && avgDensity <= 3.0:
		base = 90
	case avgDensity >= 0.5 && avgDensity < 1.0:
		base = 70
	case avgDensity > 3.0 && avgDensity <= 5.0:
		base = 60 // stuffing territory
	case avgDensity > 0:
		base = 45
	default:
		base = 25
	}

	coverageBonus := int(float64(covered) / float64(len(keywords)) * 10)
	return clamp(base + coverageBonus)
}

// countWholeWord counts case-insensitive whole-word occurrences of a
// (possibly multi-word) keyword in text.
func countWholeWord(text, keyword string) int {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return 0
	}
	pattern := `(?i)\b` + regexp.QuoteMeta(keyword) + `\b`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0
	}
	return len(re.FindAllStringIndex(text, -1))
}
