package flagger

import (
	"fmt"
	"regexp"
)

// statPattern pairs a detector regex with the priority and remediation
// attached to its matches.
type statPattern struct {
	re         *regexp.Regexp
	priority   Priority
	suggestion string
}

var statPatterns = []statPattern{
	{
		re:         regexp.MustCompile(`\b\d+(?:\.\d+)?%`),
		priority:   PriorityHigh,
		suggestion: "Verify this percentage against a primary source and cite it",
	},
	{
		re:         regexp.MustCompile(`\$[\d,]+(?:\.\d+)?(?:\s?(?:thousand|million|billion|trillion))?`),
		priority:   PriorityHigh,
		suggestion: "Verify this dollar amount and link the source",
	},
	{
		re:         regexp.MustCompile(`\b\d+(?:\.\d+)?x\b`),
		priority:   PriorityMedium,
		suggestion: "Verify this multiplier claim",
	},
	{
		re:         regexp.MustCompile(`\b\d+\s?(?:basis points|bps)\b`),
		priority:   PriorityMedium,
		suggestion: "Verify this basis-point figure against current data",
	},
	{
		re:         regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s?(?:thousand|million|billion|trillion)\s+(?:people|americans|households|investors|users)\b`),
		priority:   PriorityMedium,
		suggestion: "Verify this population figure and cite it",
	},
	{
		re:         regexp.MustCompile(`(?i)\b(?:last|past)\s+\d+\s+(?:years|months|days)\b`),
		priority:   PriorityLow,
		suggestion: "Anchor this time span to an explicit date range",
	},
}

// positionBucket groups overlapping matches from different patterns so
// the same figure is not flagged twice.
const positionBucket = 20

// detectStatistics regex-scans for figures that need verification,
// deduplicated by a position-bucketed key.
func detectStatistics(text string) []Flag {
	seen := make(map[string]bool)
	var flags []Flag

	for _, p := range statPatterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			key := fmt.Sprintf("%d", loc[0]/positionBucket)
			if seen[key] {
				continue
			}
			seen[key] = true
			flags = append(flags, Flag{
				Text:       text[loc[0]:loc[1]],
				Position:   loc[0],
				Priority:   p.priority,
				Suggestion: p.suggestion,
			})
		}
	}

	return flags
}

var citationTriggers = regexp.MustCompile(`(?i)\b(?:according to|studies show|research (?:shows|suggests)|experts (?:say|agree|recommend)|data (?:shows|suggests))\b`)

var sourceMarkers = regexp.MustCompile(`(?i)\b(?:source:|href=|\[\d+\])`)

// detectCitationsNeeded flags attribution phrases with no source nearby
// and high-priority statistics that appear in unsourced text.
func detectCitationsNeeded(text string, stats []Flag) []Flag {
	var flags []Flag

	hasSources := sourceMarkers.MatchString(text)

	for _, loc := range citationTriggers.FindAllStringIndex(text, -1) {
		flags = append(flags, Flag{
			Text:       text[loc[0]:loc[1]],
			Position:   loc[0],
			Priority:   PriorityHigh,
			Suggestion: "Name and link the specific source for this attribution",
		})
	}

	if !hasSources {
		for _, st := range stats {
			if st.Priority == PriorityHigh {
				flags = append(flags, Flag{
					Text:       st.Text,
					Position:   st.Position,
					Priority:   PriorityMedium,
					Suggestion: "Add a citation for this figure; the article has no sources",
				})
			}
		}
	}

	return flags
}
