package flagger

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

var staleSubjects = []string{"rate", "rule", "law", "limit", "threshold", "bracket", "deadline"}

// detectDateReferences flags outdated hard-coded years, potentially
// stale "current" claims about things that change (rates, rules, laws)
// and vague "recent" references with no year, relative to now.
func detectDateReferences(text string, now time.Time) []Flag {
	var flags []Flag
	currentYear := now.Year()

	for _, loc := range yearPattern.FindAllStringIndex(text, -1) {
		year, err := strconv.Atoi(text[loc[0]:loc[1]])
		if err != nil || year >= currentYear {
			continue
		}
		priority := PriorityMedium
		if year < currentYear-1 {
			priority = PriorityHigh
		}
		flags = append(flags, Flag{
			Text:       text[loc[0]:loc[1]],
			Position:   loc[0],
			Priority:   priority,
			Suggestion: "Update this year reference or reframe the claim as historical",
		})
	}

	pos := 0
	for _, sentence := range sentenceSplit.Split(text, -1) {
		lower := strings.ToLower(sentence)

		if strings.Contains(lower, "current") && containsAny(lower, staleSubjects) {
			flags = append(flags, Flag{
				Text:       snippet(strings.TrimSpace(sentence), 120),
				Position:   pos,
				Priority:   PriorityMedium,
				Suggestion: "Pin this \"current\" claim to a date; rates and rules change",
			})
		}

		if (strings.Contains(lower, "recent") || strings.Contains(lower, "recently")) && !yearPattern.MatchString(sentence) {
			flags = append(flags, Flag{
				Text:       snippet(strings.TrimSpace(sentence), 120),
				Position:   pos,
				Priority:   PriorityLow,
				Suggestion: "Replace the vague \"recent\" with an explicit year",
			})
		}

		pos += len(sentence) + 1
	}

	return flags
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
