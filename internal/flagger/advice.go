package flagger

import (
	"regexp"
	"strings"
)

var sentenceSplit = regexp.MustCompile(`[.!?]+\s+`)

// adviceRule classifies a sentence into an advice category by keyword
// and carries the disclaimer requirement attached to the category.
type adviceRule struct {
	category        string
	keywords        []string
	disclaimerLevel string
	severity        string
	suggestion      string
}

// Rules are checked in order; the first match wins, so the most
// regulated categories come first.
var adviceRules = []adviceRule{
	{
		category:        "guarantee",
		keywords:        []string{"guaranteed", "risk-free", "can't lose", "cannot lose", "always profit", "sure thing"},
		disclaimerLevel: "required",
		severity:        "high",
		suggestion:      "Remove or heavily qualify the guarantee language; no outcome is guaranteed",
	},
	{
		category:        "investment",
		keywords:        []string{"invest in", "buy stocks", "buy shares", "portfolio", "allocate", "etf", "index fund", "bonds"},
		disclaimerLevel: "required",
		severity:        "high",
		suggestion:      "Add an investment-advice disclaimer near this statement",
	},
	{
		category:        "transaction",
		keywords:        []string{"refinance", "open an account", "take out a loan", "transfer your", "consolidate your debt", "sign up for"},
		disclaimerLevel: "recommended",
		severity:        "medium",
		suggestion:      "Recommend consulting a professional before this transaction",
	},
	{
		category:        "general",
		keywords:        []string{"you should", "we recommend", "consider", "it's best to", "make sure to"},
		disclaimerLevel: "optional",
		severity:        "low",
		suggestion:      "Soften the recommendation or add a general disclaimer",
	},
}

// detectAdvice classifies advice statements sentence by sentence into a
// closed category set with a disclaimer level and severity.
func detectAdvice(text string) []AdviceFlag {
	var flags []AdviceFlag

	pos := 0
	for _, sentence := range sentenceSplit.Split(text, -1) {
		trimmed := strings.TrimSpace(sentence)
		if trimmed == "" {
			pos += len(sentence) + 1
			continue
		}

		lower := strings.ToLower(trimmed)
		for _, rule := range adviceRules {
			if matched := matchKeyword(lower, rule.keywords); matched != "" {
				flags = append(flags, AdviceFlag{
					Flag: Flag{
						Text:       snippet(trimmed, 120),
						Position:   pos,
						Priority:   severityPriority(rule.severity),
						Suggestion: rule.suggestion,
					},
					Category:        rule.category,
					DisclaimerLevel: rule.disclaimerLevel,
					Severity:        rule.severity,
				})
				break
			}
		}
		pos += len(sentence) + 1
	}

	return flags
}

func matchKeyword(lower string, keywords []string) string {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return ""
}

func severityPriority(severity string) Priority {
	switch severity {
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func snippet(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
