package workflow

import (
	"strings"
	"time"

	"github.com/smartfinancehub/content-engine/internal/model"
)

// evergreenKeywords mark titles whose content does not age out:
// foundational explainers stay relevant regardless of publish date.
var evergreenKeywords = []string{
	"guide", "beginner", "basics", "fundamental", "how to", "what is",
	"explained", "introduction", "101",
}

// ArchivePolicy decides when a published article ages out.
type ArchivePolicy struct {
	MaxAge                 time.Duration
	ExtendedMultiplier     float64
	EvergreenMinScore      int
	HighPriorityCategories map[string]bool
}

// NewArchivePolicy builds the policy from settings values.
func NewArchivePolicy(maxAgeDays int, highPriorityCategories []string) ArchivePolicy {
	cats := make(map[string]bool, len(highPriorityCategories))
	for _, c := range highPriorityCategories {
		cats[strings.ToLower(c)] = true
	}
	return ArchivePolicy{
		MaxAge:                 time.Duration(maxAgeDays) * 24 * time.Hour,
		ExtendedMultiplier:     1.5,
		EvergreenMinScore:      85,
		HighPriorityCategories: cats,
	}
}

// Eligible reports whether the article should be auto-archived now.
// Evergreen articles are never auto-archived; high-priority categories
// get an extended threshold.
func (p ArchivePolicy) Eligible(article *model.Article, now time.Time) bool {
	publishedAt := article.OriginalCreatedAt
	if article.PublishedAt != nil {
		publishedAt = *article.PublishedAt
	}

	age := now.Sub(publishedAt)
	if age < p.MaxAge {
		return false
	}

	if p.isEvergreen(article) {
		return false
	}

	if p.HighPriorityCategories[strings.ToLower(article.Category)] {
		extended := time.Duration(float64(p.MaxAge) * p.ExtendedMultiplier)
		if age < extended {
			return false
		}
	}

	return true
}

func (p ArchivePolicy) isEvergreen(article *model.Article) bool {
	if article.QualityScore == nil || article.QualityScore.Overall < p.EvergreenMinScore {
		return false
	}
	title := strings.ToLower(article.Title)
	for _, kw := range evergreenKeywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}
