package workflow

import (
	"fmt"
	"strings"

	"github.com/smartfinancehub/content-engine/internal/model"
)

// Similarity thresholds above which two articles are considered the
// same piece of content.
const (
	titleSimilarityThreshold = 0.85
	topicSimilarityThreshold = 0.90
)

// DuplicateMatch describes why a candidate was judged a near-duplicate.
type DuplicateMatch struct {
	MatchID    string  `json:"match_id"`
	MatchTitle string  `json:"match_title"`
	Reason     string  `json:"reason"`
	Similarity float64 `json:"similarity"`
}

// FindDuplicate compares a candidate against existing articles by exact
// normalized title/slug and by word-overlap similarity on title and
// topic. Returns nil when the candidate is unique.
func FindDuplicate(candidate *model.Article, existing []*model.Article) *DuplicateMatch {
	candTitle := normalizeTitle(candidate.Title)
	candSlug := model.Slugify(candidate.Title)

	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}

		if normalizeTitle(other.Title) == candTitle {
			return &DuplicateMatch{
				MatchID:    other.ID,
				MatchTitle: other.Title,
				Reason:     "identical normalized title",
				Similarity: 1.0,
			}
		}
		if other.Slug != "" && other.Slug == candSlug {
			return &DuplicateMatch{
				MatchID:    other.ID,
				MatchTitle: other.Title,
				Reason:     "identical slug",
				Similarity: 1.0,
			}
		}

		if sim := jaccard(candidate.Title, other.Title); sim > titleSimilarityThreshold {
			return &DuplicateMatch{
				MatchID:    other.ID,
				MatchTitle: other.Title,
				Reason:     fmt.Sprintf("title %.0f%% similar", sim*100),
				Similarity: sim,
			}
		}
		if candidate.Topic != "" && other.Topic != "" {
			if sim := jaccard(candidate.Topic, other.Topic); sim > topicSimilarityThreshold {
				return &DuplicateMatch{
					MatchID:    other.ID,
					MatchTitle: other.Title,
					Reason:     fmt.Sprintf("topic %.0f%% similar", sim*100),
					Similarity: sim,
				}
			}
		}
	}
	return nil
}

func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// jaccard computes word-set overlap between two strings.
func jaccard(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[strings.Trim(w, ".,!?;:\"'()")] = true
	}
	return set
}
