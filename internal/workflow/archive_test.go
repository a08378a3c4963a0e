package workflow

import (
	"testing"
	"time"

	"github.com/smartfinancehub/content-engine/internal/model"
)

func archiveTestPolicy() ArchivePolicy {
	return NewArchivePolicy(365, []string{"investing"})
}

func publishedDaysAgo(days int, now time.Time) *model.Article {
	at := now.AddDate(0, 0, -days)
	return &model.Article{
		ID:                "a",
		Title:             "Ordinary Market Commentary",
		Category:          "news",
		Status:            model.StatusPublished,
		OriginalCreatedAt: at,
		PublishedAt:       &at,
	}
}

func TestYoungArticleNeverEligible(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	p := archiveTestPolicy()

	if p.Eligible(publishedDaysAgo(100, now), now) {
		t.Error("Article younger than the threshold must not be archived")
	}
	if p.Eligible(publishedDaysAgo(364, now), now) {
		t.Error("Article one day under the threshold must not be archived")
	}
}

func TestOldArticleEligible(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	p := archiveTestPolicy()

	if !p.Eligible(publishedDaysAgo(400, now), now) {
		t.Error("Old non-evergreen article in a normal category must be archived")
	}
}

func TestEvergreenNeverAutoArchived(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	p := archiveTestPolicy()

	a := publishedDaysAgo(2000, now)
	a.Title = "Index Funds Guide for Beginners"
	a.QualityScore = &model.QualityScore{Overall: 90}

	if p.Eligible(a, now) {
		t.Error("Evergreen article must never be auto-archived regardless of age")
	}

	// Same title but below the quality bar is not evergreen.
	a.QualityScore = &model.QualityScore{Overall: 70}
	if !p.Eligible(a, now) {
		t.Error("Low-quality article is not evergreen and must age out")
	}
}

// A 410-day-old article in a high-priority category sits inside the
// extended 1.5x threshold (547 days) and must be kept.
func TestHighPriorityCategoryExtendedThreshold(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	p := archiveTestPolicy()

	a := publishedDaysAgo(410, now)
	a.Category = "investing"

	if p.Eligible(a, now) {
		t.Error("High-priority article within the extended threshold must not be archived")
	}

	old := publishedDaysAgo(600, now)
	old.Category = "investing"
	if !p.Eligible(old, now) {
		t.Error("High-priority article beyond the extended threshold must be archived")
	}
}

func TestEligibleFallsBackToOriginalCreatedAt(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	p := archiveTestPolicy()

	a := publishedDaysAgo(400, now)
	a.PublishedAt = nil

	if !p.Eligible(a, now) {
		t.Error("Expected OriginalCreatedAt used when PublishedAt is missing")
	}
}
