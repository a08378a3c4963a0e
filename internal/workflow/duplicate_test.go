package workflow

import (
	"testing"

	"github.com/smartfinancehub/content-engine/internal/model"
)

func TestFindDuplicateIdenticalNormalizedTitle(t *testing.T) {
	existing := []*model.Article{
		{ID: "e1", Title: "Index Funds for Beginners", Slug: "index-funds-for-beginners"},
	}
	candidate := &model.Article{ID: "c1", Title: "  index   FUNDS for beginners "}

	match := FindDuplicate(candidate, existing)
	if match == nil {
		t.Fatal("Expected duplicate match for identical normalized titles")
	}
	if match.MatchID != "e1" {
		t.Errorf("Expected match against e1, got %s", match.MatchID)
	}
	if match.Similarity != 1.0 {
		t.Errorf("Expected similarity 1.0, got %f", match.Similarity)
	}
}

func TestFindDuplicateSimilarTitle(t *testing.T) {
	existing := []*model.Article{
		{ID: "e1", Title: "How to Build an Emergency Fund This Year"},
	}
	// Same word set minus one word: overlap above the 0.85 threshold.
	candidate := &model.Article{ID: "c1", Title: "How to Build an Emergency Fund This Summer Year"}

	if match := FindDuplicate(candidate, existing); match == nil {
		t.Error("Expected near-duplicate title to match")
	}
}

func TestFindDuplicateDistinctTitles(t *testing.T) {
	existing := []*model.Article{
		{ID: "e1", Title: "Roth IRA Basics Explained", Topic: "Roth IRA Basics Explained"},
	}
	candidate := &model.Article{ID: "c1", Title: "Improving Your Credit Score", Topic: "Improving Your Credit Score"}

	if match := FindDuplicate(candidate, existing); match != nil {
		t.Errorf("Expected no match for distinct articles, got %+v", match)
	}
}

func TestFindDuplicateSkipsSelf(t *testing.T) {
	a := &model.Article{ID: "same", Title: "Identical Title"}
	if match := FindDuplicate(a, []*model.Article{a}); match != nil {
		t.Errorf("An article must not match itself, got %+v", match)
	}
}

func TestJaccard(t *testing.T) {
	if got := jaccard("a b c d", "a b c d"); got != 1.0 {
		t.Errorf("Expected identical sets to score 1.0, got %f", got)
	}
	if got := jaccard("a b c d", "e f g h"); got != 0.0 {
		t.Errorf("Expected disjoint sets to score 0.0, got %f", got)
	}
	if got := jaccard("", "a"); got != 0.0 {
		t.Errorf("Expected empty input to score 0.0, got %f", got)
	}
}
