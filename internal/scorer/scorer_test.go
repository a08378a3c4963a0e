package scorer

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewRejectsBadWeightVector(t *testing.T) {
	weights := map[string]float64{
		CriterionReadability: 0.5,
		CriterionSEO:         0.3,
		// sums to 0.8
	}

	_, err := New(weights, 2000)
	if err == nil {
		t.Fatal("Expected error for weight vector not summing to 1.0")
	}
	if _, ok := err.(*WeightError); !ok {
		t.Errorf("Expected *WeightError, got %T", err)
	}
}

func TestNewAcceptsDefaultWeights(t *testing.T) {
	s, err := New(nil, 2000)
	if err != nil {
		t.Fatalf("Failed to create scorer with default weights: %v", err)
	}
	if s == nil {
		t.Fatal("Expected scorer to be created")
	}
}

func TestNewToleratesFloatNoise(t *testing.T) {
	weights := map[string]float64{
		CriterionReadability: 0.1,
		CriterionSEO:         0.2,
		CriterionKeywords:    0.3,
		CriterionStructure:   0.1,
		CriterionLength:      0.1,
		CriterionOriginality: 0.2,
	}

	if _, err := New(weights, 2000); err != nil {
		t.Errorf("Expected weights summing to 1.0 within tolerance to pass, got %v", err)
	}
}

func TestScoreEmptyContentUsesMidpoint(t *testing.T) {
	s, err := New(nil, 2000)
	if err != nil {
		t.Fatalf("Failed to create scorer: %v", err)
	}

	score := s.Score(Input{Title: "A title", Content: ""})
	if score.Overall != midpointScore {
		t.Errorf("Expected midpoint overall %d for empty content, got %d", midpointScore, score.Overall)
	}
	for name, sub := range score.Breakdown {
		if sub != midpointScore {
			t.Errorf("Expected midpoint for criterion %s, got %d", name, sub)
		}
	}
}

func TestScoreBoundsAlwaysHold(t *testing.T) {
	s, err := New(nil, 2000)
	if err != nil {
		t.Fatalf("Failed to create scorer: %v", err)
	}

	inputs := []Input{
		{},
		{Title: strings.Repeat("x", 300), Content: "<p>short</p>"},
		{Title: "t", MetaDescription: "m", Content: buildScorableContent(300, 0), CTA: "c"},
		{Title: "Reasonable title about money and savings today", Content: buildScorableContent(140, 25), Keywords: []string{"index funds"}},
	}

	for i, in := range inputs {
		score := s.Score(in)
		if score.Overall < 0 || score.Overall > 100 {
			t.Errorf("Input %d: overall score %d out of [0,100]", i, score.Overall)
		}
		for name, sub := range score.Breakdown {
			if sub < 0 || sub > 100 {
				t.Errorf("Input %d: criterion %s score %d out of [0,100]", i, name, sub)
			}
		}
	}
}

// TestScoreAutoApproveScenario builds a well-formed article (title ~55
// chars, meta ~150 chars, one h1, five h2, keyword density ~1.8%, ~2100
// words) and expects an overall score in the auto-approve range.
func TestScoreAutoApproveScenario(t *testing.T) {
	title := "Index Funds for Beginners: A Simple Path to Real Wealth"
	if l := len(title); l < 40 || l > 60 {
		t.Fatalf("Test title length %d outside [40,60], fix the fixture", l)
	}

	meta := strings.Repeat("Learn how index funds work and why low fees matter for you. ", 4)[:150]

	content := buildScorableContent(120, 19)

	s, err := New(nil, 2000)
	if err != nil {
		t.Fatalf("Failed to create scorer: %v", err)
	}

	score := s.Score(Input{
		Title:           title,
		MetaDescription: meta,
		Content:         content,
		CTA:             "Subscribe to our newsletter for weekly investing tips.",
		Keywords:        []string{"index funds"},
	})

	if score.Overall < 70 {
		t.Errorf("Expected auto-approve range score (>=70), got %d (breakdown %v)", score.Overall, score.Breakdown)
	}
}

// buildScorableContent produces article HTML with one h1, five h2
// (including a takeaway section), three links, filler sentences and the
// requested number of "index funds" keyword mentions.
func buildScorableContent(filler, keywordMentions int) string {
	var b strings.Builder
	b.WriteString("<h1>Index Funds for Beginners</h1>")
	b.WriteString("<p>" + strings.Repeat("Index investing is a simple way to build wealth slowly. ", 6) + "</p>")

	headings := []string{"Why Costs Matter", "Picking a Fund", "Common Mistakes", "Staying the Course", "The Bottom Line"}
	perSection := filler / len(headings)
	for i, h := range headings {
		fmt.Fprintf(&b, "<h2>%s</h2><p>", h)
		for j := 0; j < perSection; j++ {
			b.WriteString("You can invest a small amount of money each month and watch it grow over time. ")
		}
		if i == 0 {
			b.WriteString(`See our <a href="/articles/fees.html">guide to fees</a>, the <a href="/articles/etf.html">ETF primer</a> and <a href="https://www.investor.gov">investor.gov</a>. `)
		}
		b.WriteString("</p>")
	}

	b.WriteString("<p>")
	for i := 0; i < keywordMentions; i++ {
		b.WriteString("Many people choose index funds to keep their fees low. ")
	}
	b.WriteString("</p>")

	return b.String()
}
