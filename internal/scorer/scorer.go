package scorer

import (
	"log"
	"math"
	"strconv"

	"github.com/smartfinancehub/content-engine/internal/model"
)

// Criterion names used as breakdown keys and weight-vector keys.
const (
	CriterionReadability = "readability"
	CriterionSEO         = "seo"
	CriterionKeywords    = "keywordDensity"
	CriterionStructure   = "structure"
	CriterionLength      = "length"
	CriterionOriginality = "originality"
)

// DefaultWeights is the production weight vector. It must sum to 1.0.
var DefaultWeights = map[string]float64{
	CriterionReadability: 0.20,
	CriterionSEO:         0.20,
	CriterionKeywords:    0.15,
	CriterionStructure:   0.15,
	CriterionLength:      0.15,
	CriterionOriginality: 0.15,
}

// midpointScore is the safe default returned for content too short to
// measure. The scorer never fails on malformed input, it only logs.
const midpointScore = 50

// minScorableWords is the floor below which ratios are meaningless.
const minScorableWords = 20

// Scorer computes the weighted quality score of an article.
type Scorer struct {
	weights     map[string]float64
	targetWords int
}

// Input carries the article fields the scorer inspects.
type Input struct {
	Title           string
	MetaDescription string
	Content         string // HTML
	CTA             string
	Keywords        []string
}

// New builds a Scorer and validates that the weight vector sums to
// 1.0 ± 1e-6. An invalid vector is a startup error, not something to
// paper over at scoring time.
func New(weights map[string]float64, targetWords int) (*Scorer, error) {
	if weights == nil {
		weights = DefaultWeights
	}
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return nil, &WeightError{Sum: sum}
	}
	if targetWords <= 0 {
		targetWords = 2000
	}
	return &Scorer{weights: weights, targetWords: targetWords}, nil
}

// Score computes the six sub-scores and their weighted combination.
func (s *Scorer) Score(in Input) *model.QualityScore {
	text := plainText(in.Content)
	words := model.WordCount(text)

	breakdown := make(map[string]int, len(s.weights))
	var recommendations []string

	if words < minScorableWords {
		log.Printf("scorer: content too short to score (%d words), using midpoint defaults", words)
		for name := range s.weights {
			breakdown[name] = midpointScore
		}
		recommendations = append(recommendations, "Content is too short to evaluate; expand it before review")
	} else {
		breakdown[CriterionReadability] = readabilityScore(text)
		breakdown[CriterionSEO] = seoScore(in.Title, in.MetaDescription, in.Content)
		breakdown[CriterionKeywords] = keywordScore(text, in.Keywords)
		breakdown[CriterionStructure] = structureScore(in.Content, in.CTA)
		breakdown[CriterionLength] = lengthScore(words, s.targetWords)
		breakdown[CriterionOriginality] = originalityScore(words)
		recommendations = recommend(breakdown, words, s.targetWords)
	}

	var overall float64
	for name, weight := range s.weights {
		breakdown[name] = clamp(breakdown[name])
		overall += float64(breakdown[name]) * weight
	}

	return &model.QualityScore{
		Overall:         clamp(int(math.Round(overall))),
		Breakdown:       breakdown,
		Weights:         s.weights,
		Recommendations: recommendations,
	}
}

func recommend(breakdown map[string]int, words, target int) []string {
	var out []string
	if breakdown[CriterionReadability] < 55 {
		out = append(out, "Shorten sentences and prefer simpler wording to improve readability")
	}
	if breakdown[CriterionSEO] < 60 {
		out = append(out, "Review title/meta description lengths and heading structure for SEO")
	}
	if breakdown[CriterionKeywords] < 60 {
		out = append(out, "Target keyword density of 1-3% and cover more of the target keywords")
	}
	if breakdown[CriterionStructure] < 75 {
		out = append(out, "Add a clear introduction, a takeaway section, and a call to action")
	}
	if words < target {
		out = append(out, "Expand the article toward the target word count")
	}
	return out
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// WeightError reports a weight vector that does not sum to 1.0.
type WeightError struct {
	Sum float64
}

func (e *WeightError) Error() string {
	return "scorer: weight vector must sum to 1.0, got " + strconv.FormatFloat(e.Sum, 'f', -1, 64)
}
