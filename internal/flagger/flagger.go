package flagger

import (
	"fmt"
	"time"
)

// Priority ranks how urgently an editor should act on a flag.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Flag is a single annotated finding in the article text.
type Flag struct {
	Text       string   `json:"text"`
	Position   int      `json:"position"`
	Priority   Priority `json:"priority"`
	Suggestion string   `json:"suggestion"`
}

// AdviceFlag extends Flag with advice classification details.
type AdviceFlag struct {
	Flag
	Category        string `json:"category"`         // investment | transaction | guarantee | general
	DisclaimerLevel string `json:"disclaimer_level"` // required | recommended | optional
	Severity        string `json:"severity"`         // high | medium | low
}

// Report is the full annotation result. The flagger never mutates the
// article; it only annotates.
type Report struct {
	Statistics      []Flag       `json:"statistics"`
	CitationsNeeded []Flag       `json:"citations_needed"`
	Advice          []AdviceFlag `json:"advice"`
	DateReferences  []Flag       `json:"date_references"`
	Confidence      int          `json:"confidence"`
	Summary         string       `json:"summary"`
}

// Flagger scans article text for statements that need editorial
// attention before publication.
type Flagger struct {
	now func() time.Time
}

// New creates a Flagger using the system clock.
func New() *Flagger {
	return NewWithClock(time.Now)
}

// NewWithClock creates a Flagger with an injected clock so date checks
// are testable.
func NewWithClock(now func() time.Time) *Flagger {
	return &Flagger{now: now}
}

// Analyze runs every detector over the raw article text and derives the
// aggregate confidence score and summary.
func (f *Flagger) Analyze(text string) *Report {
	report := &Report{
		Statistics:      detectStatistics(text),
		Advice:          detectAdvice(text),
		DateReferences:  detectDateReferences(text, f.now()),
	}
	report.CitationsNeeded = detectCitationsNeeded(text, report.Statistics)
	report.Confidence = confidence(report)
	report.Summary = summarize(report)
	return report
}

// confidence starts at 100 and deducts per flagged issue weighted by
// priority, floored at 0.
func confidence(r *Report) int {
	score := 100
	deduct := func(p Priority) {
		switch p {
		case PriorityHigh:
			score -= 15
		case PriorityMedium:
			score -= 8
		case PriorityLow:
			score -= 3
		}
	}

	for _, fl := range r.Statistics {
		deduct(fl.Priority)
	}
	for _, fl := range r.CitationsNeeded {
		deduct(fl.Priority)
	}
	for _, fl := range r.Advice {
		deduct(fl.Priority)
	}
	for _, fl := range r.DateReferences {
		deduct(fl.Priority)
	}

	if score < 0 {
		score = 0
	}
	return score
}

func summarize(r *Report) string {
	total := len(r.Statistics) + len(r.CitationsNeeded) + len(r.Advice) + len(r.DateReferences)
	if total == 0 {
		return "No issues flagged; content looks publication-ready from a compliance standpoint."
	}
	return fmt.Sprintf(
		"%d issues flagged: %d statistics to verify, %d statements needing citations, %d advice statements needing disclaimers, %d date references to refresh (confidence %d/100).",
		total, len(r.Statistics), len(r.CitationsNeeded), len(r.Advice), len(r.DateReferences), r.Confidence,
	)
}
