package model

import (
	"regexp"
	"strings"
	"time"
)

// Status is the lifecycle state of an article. The store keeps each
// article in exactly one status location at a time.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusApproved  Status = "approved"
	StatusPublished Status = "published"
	StatusRejected  Status = "rejected"
	StatusArchived  Status = "archived"
)

// AllStatuses lists every lifecycle state in pipeline order.
var AllStatuses = []Status{
	StatusDraft,
	StatusApproved,
	StatusPublished,
	StatusRejected,
	StatusArchived,
}

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusApproved, StatusPublished, StatusRejected, StatusArchived:
		return true
	}
	return false
}

// QualityScore is the heuristic publish-readiness score attached to an
// article. Overall and every breakdown entry are in [0,100].
type QualityScore struct {
	Overall         int                `json:"overall"`
	Breakdown       map[string]int     `json:"breakdown"`
	Weights         map[string]float64 `json:"weights"`
	Recommendations []string           `json:"recommendations,omitempty"`
}

// Article is the content record flowing through the
// generation -> review -> publish pipeline.
type Article struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	MetaDescription string   `json:"meta_description"`
	Content         string   `json:"content"` // HTML
	CTA             string   `json:"cta"`
	Category        string   `json:"category"`
	Topic           string   `json:"topic"`
	Keywords        []string `json:"keywords,omitempty"`

	// Slug and URL are derived from title/date at creation and then frozen.
	Slug string `json:"slug"`
	URL  string `json:"url"`

	Status            Status        `json:"status"`
	QualityScore      *QualityScore `json:"quality_score,omitempty"`
	IsFallbackArticle bool          `json:"is_fallback_article,omitempty"`
	RejectionReason   string        `json:"rejection_reason,omitempty"`

	// OriginalCreatedAt is set once at creation and never overwritten; it
	// drives chronological ordering on the generated pages.
	OriginalCreatedAt time.Time  `json:"original_created_at"`
	CreatedAt         time.Time  `json:"created_at"`
	ApprovedAt        *time.Time `json:"approved_at,omitempty"`
	PublishedAt       *time.Time `json:"published_at,omitempty"`
	RejectedAt        *time.Time `json:"rejected_at,omitempty"`
	ArchivedAt        *time.Time `json:"archived_at,omitempty"`
	ScheduledFor      *time.Time `json:"scheduled_for,omitempty"`
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// ArticleURL builds the canonical site path for a slug and creation date.
func ArticleURL(slug string, createdAt time.Time) string {
	return "/articles/" + createdAt.Format("2006/01") + "/" + slug + ".html"
}

// WordCount counts whitespace-separated words in plain text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
