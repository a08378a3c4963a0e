package scorer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// seoScore awards fixed point buckets for title length, meta description
// length, heading shape and link count. Heading and link shape come from
// parsing the article HTML, not from pattern matching.
func seoScore(title, metaDescription, content string) int {
	score := 0

	titleLen := len(strings.TrimSpace(title))
	switch {
	case titleLen >= 40 && titleLen <= 60:
		score += 25
	case titleLen >= 30 && titleLen <= 70:
		score += 15
	}

	metaLen := len(strings.TrimSpace(metaDescription))
	switch {
	case metaLen >= 140 && metaLen <= 160:
		score += 25
	case metaLen >= 120 && metaLen <= 180:
		score += 15
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		// Unparseable HTML forfeits the structural buckets only.
		return clamp(score)
	}

	if doc.Find("h1").Length() == 1 {
		score += 15
	}

	subHeadings := doc.Find("h2, h3").Length()
	if subHeadings >= 3 && subHeadings <= 8 {
		score += 15
	}

	links := doc.Find("a[href]").Length()
	switch {
	case links >= 3:
		score += 20
	case links >= 1:
		score += 10
	}

	return clamp(score)
}

// plainText strips markup from article HTML for word-level analysis.
// A space is forced at every tag boundary so words in adjacent elements
// do not run together.
func plainText(content string) string {
	spaced := strings.ReplaceAll(content, "<", " <")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(spaced))
	if err != nil {
		return content
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
