package generator

import (
	"fmt"
	"strings"

	"github.com/smartfinancehub/content-engine/internal/config"
)

// parsedArticle is the result of splitting a generation response into
// its delimited sections.
type parsedArticle struct {
	Title           string
	MetaDescription string
	Content         string
	CTA             string
	UsedDefaults    []string
}

var sectionMarkers = []string{"TITLE:", "META_DESCRIPTION:", "CONTENT:", "CTA:"}

// parseResponse splits a TITLE:/META_DESCRIPTION:/CONTENT:/CTA: block
// response into fields. Missing sections get safe defaults derived from
// the topic instead of failing the whole generation.
func parseResponse(raw string, topic config.Topic) parsedArticle {
	sections := make(map[string]string)

	current := ""
	var buf strings.Builder
	flush := func() {
		if current != "" {
			sections[current] = strings.TrimSpace(buf.String())
		}
		buf.Reset()
	}

	for _, line := range strings.Split(raw, "\n") {
		marker := matchMarker(line)
		if marker != "" {
			flush()
			current = marker
			buf.WriteString(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), marker)))
			buf.WriteString("\n")
			continue
		}
		if current != "" {
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}
	flush()

	parsed := parsedArticle{
		Title:           sections["TITLE:"],
		MetaDescription: sections["META_DESCRIPTION:"],
		Content:         sections["CONTENT:"],
		CTA:             sections["CTA:"],
	}

	if parsed.Title == "" {
		parsed.Title = topic.Title
		parsed.UsedDefaults = append(parsed.UsedDefaults, "title")
	}
	if parsed.MetaDescription == "" {
		parsed.MetaDescription = fmt.Sprintf("A practical guide to %s from Smart Finance Hub.", strings.ToLower(topic.Title))
		parsed.UsedDefaults = append(parsed.UsedDefaults, "meta_description")
	}
	if parsed.Content == "" {
		// No content at all means the response was unusable; the caller
		// treats this as a parse failure and falls back.
		parsed.UsedDefaults = append(parsed.UsedDefaults, "content")
	}
	if parsed.CTA == "" {
		parsed.CTA = "Subscribe to the Smart Finance Hub newsletter for weekly money guides."
		parsed.UsedDefaults = append(parsed.UsedDefaults, "cta")
	}

	return parsed
}

func matchMarker(line string) string {
	trimmed := strings.TrimSpace(line)
	for _, m := range sectionMarkers {
		if strings.HasPrefix(trimmed, m) {
			return m
		}
	}
	return ""
}
