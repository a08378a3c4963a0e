package generator

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/smartfinancehub/content-engine/internal/config"
)

func TestFallbackTemplatesRotateByHour(t *testing.T) {
	topic := config.Topic{Title: "Emergency Funds", Category: "saving"}
	keywords := []string{"emergency fund"}

	at := func(hour int) time.Time {
		return time.Date(2026, time.January, 5, hour, 0, 0, 0, time.UTC)
	}

	a := fallbackArticle(topic, keywords, at(0))
	b := fallbackArticle(topic, keywords, at(1))
	c := fallbackArticle(topic, keywords, at(2))
	d := fallbackArticle(topic, keywords, at(3))

	if a.Title == b.Title || b.Title == c.Title || a.Title == c.Title {
		t.Errorf("Expected three distinct templates, got %q / %q / %q", a.Title, b.Title, c.Title)
	}
	if a.Title != d.Title {
		t.Errorf("Expected hour 3 to wrap back to the first template, got %q vs %q", a.Title, d.Title)
	}
}

func TestFallbackArticleIsDeterministic(t *testing.T) {
	topic := config.Topic{Title: "Roth IRA Basics", Category: "retirement"}
	now := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

	a := fallbackArticle(topic, []string{"roth ira"}, now)
	b := fallbackArticle(topic, []string{"roth ira"}, now)

	if !reflect.DeepEqual(a, b) {
		t.Error("Expected identical fallback output for identical inputs")
	}
}

func TestFallbackArticleShape(t *testing.T) {
	topic := config.Topic{Title: "Budgeting Methods", Category: "budgeting"}
	parsed := fallbackArticle(topic, nil, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC))

	if parsed.Title == "" || parsed.MetaDescription == "" || parsed.CTA == "" {
		t.Error("Fallback article must fill every section")
	}
	if !strings.Contains(parsed.Content, "<h1>") {
		t.Error("Fallback content must contain a top heading")
	}
	if !strings.Contains(parsed.Content, "<h2>") {
		t.Error("Fallback content must contain sub-headings")
	}
}
