package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/smartfinancehub/content-engine/internal/config"
)

// fallbackTemplate produces a deterministic local article when the
// generation API is unavailable. The pipeline always produces something
// rather than stalling.
type fallbackTemplate struct {
	name  string
	build func(topic config.Topic, keywords []string) parsedArticle
}

// Templates rotate by wall-clock hour so consecutive fallback runs do
// not emit identical shapes.
var fallbackTemplates = []fallbackTemplate{
	{name: "guide", build: buildGuideTemplate},
	{name: "mistakes", build: buildMistakesTemplate},
	{name: "checklist", build: buildChecklistTemplate},
}

func fallbackArticle(topic config.Topic, keywords []string, now time.Time) parsedArticle {
	tpl := fallbackTemplates[now.Hour()%len(fallbackTemplates)]
	return tpl.build(topic, keywords)
}

func buildGuideTemplate(topic config.Topic, keywords []string) parsedArticle {
	kw := keywordPhrase(topic, keywords)
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s: A Practical Guide</h1>", topic.Title)
	fmt.Fprintf(&b, "<p>Getting started with %s does not have to be complicated. This guide walks through what it is, why it matters for your money, and the concrete steps to take this week. Each section builds on the last, so read it top to bottom the first time through.</p>", kw)
	fmt.Fprintf(&b, "<h2>What It Is and Why It Matters</h2><p>%s sits at the core of a healthy financial plan. Understanding the basics protects you from expensive mistakes and makes every later decision easier.</p>", topic.Title)
	fmt.Fprintf(&b, "<h2>How to Get Started</h2><p>Start small and be consistent. Set up the account or plan, automate the first contribution, and review it once a month rather than every day.</p>")
	fmt.Fprintf(&b, "<h2>What to Watch Out For</h2><p>Fees, impatience, and products you do not understand are the three classic traps. If an offer sounds too good, slow down and compare it against a boring alternative.</p>")
	fmt.Fprintf(&b, "<h2>The Bottom Line</h2><p>You do not need perfect timing or deep expertise to benefit from %s. You need a simple plan you can stick with.</p>", kw)

	return parsedArticle{
		Title:           fmt.Sprintf("%s: A Practical Guide", topic.Title),
		MetaDescription: fmt.Sprintf("A practical, plain-English guide to %s: what it is, how to start, and the mistakes to avoid along the way.", kw),
		Content:         b.String(),
		CTA:             "Subscribe to the Smart Finance Hub newsletter for weekly money guides.",
	}
}

func buildMistakesTemplate(topic config.Topic, keywords []string) parsedArticle {
	kw := keywordPhrase(topic, keywords)
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>Common Mistakes With %s</h1>", topic.Title)
	fmt.Fprintf(&b, "<p>Most of the damage people do to their finances around %s comes from a handful of avoidable mistakes. Knowing them in advance is the cheapest education you will ever get.</p>", kw)
	fmt.Fprintf(&b, "<h2>Waiting for the Perfect Moment</h2><p>Delay is the most expensive mistake. Starting imperfectly today beats starting perfectly someday.</p>")
	fmt.Fprintf(&b, "<h2>Ignoring the Costs</h2><p>Small percentages compound. Always know what you are paying in fees and what the alternative would cost.</p>")
	fmt.Fprintf(&b, "<h2>Chasing What Just Went Up</h2><p>Performance chasing feels safe and is usually the opposite. A written plan beats a hot tip.</p>")
	fmt.Fprintf(&b, "<h2>The Bottom Line</h2><p>Avoiding the big mistakes matters more than optimizing the small details of %s.</p>", kw)

	return parsedArticle{
		Title:           fmt.Sprintf("Common Mistakes With %s", topic.Title),
		MetaDescription: fmt.Sprintf("The most common and most expensive mistakes people make with %s, and the simple habits that help you avoid every one of them.", kw),
		Content:         b.String(),
		CTA:             "Get our free checklist of money mistakes to avoid this year.",
	}
}

func buildChecklistTemplate(topic config.Topic, keywords []string) parsedArticle {
	kw := keywordPhrase(topic, keywords)
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s: A Step-by-Step Checklist</h1>", topic.Title)
	fmt.Fprintf(&b, "<p>Use this checklist to work through %s one step at a time. None of the steps require special expertise, and each one leaves you better off than the last.</p>", kw)
	fmt.Fprintf(&b, "<h2>Step 1: Know Your Numbers</h2><p>Write down what you earn, what you owe, and what you keep each month. Every good decision starts here.</p>")
	fmt.Fprintf(&b, "<h2>Step 2: Automate the Basics</h2><p>Move the decision from willpower to a standing instruction. Automation is how ordinary people stay consistent.</p>")
	fmt.Fprintf(&b, "<h2>Step 3: Review Once a Quarter</h2><p>Put a recurring date on the calendar. A quarterly review catches drift before it becomes a problem.</p>")
	fmt.Fprintf(&b, "<h2>The Bottom Line</h2><p>Checklists beat motivation. Work the steps for %s and let consistency do the rest.</p>", kw)

	return parsedArticle{
		Title:           fmt.Sprintf("%s: A Step-by-Step Checklist", topic.Title),
		MetaDescription: fmt.Sprintf("A step-by-step checklist for %s that takes you from knowing nothing to a working plan, with a quarterly review habit to keep it on track.", kw),
		Content:         b.String(),
		CTA:             "Download the full checklist and track your progress with us.",
	}
}

func keywordPhrase(topic config.Topic, keywords []string) string {
	if len(keywords) > 0 {
		return keywords[0]
	}
	return strings.ToLower(topic.Title)
}
