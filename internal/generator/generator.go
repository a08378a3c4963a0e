package generator

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smartfinancehub/content-engine/internal/config"
	"github.com/smartfinancehub/content-engine/internal/model"
	"github.com/smartfinancehub/content-engine/internal/scorer"
)

// TextClient is the outbound text-generation dependency.
type TextClient interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Source records where a generated article came from.
type Source string

const (
	SourceAPI      Source = "api"
	SourceFallback Source = "fallback"
)

// Result is the outcome of one generation: either an API article or a
// fallback-template article. Total failure is an error instead.
type Result struct {
	Article *model.Article
	Source  Source
}

// Options bound the retry behavior of the generation call.
type Options struct {
	Attempts   int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// Generator produces draft articles from the configured topic list.
type Generator struct {
	client   TextClient
	scorer   *scorer.Scorer
	topics   []config.Topic
	keywords map[string][]string
	opts     Options

	now  func() time.Time
	rand *rand.Rand
}

// New wires a Generator from configuration.
func New(client TextClient, sc *scorer.Scorer, topics []config.Topic, keywords map[string][]string, opts Options) *Generator {
	if opts.Attempts <= 0 {
		opts.Attempts = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 5 * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &Generator{
		client:   client,
		scorer:   sc,
		topics:   topics,
		keywords: keywords,
		opts:     opts,
		now:      time.Now,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate picks a topic, calls the generation API with retry, falls
// back to a local template on total failure, and returns a scored draft
// article.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	topic, err := g.pickTopic()
	if err != nil {
		return nil, err
	}
	keywords := g.selectKeywords(topic)

	log.Printf("📝 Generating article for topic %q (%s priority)", topic.Title, topic.Priority)

	parsed, source := g.generateWithFallback(ctx, topic, keywords)
	article := g.buildArticle(parsed, topic, keywords, source)

	log.Printf("✅ Generated %q via %s (quality %d)", article.Title, source, article.QualityScore.Overall)
	return &Result{Article: article, Source: source}, nil
}

// GenerateForTopic is Generate with an explicit topic, used by the
// console's manual-generation endpoint.
func (g *Generator) GenerateForTopic(ctx context.Context, topicID string) (*Result, error) {
	for _, topic := range g.topics {
		if topic.ID == topicID {
			keywords := g.selectKeywords(topic)
			parsed, source := g.generateWithFallback(ctx, topic, keywords)
			article := g.buildArticle(parsed, topic, keywords, source)
			return &Result{Article: article, Source: source}, nil
		}
	}
	return nil, fmt.Errorf("unknown topic: %s", topicID)
}

// generateWithFallback runs the retry loop and degrades to a template
// article when the API cannot be reached or returns unusable output.
func (g *Generator) generateWithFallback(ctx context.Context, topic config.Topic, keywords []string) (parsedArticle, Source) {
	raw, err := g.callWithRetry(ctx, topic, keywords)
	if err == nil {
		parsed := parseResponse(raw, topic)
		if parsed.Content != "" {
			if len(parsed.UsedDefaults) > 0 {
				log.Printf("⚠️ Generation response missing sections %v, defaults substituted", parsed.UsedDefaults)
			}
			return parsed, SourceAPI
		}
		log.Printf("⚠️ Generation response had no usable content, falling back to template")
	} else {
		log.Printf("⚠️ Generation failed after %d attempts: %v, falling back to template", g.opts.Attempts, err)
	}

	return fallbackArticle(topic, keywords, g.now()), SourceFallback
}

func (g *Generator) callWithRetry(ctx context.Context, topic config.Topic, keywords []string) (string, error) {
	userPrompt := buildUserPrompt(topic, keywords, 2000)

	var lastErr error
	for attempt := 1; attempt <= g.opts.Attempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
		raw, err := g.client.Generate(callCtx, systemPrompt, userPrompt)
		cancel()

		if err == nil {
			return raw, nil
		}
		lastErr = err
		log.Printf("⚠️ Generation attempt %d/%d failed: %v", attempt, g.opts.Attempts, err)

		if attempt < g.opts.Attempts {
			select {
			case <-time.After(g.opts.RetryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	return "", fmt.Errorf("generation failed after %d attempts: %w", g.opts.Attempts, lastErr)
}

func (g *Generator) buildArticle(parsed parsedArticle, topic config.Topic, keywords []string, source Source) *model.Article {
	now := g.now()
	slug := model.Slugify(parsed.Title)

	article := &model.Article{
		ID:                uuid.NewString(),
		Title:             parsed.Title,
		MetaDescription:   parsed.MetaDescription,
		Content:           parsed.Content,
		CTA:               parsed.CTA,
		Category:          topic.Category,
		Topic:             topic.Title,
		Keywords:          keywords,
		Slug:              slug,
		URL:               model.ArticleURL(slug, now),
		Status:            model.StatusDraft,
		IsFallbackArticle: source == SourceFallback,
		OriginalCreatedAt: now,
		CreatedAt:         now,
	}

	article.QualityScore = g.scorer.Score(scorer.Input{
		Title:           article.Title,
		MetaDescription: article.MetaDescription,
		Content:         article.Content,
		CTA:             article.CTA,
		Keywords:        article.Keywords,
	})

	return article
}

// pickTopic draws a topic with a 60/30/10 weighting across
// high/medium/low priority tiers, degrading to whichever tiers exist.
func (g *Generator) pickTopic() (config.Topic, error) {
	if len(g.topics) == 0 {
		return config.Topic{}, fmt.Errorf("no topics configured")
	}

	tiers := map[string][]config.Topic{}
	for _, t := range g.topics {
		tiers[t.Priority] = append(tiers[t.Priority], t)
	}

	roll := g.rand.Float64()
	order := []string{"high", "medium", "low"}
	switch {
	case roll < 0.60:
		// keep order
	case roll < 0.90:
		order = []string{"medium", "high", "low"}
	default:
		order = []string{"low", "medium", "high"}
	}

	for _, tier := range order {
		if candidates := tiers[tier]; len(candidates) > 0 {
			return candidates[g.rand.Intn(len(candidates))], nil
		}
	}

	// Priorities outside the known set: fall back to a uniform draw.
	return g.topics[g.rand.Intn(len(g.topics))], nil
}

// selectKeywords takes the first 5 topic keywords plus the long-tail
// keywords configured for the topic's category.
func (g *Generator) selectKeywords(topic config.Topic) []string {
	keywords := topic.Keywords
	if len(keywords) > 5 {
		keywords = keywords[:5]
	}

	out := append([]string{}, keywords...)
	for _, longTail := range g.keywords[strings.ToLower(topic.Category)] {
		out = append(out, longTail)
	}
	return out
}

// WithClock overrides the generator's clock. Test hook.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// WithRand overrides the generator's random source. Test hook.
func (g *Generator) WithRand(r *rand.Rand) *Generator {
	g.rand = r
	return g
}
