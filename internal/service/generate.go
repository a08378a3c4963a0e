package service

import (
	"context"
	"fmt"
	"log"

	"github.com/smartfinancehub/content-engine/internal/generator"
	"github.com/smartfinancehub/content-engine/internal/model"
	"github.com/smartfinancehub/content-engine/internal/notify"
	"github.com/smartfinancehub/content-engine/internal/store"
	"github.com/smartfinancehub/content-engine/internal/workflow"
)

// ArticleGenerator is the outbound generation dependency.
type ArticleGenerator interface {
	Generate(ctx context.Context) (*generator.Result, error)
	GenerateForTopic(ctx context.Context, topicID string) (*generator.Result, error)
}

// GenerateService runs batch article generation: generate, dedupe,
// persist as draft, notify reviewers.
type GenerateService struct {
	generator ArticleGenerator
	store     store.Store
	notifier  notify.Notifier
}

// NewGenerateService wires a GenerateService.
func NewGenerateService(gen ArticleGenerator, st store.Store, notifier notify.Notifier) *GenerateService {
	return &GenerateService{
		generator: gen,
		store:     st,
		notifier:  notifier,
	}
}

// ItemResult is the outcome of one article in a batch.
type ItemResult struct {
	ID          string           `json:"id,omitempty"`
	Title       string           `json:"title,omitempty"`
	Source      generator.Source `json:"source,omitempty"`
	Status      model.Status     `json:"status,omitempty"`
	Score       int              `json:"score"`
	DuplicateOf string           `json:"duplicate_of,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// BatchSummary reports a whole generation run. A failed item never
// aborts the batch.
type BatchSummary struct {
	Requested int          `json:"requested"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Items     []ItemResult `json:"items"`
}

// GenerateBatch produces count draft articles. Near-duplicates of
// existing content are persisted as rejected instead of dropped, so
// reviewers can see what was filtered and why.
func (s *GenerateService) GenerateBatch(ctx context.Context, count int) (*BatchSummary, error) {
	if count <= 0 {
		count = 1
	}

	existing, err := s.existingArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading existing articles for dedup: %w", err)
	}

	summary := &BatchSummary{Requested: count}
	log.Printf("🚀 Starting generation batch of %d articles", count)

	for i := 0; i < count; i++ {
		item, article := s.generateOne(ctx, existing)
		summary.Items = append(summary.Items, item)
		if item.Error != "" {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		// Later items in the same batch must dedupe against this one.
		if article != nil {
			existing = append(existing, article)
		}
	}

	log.Printf("🎉 Generation batch finished: %d succeeded, %d failed", summary.Succeeded, summary.Failed)
	return summary, nil
}

// GenerateOne produces a single draft for an explicit topic, used by
// the console's manual-generation endpoint. Empty topicID picks one by
// priority weighting.
func (s *GenerateService) GenerateOne(ctx context.Context, topicID string) (*ItemResult, error) {
	existing, err := s.existingArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading existing articles for dedup: %w", err)
	}

	var result *generator.Result
	if topicID == "" {
		result, err = s.generator.Generate(ctx)
	} else {
		result, err = s.generator.GenerateForTopic(ctx, topicID)
	}
	if err != nil {
		return nil, err
	}

	item := s.persist(ctx, result, existing)
	if item.Error != "" {
		return &item, fmt.Errorf("persisting generated article: %s", item.Error)
	}
	return &item, nil
}

func (s *GenerateService) generateOne(ctx context.Context, existing []*model.Article) (ItemResult, *model.Article) {
	result, err := s.generator.Generate(ctx)
	if err != nil {
		log.Printf("❌ Generation failed: %v", err)
		return ItemResult{Error: err.Error()}, nil
	}
	return s.persist(ctx, result, existing), result.Article
}

// persist saves the generated article after checking it against the
// existing article set for near-duplicates.
func (s *GenerateService) persist(ctx context.Context, result *generator.Result, existing []*model.Article) ItemResult {
	article := result.Article

	item := ItemResult{
		ID:     article.ID,
		Title:  article.Title,
		Source: result.Source,
	}
	if article.QualityScore != nil {
		item.Score = article.QualityScore.Overall
	}

	if match := workflow.FindDuplicate(article, existing); match != nil {
		article.Status = model.StatusRejected
		article.RejectionReason = fmt.Sprintf("duplicate of %q (%s)", match.MatchTitle, match.Reason)
		article.RejectedAt = &article.CreatedAt
		item.DuplicateOf = match.MatchID
		log.Printf("⚠️ Generated article %q rejected: %s", article.Title, article.RejectionReason)
	}

	if err := s.store.Save(ctx, article); err != nil {
		log.Printf("❌ Saving article %s failed: %v", article.ID, err)
		item.Error = err.Error()
		return item
	}
	item.Status = article.Status

	if article.Status == model.StatusDraft {
		if err := s.notifier.NotifyDraft(ctx, article); err != nil {
			// Notification failure never fails the item.
			log.Printf("⚠️ Draft notification failed for %s: %v", article.ID, err)
		}
	}

	return item
}

// existingArticles gathers every non-archived article for duplicate
// comparison.
func (s *GenerateService) existingArticles(ctx context.Context) ([]*model.Article, error) {
	var all []*model.Article
	for _, status := range []model.Status{model.StatusDraft, model.StatusApproved, model.StatusPublished, model.StatusRejected} {
		articles, err := s.store.List(ctx, status)
		if err != nil {
			return nil, err
		}
		all = append(all, articles...)
	}
	return all, nil
}
