package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/smartfinancehub/content-engine/internal/flagger"
	"github.com/smartfinancehub/content-engine/internal/model"
	"github.com/smartfinancehub/content-engine/internal/notify"
	"github.com/smartfinancehub/content-engine/internal/scorer"
	"github.com/smartfinancehub/content-engine/internal/site"
	"github.com/smartfinancehub/content-engine/internal/store"
	"github.com/smartfinancehub/content-engine/internal/workflow"
)

// ReviewService carries every editorial operation of the console:
// review, approve, reject, schedule, publish, restore.
type ReviewService struct {
	store     store.Store
	manager   *workflow.Manager
	scorer    *scorer.Scorer
	flagger   *flagger.Flagger
	site      *site.Generator
	committer Committer
	notifier  notify.Notifier

	autoApproveThreshold int
	now                  func() time.Time
}

// NewReviewService wires a ReviewService.
func NewReviewService(
	st store.Store,
	manager *workflow.Manager,
	sc *scorer.Scorer,
	fl *flagger.Flagger,
	siteGen *site.Generator,
	committer Committer,
	notifier notify.Notifier,
	autoApproveThreshold int,
) *ReviewService {
	return &ReviewService{
		store:                st,
		manager:              manager,
		scorer:               sc,
		flagger:              fl,
		site:                 siteGen,
		committer:            committer,
		notifier:             notifier,
		autoApproveThreshold: autoApproveThreshold,
		now:                  time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *ReviewService) WithClock(now func() time.Time) *ReviewService {
	s.now = now
	return s
}

// ReviewedArticle bundles an article with its flag report for the
// console detail view.
type ReviewedArticle struct {
	Article *model.Article  `json:"article"`
	Flags   *flagger.Report `json:"flags"`
}

// Get returns one article with a fresh flag analysis of its content.
func (s *ReviewService) Get(ctx context.Context, id string) (*ReviewedArticle, error) {
	article, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ReviewedArticle{
		Article: article,
		Flags:   s.flagger.Analyze(article.Content),
	}, nil
}

// List returns every article in the given status.
func (s *ReviewService) List(ctx context.Context, status model.Status) ([]*model.Article, error) {
	return s.store.List(ctx, status)
}

// UpdateRequest carries the editable fields of an article. Nil fields
// are left untouched.
type UpdateRequest struct {
	Title           *string `json:"title,omitempty"`
	MetaDescription *string `json:"meta_description,omitempty"`
	Content         *string `json:"content,omitempty"`
	CTA             *string `json:"cta,omitempty"`
}

// Update edits an article's content fields and re-scores it. Slug and
// URL stay frozen so published links never break.
func (s *ReviewService) Update(ctx context.Context, id string, req UpdateRequest) (*model.Article, error) {
	article, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.MetaDescription != nil {
		article.MetaDescription = *req.MetaDescription
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.CTA != nil {
		article.CTA = *req.CTA
	}

	article.QualityScore = s.scorer.Score(scorer.Input{
		Title:           article.Title,
		MetaDescription: article.MetaDescription,
		Content:         article.Content,
		CTA:             article.CTA,
		Keywords:        article.Keywords,
	})

	if err := s.store.Save(ctx, article); err != nil {
		return nil, fmt.Errorf("saving updated article: %w", err)
	}
	return article, nil
}

// ApproveResult reports an approval attempt. A duplicate redirect is a
// normal outcome, not an error.
type ApproveResult struct {
	Article   *model.Article           `json:"article"`
	Duplicate *workflow.DuplicateMatch `json:"duplicate,omitempty"`
}

// Approve moves a draft to approved after a duplicate check against the
// approved and published sets. A near-duplicate is redirected to
// rejected with the match recorded as the reason.
func (s *ReviewService) Approve(ctx context.Context, id string) (*ApproveResult, error) {
	article, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var compare []*model.Article
	for _, status := range []model.Status{model.StatusApproved, model.StatusPublished} {
		others, err := s.store.List(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("loading %s articles for dedup: %w", status, err)
		}
		compare = append(compare, others...)
	}

	if match := workflow.FindDuplicate(article, compare); match != nil {
		reason := fmt.Sprintf("duplicate of %q (%s)", match.MatchTitle, match.Reason)
		rejected, err := s.manager.Transition(ctx, id, article.Status, model.StatusRejected, reason)
		if err != nil {
			return nil, fmt.Errorf("redirecting duplicate to rejected: %w", err)
		}
		log.Printf("⚠️ Article %s redirected to rejected: %s", id, reason)
		return &ApproveResult{Article: rejected, Duplicate: match}, nil
	}

	approved, err := s.manager.Transition(ctx, id, article.Status, model.StatusApproved, "")
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Article %s approved", id)
	return &ApproveResult{Article: approved}, nil
}

// AutoApprove approves a draft only when its quality score clears the
// configured threshold; below it the draft stays put for human review.
func (s *ReviewService) AutoApprove(ctx context.Context, id string) (*ApproveResult, bool, error) {
	article, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if article.QualityScore == nil || article.QualityScore.Overall < s.autoApproveThreshold {
		return nil, false, nil
	}
	result, err := s.Approve(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}

// Reject moves an article to rejected with a reviewer-supplied reason.
func (s *ReviewService) Reject(ctx context.Context, id, reason string) (*model.Article, error) {
	article, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rejected, err := s.manager.Transition(ctx, id, article.Status, model.StatusRejected, reason)
	if err != nil {
		return nil, err
	}
	log.Printf("🚫 Article %s rejected: %s", id, reason)
	return rejected, nil
}

// Schedule stamps a future publish time on an approved article.
func (s *ReviewService) Schedule(ctx context.Context, id string, at time.Time) (*model.Article, error) {
	article, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.Status != model.StatusApproved {
		return nil, &workflow.TransitionError{From: article.Status, To: model.StatusPublished}
	}
	if at.Before(s.now()) {
		return nil, fmt.Errorf("scheduled time %s is in the past", at.Format(time.RFC3339))
	}

	article.ScheduledFor = &at
	if err := s.store.Save(ctx, article); err != nil {
		return nil, fmt.Errorf("saving schedule: %w", err)
	}
	log.Printf("📅 Article %s scheduled for %s", id, at.Format(time.RFC3339))
	return article, nil
}

// Publish moves an approved article to published, regenerates the site,
// commits the output, and announces the publication.
func (s *ReviewService) Publish(ctx context.Context, id string) (*model.Article, error) {
	article, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	published, err := s.manager.Transition(ctx, id, article.Status, model.StatusPublished, "")
	if err != nil {
		return nil, err
	}

	if err := s.RegenerateSite(ctx); err != nil {
		return nil, fmt.Errorf("regenerating site after publish: %w", err)
	}

	if err := s.notifier.NotifyPublished(ctx, published); err != nil {
		log.Printf("⚠️ Publish notification failed for %s: %v", id, err)
	}

	log.Printf("🚀 Article %s published at %s", id, published.URL)
	return published, nil
}

// PublishDue publishes every approved article whose scheduled time has
// arrived. Returns the ids it published.
func (s *ReviewService) PublishDue(ctx context.Context) ([]string, error) {
	approved, err := s.store.List(ctx, model.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("listing approved articles: %w", err)
	}

	now := s.now()
	var published []string
	for _, article := range approved {
		if article.ScheduledFor == nil || article.ScheduledFor.After(now) {
			continue
		}
		if _, err := s.Publish(ctx, article.ID); err != nil {
			log.Printf("❌ Scheduled publish failed for %s: %v", article.ID, err)
			continue
		}
		published = append(published, article.ID)
	}
	return published, nil
}

// Restore brings an archived article back to published.
func (s *ReviewService) Restore(ctx context.Context, id string) (*model.Article, error) {
	article, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	restored, err := s.manager.Transition(ctx, id, article.Status, model.StatusPublished, "")
	if err != nil {
		return nil, err
	}
	if err := s.RegenerateSite(ctx); err != nil {
		return nil, fmt.Errorf("regenerating site after restore: %w", err)
	}
	log.Printf("♻️ Article %s restored to published", id)
	return restored, nil
}

// Delete removes an article from the store entirely.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// RegenerateSite renders the whole site from the published set and
// commits every page.
func (s *ReviewService) RegenerateSite(ctx context.Context) error {
	articles, err := s.store.List(ctx, model.StatusPublished)
	if err != nil {
		return fmt.Errorf("listing published articles: %w", err)
	}

	pages, err := s.site.Render(articles)
	if err != nil {
		return err
	}

	for _, page := range pages {
		message := fmt.Sprintf("Regenerate site: %s", page.Path)
		if err := s.committer.PutFile(ctx, page.Path, message, page.Content); err != nil {
			return fmt.Errorf("committing %s: %w", page.Path, err)
		}
	}

	log.Printf("✅ Site regenerated: %d pages from %d published articles", len(pages), len(articles))
	return nil
}
