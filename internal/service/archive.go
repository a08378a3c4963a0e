package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/smartfinancehub/content-engine/internal/model"
	"github.com/smartfinancehub/content-engine/internal/store"
	"github.com/smartfinancehub/content-engine/internal/workflow"
)

// ArchiveService sweeps published articles through the age policy.
type ArchiveService struct {
	store   store.Store
	manager *workflow.Manager
	policy  workflow.ArchivePolicy
	review  *ReviewService

	now func() time.Time
}

// NewArchiveService wires an ArchiveService. The review service is used
// to regenerate the site after a sweep changes the published set.
func NewArchiveService(st store.Store, manager *workflow.Manager, policy workflow.ArchivePolicy, review *ReviewService) *ArchiveService {
	return &ArchiveService{
		store:   st,
		manager: manager,
		policy:  policy,
		review:  review,
		now:     time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *ArchiveService) WithClock(now func() time.Time) *ArchiveService {
	s.now = now
	return s
}

// SweepSummary reports one archive sweep.
type SweepSummary struct {
	Examined int      `json:"examined"`
	Archived []string `json:"archived"`
	Failed   []string `json:"failed,omitempty"`
}

// Sweep archives every published article the policy marks as aged out,
// then regenerates the site if anything moved.
func (s *ArchiveService) Sweep(ctx context.Context) (*SweepSummary, error) {
	published, err := s.store.List(ctx, model.StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("listing published articles: %w", err)
	}

	now := s.now()
	summary := &SweepSummary{Examined: len(published)}

	for _, article := range published {
		if !s.policy.Eligible(article, now) {
			continue
		}
		if _, err := s.manager.Transition(ctx, article.ID, model.StatusPublished, model.StatusArchived, ""); err != nil {
			log.Printf("❌ Archiving %s failed: %v", article.ID, err)
			summary.Failed = append(summary.Failed, article.ID)
			continue
		}
		log.Printf("📦 Archived %s (%s)", article.ID, article.Title)
		summary.Archived = append(summary.Archived, article.ID)
	}

	if len(summary.Archived) > 0 {
		if err := s.review.RegenerateSite(ctx); err != nil {
			return summary, fmt.Errorf("regenerating site after archive sweep: %w", err)
		}
	}

	log.Printf("✅ Archive sweep finished: %d examined, %d archived", summary.Examined, len(summary.Archived))
	return summary, nil
}
