package service

import (
	"context"
	"testing"

	"github.com/smartfinancehub/content-engine/internal/model"
	"github.com/smartfinancehub/content-engine/internal/workflow"
)

func newArchiveEnv(t *testing.T) (*ArchiveService, *reviewEnv) {
	t.Helper()
	env := newReviewEnv(t)
	manager := workflow.NewManagerWithClock(env.store, testClock)
	policy := workflow.NewArchivePolicy(365, []string{"retirement"})
	svc := NewArchiveService(env.store, manager, policy, env.service).WithClock(testClock)
	return svc, env
}

func publishAt(t *testing.T, env *reviewEnv, id, title string, daysAgo int) {
	t.Helper()
	a := seedReviewArticle(t, env.store, id, title, model.StatusPublished, 60)
	at := testNow.AddDate(0, 0, -daysAgo)
	a.PublishedAt = &at
	a.OriginalCreatedAt = at
	if err := env.store.Save(context.Background(), a); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
}

func TestSweepArchivesAgedArticles(t *testing.T) {
	svc, env := newArchiveEnv(t)
	ctx := context.Background()

	publishAt(t, env, "old", "Quarterly Market Recap", 400)
	publishAt(t, env, "young", "Monthly Savings Challenge", 30)

	summary, err := svc.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	if summary.Examined != 2 {
		t.Errorf("Expected 2 examined, got %d", summary.Examined)
	}
	if len(summary.Archived) != 1 || summary.Archived[0] != "old" {
		t.Errorf("Expected only 'old' archived, got %v", summary.Archived)
	}

	archived, err := env.store.Get(ctx, "old")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if archived.Status != model.StatusArchived {
		t.Errorf("Expected archived, got %s", archived.Status)
	}
	if archived.ArchivedAt == nil {
		t.Error("Expected ArchivedAt stamped")
	}

	still, _ := env.store.Get(ctx, "young")
	if still.Status != model.StatusPublished {
		t.Errorf("Young article must stay published, got %s", still.Status)
	}

	if len(env.committer.Puts) == 0 {
		t.Error("Sweep that archived something must regenerate the site")
	}
}

func TestSweepWithNothingEligibleSkipsRegeneration(t *testing.T) {
	svc, env := newArchiveEnv(t)

	publishAt(t, env, "young", "Monthly Savings Challenge", 30)

	summary, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if len(summary.Archived) != 0 {
		t.Errorf("Expected nothing archived, got %v", summary.Archived)
	}
	if len(env.committer.Puts) != 0 {
		t.Error("No-op sweep must not regenerate the site")
	}
}

func TestSweepKeepsHighPriorityWithinExtendedThreshold(t *testing.T) {
	svc, env := newArchiveEnv(t)
	ctx := context.Background()

	publishAt(t, env, "priority", "Social Security Timing", 410)
	a, _ := env.store.Get(ctx, "priority")
	a.Category = "retirement"
	if err := env.store.Save(ctx, a); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	summary, err := svc.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if len(summary.Archived) != 0 {
		t.Errorf("High-priority article inside the extended window must be kept, got %v", summary.Archived)
	}
}
