package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/smartfinancehub/content-engine/internal/generator"
	"github.com/smartfinancehub/content-engine/internal/mocks"
	"github.com/smartfinancehub/content-engine/internal/model"
	"github.com/smartfinancehub/content-engine/internal/store"
)

func generatedArticle(id, title string) *model.Article {
	createdAt := time.Date(2026, time.May, 20, 8, 0, 0, 0, time.UTC)
	slug := model.Slugify(title)
	return &model.Article{
		ID:                id,
		Title:             title,
		MetaDescription:   "About " + title + ".",
		Content:           "<h1>" + title + "</h1><p>Generated body.</p>",
		CTA:               "Subscribe for weekly finance tips.",
		Category:          "investing",
		Topic:             title,
		Slug:              slug,
		URL:               model.ArticleURL(slug, createdAt),
		Status:            model.StatusDraft,
		QualityScore:      &model.QualityScore{Overall: 75},
		OriginalCreatedAt: createdAt,
		CreatedAt:         createdAt,
	}
}

func newGenerateEnv(t *testing.T, gen *mocks.MockGenerator) (*GenerateService, store.Store, *mocks.MockNotifier) {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	notifier := &mocks.MockNotifier{}
	return NewGenerateService(gen, st, notifier), st, notifier
}

func TestGenerateBatchSavesDraftsAndNotifies(t *testing.T) {
	calls := 0
	gen := &mocks.MockGenerator{
		GenerateFunc: func(ctx context.Context) (*generator.Result, error) {
			calls++
			title := fmt.Sprintf("Unique Topic Number %d Deep Dive", calls)
			return &generator.Result{
				Article: generatedArticle(fmt.Sprintf("g%d", calls), title),
				Source:  generator.SourceAPI,
			}, nil
		},
	}
	svc, st, notifier := newGenerateEnv(t, gen)

	summary, err := svc.GenerateBatch(context.Background(), 2)
	if err != nil {
		t.Fatalf("GenerateBatch failed: %v", err)
	}

	if summary.Succeeded != 2 || summary.Failed != 0 {
		t.Errorf("Expected 2 succeeded, got %+v", summary)
	}

	drafts, err := st.List(context.Background(), model.StatusDraft)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(drafts) != 2 {
		t.Errorf("Expected 2 drafts saved, got %d", len(drafts))
	}
	if len(notifier.DraftNotifications) != 2 {
		t.Errorf("Expected 2 draft notifications, got %d", len(notifier.DraftNotifications))
	}
}

func TestGenerateBatchRejectsDuplicateWithinBatch(t *testing.T) {
	calls := 0
	gen := &mocks.MockGenerator{
		GenerateFunc: func(ctx context.Context) (*generator.Result, error) {
			calls++
			// Same title every time: the second item is a duplicate of the first.
			return &generator.Result{
				Article: generatedArticle(fmt.Sprintf("g%d", calls), "Dividend Investing Basics"),
				Source:  generator.SourceAPI,
			}, nil
		},
	}
	svc, st, notifier := newGenerateEnv(t, gen)
	ctx := context.Background()

	summary, err := svc.GenerateBatch(ctx, 2)
	if err != nil {
		t.Fatalf("GenerateBatch failed: %v", err)
	}

	if summary.Succeeded != 2 {
		t.Errorf("A duplicate redirect still counts as a handled item, got %+v", summary)
	}
	if summary.Items[1].DuplicateOf != "g1" {
		t.Errorf("Expected second item marked duplicate of g1, got %q", summary.Items[1].DuplicateOf)
	}

	rejected, err := st.List(ctx, model.StatusRejected)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rejected) != 1 {
		t.Fatalf("Expected 1 rejected article, got %d", len(rejected))
	}
	if rejected[0].RejectionReason == "" {
		t.Error("Rejected duplicate must carry a reason")
	}

	// Only the non-duplicate draft triggers a review notification.
	if len(notifier.DraftNotifications) != 1 {
		t.Errorf("Expected 1 draft notification, got %d", len(notifier.DraftNotifications))
	}
}

func TestGenerateBatchContinuesAfterFailure(t *testing.T) {
	calls := 0
	gen := &mocks.MockGenerator{
		GenerateFunc: func(ctx context.Context) (*generator.Result, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("generation exploded")
			}
			return &generator.Result{
				Article: generatedArticle("g2", "Backdoor Roth Conversions"),
				Source:  generator.SourceFallback,
			}, nil
		},
	}
	svc, _, _ := newGenerateEnv(t, gen)

	summary, err := svc.GenerateBatch(context.Background(), 2)
	if err != nil {
		t.Fatalf("GenerateBatch failed: %v", err)
	}

	if summary.Failed != 1 || summary.Succeeded != 1 {
		t.Errorf("Expected 1 failed and 1 succeeded, got %+v", summary)
	}
	if summary.Items[0].Error == "" {
		t.Error("Failed item must carry its error")
	}
	if summary.Items[1].Source != generator.SourceFallback {
		t.Errorf("Expected fallback source recorded, got %s", summary.Items[1].Source)
	}
}

func TestGenerateOneForExplicitTopic(t *testing.T) {
	gen := &mocks.MockGenerator{
		GenerateForTopicFunc: func(ctx context.Context, topicID string) (*generator.Result, error) {
			if topicID != "roth-ira" {
				t.Errorf("Expected topic roth-ira, got %s", topicID)
			}
			return &generator.Result{
				Article: generatedArticle("g1", "Roth IRA Contribution Guide"),
				Source:  generator.SourceAPI,
			}, nil
		},
	}
	svc, st, _ := newGenerateEnv(t, gen)

	item, err := svc.GenerateOne(context.Background(), "roth-ira")
	if err != nil {
		t.Fatalf("GenerateOne failed: %v", err)
	}
	if item.Status != model.StatusDraft {
		t.Errorf("Expected draft, got %s", item.Status)
	}

	if _, err := st.Get(context.Background(), "g1"); err != nil {
		t.Errorf("Generated article must be persisted: %v", err)
	}
}
