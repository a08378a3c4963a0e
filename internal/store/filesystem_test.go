package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartfinancehub/content-engine/internal/model"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}
	return s
}

func testArticle(id string, status model.Status) *model.Article {
	return &model.Article{
		ID:                id,
		Title:             "Test Article " + id,
		Content:           "<p>body</p>",
		Status:            status,
		OriginalCreatedAt: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:         time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSaveGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := testArticle("a1", model.StatusDraft)
	if err := s.Save(ctx, a); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Get(ctx, "a1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != a.Title || got.Status != model.StatusDraft {
		t.Errorf("Round trip mismatch: %+v", got)
	}
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListSkipsCorruptFiles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, testArticle("good", model.StatusDraft)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	corrupt := filepath.Join(s.root, statusDirs[model.StatusDraft], "bad.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Writing corrupt file failed: %v", err)
	}

	articles, err := s.List(ctx, model.StatusDraft)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(articles) != 1 {
		t.Errorf("Expected corrupt file skipped, got %d articles", len(articles))
	}
}

func TestMoveKeepsExactlyOneLocation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := testArticle("m1", model.StatusDraft)
	if err := s.Save(ctx, a); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	err := s.Move(ctx, "m1", model.StatusDraft, model.StatusApproved, func(article *model.Article) error {
		now := time.Now()
		article.ApprovedAt = &now
		return nil
	})
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	// The id must now exist in exactly one status directory.
	locations := 0
	for status, dir := range statusDirs {
		if _, err := os.Stat(filepath.Join(s.root, dir, "m1.json")); err == nil {
			locations++
			if status != model.StatusApproved {
				t.Errorf("Article found in unexpected status %s", status)
			}
		}
	}
	if locations != 1 {
		t.Errorf("Expected article in exactly 1 location, found %d", locations)
	}

	got, err := s.Get(ctx, "m1")
	if err != nil {
		t.Fatalf("Get after move failed: %v", err)
	}
	if got.Status != model.StatusApproved {
		t.Errorf("Expected approved status, got %s", got.Status)
	}
	if got.ApprovedAt == nil {
		t.Error("Expected mutation to be applied during move")
	}
}

func TestMoveMissingSource(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Move(ctx, "ghost", model.StatusDraft, model.StatusApproved, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	// Present, but in a different status than the move expects.
	if err := s.Save(ctx, testArticle("w1", model.StatusPublished)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	err = s.Move(ctx, "w1", model.StatusDraft, model.StatusApproved, nil)
	if !errors.Is(err, ErrWrongStatus) {
		t.Errorf("Expected ErrWrongStatus, got %v", err)
	}
}

func TestMoveMutateErrorLeavesSourceIntact(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, testArticle("m2", model.StatusDraft)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	moveErr := errors.New("mutation refused")
	err := s.Move(ctx, "m2", model.StatusDraft, model.StatusApproved, func(*model.Article) error {
		return moveErr
	})
	if !errors.Is(err, moveErr) {
		t.Fatalf("Expected mutation error surfaced, got %v", err)
	}

	got, err := s.Get(ctx, "m2")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != model.StatusDraft {
		t.Errorf("Expected article to remain a draft, got %s", got.Status)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, testArticle("d1", model.StatusRejected)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Delete(ctx, "d1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, "d1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, "d1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for second delete, got %v", err)
	}
}
