package mocks

import (
	"context"

	"github.com/smartfinancehub/content-engine/internal/model"
)

// Mock Notifier
type MockNotifier struct {
	DraftNotifications     []*model.Article
	PublishedNotifications []*model.Article
	NotifyDraftFunc        func(ctx context.Context, article *model.Article) error
	NotifyPublishedFunc    func(ctx context.Context, article *model.Article) error
}

func (m *MockNotifier) NotifyDraft(ctx context.Context, article *model.Article) error {
	m.DraftNotifications = append(m.DraftNotifications, article)
	if m.NotifyDraftFunc != nil {
		return m.NotifyDraftFunc(ctx, article)
	}
	return nil
}

func (m *MockNotifier) NotifyPublished(ctx context.Context, article *model.Article) error {
	m.PublishedNotifications = append(m.PublishedNotifications, article)
	if m.NotifyPublishedFunc != nil {
		return m.NotifyPublishedFunc(ctx, article)
	}
	return nil
}
