package mocks

import (
	"context"

	"github.com/smartfinancehub/content-engine/internal/generator"
)

// Mock ArticleGenerator
type MockGenerator struct {
	GenerateFunc         func(ctx context.Context) (*generator.Result, error)
	GenerateForTopicFunc func(ctx context.Context, topicID string) (*generator.Result, error)
	Calls                int
}

func (m *MockGenerator) Generate(ctx context.Context) (*generator.Result, error) {
	m.Calls++
	return m.GenerateFunc(ctx)
}

func (m *MockGenerator) GenerateForTopic(ctx context.Context, topicID string) (*generator.Result, error) {
	m.Calls++
	if m.GenerateForTopicFunc != nil {
		return m.GenerateForTopicFunc(ctx, topicID)
	}
	return m.GenerateFunc(ctx)
}
