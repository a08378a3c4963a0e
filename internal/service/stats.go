package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/smartfinancehub/content-engine/internal/model"
	"github.com/smartfinancehub/content-engine/internal/store"
)

// StatsService aggregates read-only pipeline numbers for the console.
type StatsService struct {
	store store.Store
}

// NewStatsService wires a StatsService.
func NewStatsService(st store.Store) *StatsService {
	return &StatsService{store: st}
}

// PipelineStats counts articles per lifecycle state.
type PipelineStats struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// Stats returns article counts by status.
func (s *StatsService) Stats(ctx context.Context) (*PipelineStats, error) {
	stats := &PipelineStats{Counts: make(map[string]int, len(model.AllStatuses))}
	for _, status := range model.AllStatuses {
		articles, err := s.store.List(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("listing %s articles: %w", status, err)
		}
		stats.Counts[string(status)] = len(articles)
		stats.Total += len(articles)
	}
	return stats, nil
}

// CategoryAnalytics is per-category publication data.
type CategoryAnalytics struct {
	Category     string `json:"category"`
	Published    int    `json:"published"`
	AverageScore int    `json:"average_score"`
}

// Analytics summarizes the published set for the console dashboard.
type Analytics struct {
	Published     int                 `json:"published"`
	AverageScore  int                 `json:"average_score"`
	FallbackCount int                 `json:"fallback_count"`
	Categories    []CategoryAnalytics `json:"categories"`
}

// Analytics aggregates quality scores and fallback usage over the
// published articles.
func (s *StatsService) Analytics(ctx context.Context) (*Analytics, error) {
	published, err := s.store.List(ctx, model.StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("listing published articles: %w", err)
	}

	out := &Analytics{Published: len(published)}

	scoreSum := 0
	scored := 0
	type catAgg struct {
		count int
		sum   int
	}
	byCategory := map[string]*catAgg{}

	for _, a := range published {
		if a.IsFallbackArticle {
			out.FallbackCount++
		}
		agg := byCategory[a.Category]
		if agg == nil {
			agg = &catAgg{}
			byCategory[a.Category] = agg
		}
		agg.count++
		if a.QualityScore != nil {
			scoreSum += a.QualityScore.Overall
			scored++
			agg.sum += a.QualityScore.Overall
		}
	}

	if scored > 0 {
		out.AverageScore = scoreSum / scored
	}

	for category, agg := range byCategory {
		avg := 0
		if agg.count > 0 {
			avg = agg.sum / agg.count
		}
		out.Categories = append(out.Categories, CategoryAnalytics{
			Category:     category,
			Published:    agg.count,
			AverageScore: avg,
		})
	}
	sort.Slice(out.Categories, func(i, j int) bool {
		return out.Categories[i].Category < out.Categories[j].Category
	})

	return out, nil
}

// ScheduledArticle is one pending scheduled publication.
type ScheduledArticle struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ScheduledFor time.Time `json:"scheduled_for"`
}

// Schedule lists approved articles with a pending publish time, soonest
// first.
func (s *StatsService) Schedule(ctx context.Context) ([]ScheduledArticle, error) {
	approved, err := s.store.List(ctx, model.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("listing approved articles: %w", err)
	}

	var out []ScheduledArticle
	for _, a := range approved {
		if a.ScheduledFor == nil {
			continue
		}
		out = append(out, ScheduledArticle{
			ID:           a.ID,
			Title:        a.Title,
			ScheduledFor: *a.ScheduledFor,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledFor.Before(out[j].ScheduledFor)
	})
	return out, nil
}
