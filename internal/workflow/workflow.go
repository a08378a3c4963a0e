package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/smartfinancehub/content-engine/internal/model"
	"github.com/smartfinancehub/content-engine/internal/store"
)

// allowedTransitions is the one-directional lifecycle graph. Anything
// not listed is rejected before any mutation happens.
var allowedTransitions = map[model.Status][]model.Status{
	model.StatusDraft:     {model.StatusApproved, model.StatusRejected},
	model.StatusApproved:  {model.StatusPublished, model.StatusRejected},
	model.StatusPublished: {model.StatusArchived},
	model.StatusArchived:  {model.StatusPublished}, // manual restore only
}

// TransitionError reports a transition the lifecycle graph forbids.
type TransitionError struct {
	From model.Status
	To   model.Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
}

// Manager applies lifecycle transitions through the article store.
type Manager struct {
	store store.Store
	now   func() time.Time
}

// NewManager creates a Manager using the system clock.
func NewManager(s store.Store) *Manager {
	return &Manager{store: s, now: time.Now}
}

// NewManagerWithClock creates a Manager with an injected clock.
func NewManagerWithClock(s store.Store, now func() time.Time) *Manager {
	return &Manager{store: s, now: now}
}

// Allowed reports whether from -> to is a legal transition.
func Allowed(from, to model.Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves an article between lifecycle states, stamping the
// destination timestamp exactly once. reason is recorded on rejections.
func (m *Manager) Transition(ctx context.Context, id string, from, to model.Status, reason string) (*model.Article, error) {
	if !Allowed(from, to) {
		return nil, &TransitionError{From: from, To: to}
	}

	var moved *model.Article
	err := m.store.Move(ctx, id, from, to, func(article *model.Article) error {
		m.stamp(article, to, reason)
		moved = article
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// stamp sets the status timestamp for the destination state. Each
// timestamp is set exactly once; a restore does not reset PublishedAt.
func (m *Manager) stamp(article *model.Article, to model.Status, reason string) {
	now := m.now()
	switch to {
	case model.StatusApproved:
		if article.ApprovedAt == nil {
			article.ApprovedAt = &now
		}
	case model.StatusPublished:
		if article.PublishedAt == nil {
			article.PublishedAt = &now
		}
	case model.StatusRejected:
		if article.RejectedAt == nil {
			article.RejectedAt = &now
		}
		article.RejectionReason = reason
	case model.StatusArchived:
		if article.ArchivedAt == nil {
			article.ArchivedAt = &now
		}
	}
}
