package store

import (
	"context"
	"errors"

	"github.com/smartfinancehub/content-engine/internal/model"
)

// ErrNotFound is returned when no status location holds the article.
var ErrNotFound = errors.New("article not found")

// ErrWrongStatus is returned when an article exists but not in the
// status a Move expected it in.
var ErrWrongStatus = errors.New("article not in expected status")

// Store is the article repository. Implementations keep each article id
// in exactly one status location at a time; Move must leave the source
// intact if writing the destination fails.
type Store interface {
	// Get finds an article by id across all status locations.
	Get(ctx context.Context, id string) (*model.Article, error)

	// List returns all articles currently in the given status.
	List(ctx context.Context, status model.Status) ([]*model.Article, error)

	// Save writes the article into its Status location.
	Save(ctx context.Context, article *model.Article) error

	// Move relocates an article between statuses, applying mutate to the
	// record in between. The destination write happens before the source
	// delete.
	Move(ctx context.Context, id string, from, to model.Status, mutate func(*model.Article) error) error

	// Delete removes the article from whichever status holds it.
	Delete(ctx context.Context, id string) error

	Close() error
}
