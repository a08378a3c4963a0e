package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/smartfinancehub/content-engine/internal/model"
)

// statusDirs maps lifecycle states to their content directories. These
// names are part of the on-disk layout consumed by the site tooling.
var statusDirs = map[model.Status]string{
	model.StatusDraft:     "drafts",
	model.StatusApproved:  "approved",
	model.StatusPublished: "published",
	model.StatusRejected:  "rejected",
	model.StatusArchived:  "archive",
}

// FileStore keeps one JSON file per article under a status directory.
type FileStore struct {
	root string
}

// NewFileStore creates the status directories under root if needed.
func NewFileStore(root string) (*FileStore, error) {
	for _, dir := range statusDirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("creating content directory %s: %w", dir, err)
		}
	}
	return &FileStore{root: root}, nil
}

func (s *FileStore) path(status model.Status, id string) string {
	return filepath.Join(s.root, statusDirs[status], id+".json")
}

func (s *FileStore) Get(ctx context.Context, id string) (*model.Article, error) {
	for _, status := range model.AllStatuses {
		article, err := s.read(s.path(status, id))
		if err == nil {
			return article, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) List(ctx context.Context, status model.Status) ([]*model.Article, error) {
	dir := filepath.Join(s.root, statusDirs[status])
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var articles []*model.Article
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		article, err := s.read(filepath.Join(dir, entry.Name()))
		if err != nil {
			// A corrupt file should not take down the whole listing.
			log.Printf("store: skipping unreadable article file %s: %v", entry.Name(), err)
			continue
		}
		articles = append(articles, article)
	}
	return articles, nil
}

func (s *FileStore) Save(ctx context.Context, article *model.Article) error {
	if !article.Status.Valid() {
		return fmt.Errorf("invalid status %q", article.Status)
	}
	return s.write(s.path(article.Status, article.ID), article)
}

// Move reads from the source status, mutates, writes the destination
// and only then deletes the source. A failed destination write leaves
// the source untouched.
func (s *FileStore) Move(ctx context.Context, id string, from, to model.Status, mutate func(*model.Article) error) error {
	srcPath := s.path(from, id)
	article, err := s.read(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			if _, getErr := s.Get(ctx, id); getErr == nil {
				return ErrWrongStatus
			}
			return ErrNotFound
		}
		return err
	}

	if mutate != nil {
		if err := mutate(article); err != nil {
			return err
		}
	}
	article.Status = to

	if err := s.write(s.path(to, id), article); err != nil {
		return fmt.Errorf("writing destination: %w", err)
	}
	if err := os.Remove(srcPath); err != nil {
		return fmt.Errorf("removing source after move: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	for _, status := range model.AllStatuses {
		path := s.path(status, id)
		if err := os.Remove(path); err == nil {
			return nil
		} else if !os.IsNotExist(err) {
			return err
		}
	}
	return ErrNotFound
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) read(path string) (*model.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var article model.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return nil, fmt.Errorf("unmarshaling %s: %w", path, err)
	}
	return &article, nil
}

func (s *FileStore) write(path string, article *model.Article) error {
	data, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling article %s: %w", article.ID, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
