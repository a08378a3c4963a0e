package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/smartfinancehub/content-engine/internal/model"
)

// GCSStore keeps one JSON object per article under
// articles/<status>/<id>.json in a Cloud Storage bucket.
type GCSStore struct {
	client     *storage.Client
	bucketName string
	prefix     string
}

// NewGCSStore creates a Cloud Storage backed article store.
func NewGCSStore(ctx context.Context, bucketName string) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &GCSStore{
		client:     client,
		bucketName: bucketName,
		prefix:     "articles/",
	}, nil
}

func (s *GCSStore) objectName(status model.Status, id string) string {
	return s.prefix + string(status) + "/" + id + ".json"
}

func (s *GCSStore) Get(ctx context.Context, id string) (*model.Article, error) {
	for _, status := range model.AllStatuses {
		article, err := s.read(ctx, s.objectName(status, id))
		if err == nil {
			return article, nil
		}
		if err != storage.ErrObjectNotExist {
			return nil, err
		}
	}
	return nil, ErrNotFound
}

func (s *GCSStore) List(ctx context.Context, status model.Status) ([]*model.Article, error) {
	prefix := s.prefix + string(status) + "/"
	it := s.client.Bucket(s.bucketName).Objects(ctx, &storage.Query{Prefix: prefix})

	var articles []*model.Article
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing objects: %w", err)
		}
		if !strings.HasSuffix(attrs.Name, ".json") {
			continue
		}
		article, err := s.read(ctx, attrs.Name)
		if err != nil {
			return nil, fmt.Errorf("reading object %s: %w", attrs.Name, err)
		}
		articles = append(articles, article)
	}
	return articles, nil
}

func (s *GCSStore) Save(ctx context.Context, article *model.Article) error {
	if !article.Status.Valid() {
		return fmt.Errorf("invalid status %q", article.Status)
	}
	return s.write(ctx, s.objectName(article.Status, article.ID), article)
}

// Move writes the destination object before deleting the source one, so
// a failed write never loses the article.
func (s *GCSStore) Move(ctx context.Context, id string, from, to model.Status, mutate func(*model.Article) error) error {
	srcName := s.objectName(from, id)
	article, err := s.read(ctx, srcName)
	if err != nil {
		if err == storage.ErrObjectNotExist {
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

	if err := s.write(ctx, s.objectName(to, id), article); err != nil {
		return fmt.Errorf("writing destination object: %w", err)
	}
	if err := s.client.Bucket(s.bucketName).Object(srcName).Delete(ctx); err != nil {
		return fmt.Errorf("deleting source object after move: %w", err)
	}
	return nil
}

func (s *GCSStore) Delete(ctx context.Context, id string) error {
	for _, status := range model.AllStatuses {
		err := s.client.Bucket(s.bucketName).Object(s.objectName(status, id)).Delete(ctx)
		if err == nil {
			return nil
		}
		if err != storage.ErrObjectNotExist {
			return fmt.Errorf("deleting object: %w", err)
		}
	}
	return ErrNotFound
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}

func (s *GCSStore) read(ctx context.Context, name string) (*model.Article, error) {
	reader, err := s.client.Bucket(s.bucketName).Object(name).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading object data: %w", err)
	}

	var article model.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return nil, fmt.Errorf("unmarshaling article object: %w", err)
	}
	return &article, nil
}

func (s *GCSStore) write(ctx context.Context, name string, article *model.Article) error {
	data, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("marshaling article: %w", err)
	}

	writer := s.client.Bucket(s.bucketName).Object(name).NewWriter(ctx)
	writer.ContentType = "application/json"
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("writing object: %w", err)
	}
	return writer.Close()
}
