package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/smartfinancehub/content-engine/internal/model"
)

// articleRow is the relational shape of an article: the id and status
// are queryable columns, the full record travels as a JSON payload so
// the schema does not chase the Article struct.
type articleRow struct {
	ID        string `gorm:"primaryKey"`
	Status    string `gorm:"index;not null"`
	Payload   []byte `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (articleRow) TableName() string { return "articles" }

// PostgresStore keeps articles in a single table with status as a
// column instead of a directory.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore connects and migrates the articles table.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := db.AutoMigrate(&articleRow{}); err != nil {
		return nil, fmt.Errorf("migrating articles table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*model.Article, error) {
	var row articleRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying article: %w", err)
	}
	return decodeRow(&row)
}

func (s *PostgresStore) List(ctx context.Context, status model.Status) ([]*model.Article, error) {
	var rows []articleRow
	if err := s.db.WithContext(ctx).Where("status = ?", string(status)).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}

	articles := make([]*model.Article, 0, len(rows))
	for i := range rows {
		article, err := decodeRow(&rows[i])
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, nil
}

func (s *PostgresStore) Save(ctx context.Context, article *model.Article) error {
	if !article.Status.Valid() {
		return fmt.Errorf("invalid status %q", article.Status)
	}
	row, err := encodeRow(article)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Save(row).Error
}

// Move is a single transactional status flip; the one-location
// invariant holds because status is a column, not a location.
func (s *PostgresStore) Move(ctx context.Context, id string, from, to model.Status, mutate func(*model.Article) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row articleRow
		err := tx.First(&row, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("querying article: %w", err)
		}
		if row.Status != string(from) {
			return ErrWrongStatus
		}

		article, err := decodeRow(&row)
		if err != nil {
			return err
		}
		if mutate != nil {
			if err := mutate(article); err != nil {
				return err
			}
		}
		article.Status = to

		updated, err := encodeRow(article)
		if err != nil {
			return err
		}
		return tx.Save(updated).Error
	})
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&articleRow{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("deleting article: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func decodeRow(row *articleRow) (*model.Article, error) {
	var article model.Article
	if err := json.Unmarshal(row.Payload, &article); err != nil {
		return nil, fmt.Errorf("unmarshaling article %s: %w", row.ID, err)
	}
	return &article, nil
}

func encodeRow(article *model.Article) (*articleRow, error) {
	payload, err := json.Marshal(article)
	if err != nil {
		return nil, fmt.Errorf("marshaling article %s: %w", article.ID, err)
	}
	return &articleRow{
		ID:      article.ID,
		Status:  string(article.Status),
		Payload: payload,
	}, nil
}
