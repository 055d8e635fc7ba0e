package postgres

import (
	"PressLink-Backend/internal/directory"
	"PressLink-Backend/internal/domain"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostgresDirectory reads the articles table maintained by the publishing
// platform. It never writes.
type PostgresDirectory struct {
	db  *gorm.DB
	log *zap.Logger
}

// New creates a new PostgreSQL directory instance.
func New(db *gorm.DB, log *zap.Logger) *PostgresDirectory {
	return &PostgresDirectory{
		db:  db,
		log: log,
	}
}

// Get returns the article with the given id or slug.
func (d *PostgresDirectory) Get(ctx context.Context, idOrSlug string) (*domain.Article, error) {
	var article domain.Article

	err := d.db.WithContext(ctx).
		Where("id = ? OR slug = ?", idOrSlug, idOrSlug).
		First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, directory.ErrArticleNotFound
	}
	if err != nil {
		d.log.Error("failed to get article", zap.String("id_or_slug", idOrSlug), zap.Error(err))
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return &article, nil
}

// ListPublished returns all published articles, newest first.
func (d *PostgresDirectory) ListPublished(ctx context.Context) ([]*domain.Article, error) {
	var articles []*domain.Article

	err := d.db.WithContext(ctx).
		Where("status = ?", domain.ArticleStatusPublished).
		Order("published_at DESC").
		Find(&articles).Error
	if err != nil {
		d.log.Error("failed to list published articles", zap.Error(err))
		return nil, fmt.Errorf("failed to list published articles: %w", err)
	}

	return articles, nil
}
