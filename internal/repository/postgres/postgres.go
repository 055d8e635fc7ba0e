package postgres

import (
	"PressLink-Backend/internal/domain"
	"PressLink-Backend/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostgresStorage implements the Storage interface on PostgreSQL.
type PostgresStorage struct {
	db  *gorm.DB
	log *zap.Logger
}

// New creates a new PostgreSQL storage instance.
func New(db *gorm.DB, log *zap.Logger) *PostgresStorage {
	return &PostgresStorage{
		db:  db,
		log: log,
	}
}

// --- Link Methods ---

// Create inserts a new short link. There is no pre-check: the unique index
// on short_id is the collision signal, translated by the driver into
// gorm.ErrDuplicatedKey and surfaced as ErrShortIDExists.
func (s *PostgresStorage) Create(ctx context.Context, link *domain.ShortLink) error {
	err := s.db.WithContext(ctx).Create(link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrShortIDExists
		}
		s.log.Error("failed to create short link",
			zap.String("short_id", link.ShortID),
			zap.String("article_id", link.ArticleID),
			zap.Error(err))
		return fmt.Errorf("failed to create short link: %w", err)
	}

	s.log.Info("created short link",
		zap.String("short_id", link.ShortID),
		zap.String("article_id", link.ArticleID))
	return nil
}

// FindByShortID returns the link with the given short id.
func (s *PostgresStorage) FindByShortID(ctx context.Context, shortID string) (*domain.ShortLink, error) {
	var link domain.ShortLink

	err := s.db.WithContext(ctx).Where("short_id = ?", shortID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrLinkNotFound
	}
	if err != nil {
		s.log.Error("failed to find short link", zap.String("short_id", shortID), zap.Error(err))
		return nil, fmt.Errorf("failed to find short link: %w", err)
	}

	return &link, nil
}

// FindByArticle returns the link minted for the given article, if any.
func (s *PostgresStorage) FindByArticle(ctx context.Context, articleID string) (*domain.ShortLink, error) {
	var link domain.ShortLink

	err := s.db.WithContext(ctx).Where("article_id = ?", articleID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrLinkNotFound
	}
	if err != nil {
		s.log.Error("failed to find link by article", zap.String("article_id", articleID), zap.Error(err))
		return nil, fmt.Errorf("failed to find link by article: %w", err)
	}

	return &link, nil
}

// IncrementClicks bumps the click counter with a single SQL expression so
// concurrent resolutions never lose an increment.
func (s *PostgresStorage) IncrementClicks(ctx context.Context, linkID int64) error {
	result := s.db.WithContext(ctx).
		Model(&domain.ShortLink{}).
		Where("id = ?", linkID).
		Update("clicks", gorm.Expr("clicks + 1"))

	if result.Error != nil {
		s.log.Error("failed to increment clicks", zap.Int64("link_id", linkID), zap.Error(result.Error))
		return fmt.Errorf("failed to increment clicks: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrLinkNotFound
	}

	return nil
}

// List returns a page of links ordered newest first, with the total count.
func (s *PostgresStorage) List(ctx context.Context, offset, limit int) ([]*domain.ShortLink, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.ShortLink{}).Count(&total).Error; err != nil {
		s.log.Error("failed to count short links", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count short links: %w", err)
	}

	var links []*domain.ShortLink
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&links).Error
	if err != nil {
		s.log.Error("failed to list short links", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list short links: %w", err)
	}

	return links, total, nil
}

// --- Analytics Methods ---

// RecordClick saves a detailed click row.
func (s *PostgresStorage) RecordClick(ctx context.Context, click *domain.Click) error {
	if err := s.db.WithContext(ctx).Create(click).Error; err != nil {
		s.log.Error("failed to record click", zap.Int64("link_id", click.LinkID), zap.Error(err))
		return fmt.Errorf("failed to record click: %w", err)
	}

	return nil
}

// GetClicksByDevice aggregates recorded clicks per device type.
func (s *PostgresStorage) GetClicksByDevice(ctx context.Context, linkID int64) (map[string]int64, error) {
	type deviceCount struct {
		DeviceType string
		Count      int64
	}

	var rows []deviceCount
	err := s.db.WithContext(ctx).
		Model(&domain.Click{}).
		Select("COALESCE(device_type, 'unknown') AS device_type, COUNT(*) AS count").
		Where("link_id = ?", linkID).
		Group("device_type").
		Scan(&rows).Error
	if err != nil {
		s.log.Error("failed to aggregate clicks by device", zap.Int64("link_id", linkID), zap.Error(err))
		return nil, fmt.Errorf("failed to aggregate clicks by device: %w", err)
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.DeviceType] = row.Count
	}

	return result, nil
}
