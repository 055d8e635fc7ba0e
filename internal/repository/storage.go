package repository

import (
	"PressLink-Backend/internal/domain"
	"context"
	"errors"
)

var (
	ErrLinkNotFound  = errors.New("short link not found")
	ErrShortIDExists = errors.New("short id already exists")
)

// Storage persists short links and their click analytics.
type Storage interface {
	// Link methods
	Create(ctx context.Context, link *domain.ShortLink) error
	FindByShortID(ctx context.Context, shortID string) (*domain.ShortLink, error)
	FindByArticle(ctx context.Context, articleID string) (*domain.ShortLink, error)
	IncrementClicks(ctx context.Context, linkID int64) error
	List(ctx context.Context, offset, limit int) ([]*domain.ShortLink, int64, error)

	// Analytics methods
	RecordClick(ctx context.Context, click *domain.Click) error
	GetClicksByDevice(ctx context.Context, linkID int64) (map[string]int64, error)
}
