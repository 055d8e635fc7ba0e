// Package directory exposes the publishing platform's article catalog to
// this service. The catalog is owned by the publishing side; every
// implementation here is strictly read-only.
package directory

import (
	"PressLink-Backend/internal/domain"
	"context"
	"errors"
)

var ErrArticleNotFound = errors.New("article not found")

// Directory is the read-only view of the article catalog.
type Directory interface {
	// Get returns the article with the given id or slug, any status.
	Get(ctx context.Context, idOrSlug string) (*domain.Article, error)

	// ListPublished returns all articles visible to readers.
	ListPublished(ctx context.Context) ([]*domain.Article, error)
}
