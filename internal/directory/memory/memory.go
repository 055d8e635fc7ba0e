package memory

import (
	"PressLink-Backend/internal/directory"
	"PressLink-Backend/internal/domain"
	"context"
	"sync"
)

// MemoryDirectory is an in-memory Directory used in tests and local
// development.
type MemoryDirectory struct {
	mu       sync.RWMutex
	articles map[string]*domain.Article
	bySlug   map[string]*domain.Article
}

// New creates a directory seeded with the given articles.
func New(articles ...*domain.Article) *MemoryDirectory {
	d := &MemoryDirectory{
		articles: make(map[string]*domain.Article),
		bySlug:   make(map[string]*domain.Article),
	}
	for _, article := range articles {
		d.Add(article)
	}
	return d
}

// Add registers an article. Test helper, not part of the Directory
// interface.
func (d *MemoryDirectory) Add(article *domain.Article) {
	d.mu.Lock()
	defer d.mu.Unlock()

	copied := *article
	d.articles[article.ID] = &copied
	if article.Slug != "" {
		d.bySlug[article.Slug] = &copied
	}
}

// Get returns the article with the given id or slug.
func (d *MemoryDirectory) Get(_ context.Context, idOrSlug string) (*domain.Article, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if article, ok := d.articles[idOrSlug]; ok {
		copied := *article
		return &copied, nil
	}
	if article, ok := d.bySlug[idOrSlug]; ok {
		copied := *article
		return &copied, nil
	}

	return nil, directory.ErrArticleNotFound
}

// ListPublished returns all published articles.
func (d *MemoryDirectory) ListPublished(_ context.Context) ([]*domain.Article, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	published := make([]*domain.Article, 0, len(d.articles))
	for _, article := range d.articles {
		if article.IsPublished() {
			copied := *article
			published = append(published, &copied)
		}
	}

	return published, nil
}
