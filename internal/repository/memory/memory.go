package memory

import (
	"PressLink-Backend/internal/domain"
	"PressLink-Backend/internal/repository"
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStorage is an in-memory Storage implementation used in tests and
// local development. It mirrors the PostgreSQL semantics, including the
// unique short_id constraint.
type MemoryStorage struct {
	mu        sync.RWMutex
	nextID    int64
	byShortID map[string]*domain.ShortLink
	byArticle map[string]*domain.ShortLink
	clicks    []*domain.Click
}

// New creates an empty in-memory storage.
func New() *MemoryStorage {
	return &MemoryStorage{
		nextID:    1,
		byShortID: make(map[string]*domain.ShortLink),
		byArticle: make(map[string]*domain.ShortLink),
	}
}

// Create inserts a new short link, enforcing short_id uniqueness the way
// the database unique index does.
func (s *MemoryStorage) Create(_ context.Context, link *domain.ShortLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byShortID[link.ShortID]; exists {
		return repository.ErrShortIDExists
	}

	now := time.Now()
	link.ID = s.nextID
	s.nextID++
	link.CreatedAt = now
	link.UpdatedAt = now

	stored := *link
	s.byShortID[link.ShortID] = &stored
	s.byArticle[link.ArticleID] = &stored

	return nil
}

// FindByShortID returns the link with the given short id.
func (s *MemoryStorage) FindByShortID(_ context.Context, shortID string) (*domain.ShortLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.byShortID[shortID]
	if !ok {
		return nil, repository.ErrLinkNotFound
	}

	copied := *link
	return &copied, nil
}

// FindByArticle returns the link minted for the given article, if any.
func (s *MemoryStorage) FindByArticle(_ context.Context, articleID string) (*domain.ShortLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.byArticle[articleID]
	if !ok {
		return nil, repository.ErrLinkNotFound
	}

	copied := *link
	return &copied, nil
}

// IncrementClicks bumps the click counter under the storage lock, so
// concurrent increments never lose updates.
func (s *MemoryStorage) IncrementClicks(_ context.Context, linkID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, link := range s.byShortID {
		if link.ID == linkID {
			link.Clicks++
			link.UpdatedAt = time.Now()
			return nil
		}
	}

	return repository.ErrLinkNotFound
}

// List returns a page of links ordered newest first, with the total count.
func (s *MemoryStorage) List(_ context.Context, offset, limit int) ([]*domain.ShortLink, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*domain.ShortLink, 0, len(s.byShortID))
	for _, link := range s.byShortID {
		copied := *link
		all = append(all, &copied)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	if offset >= len(all) {
		return []*domain.ShortLink{}, total, nil
	}

	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	return all[offset:end], total, nil
}

// RecordClick saves a detailed click row.
func (s *MemoryStorage) RecordClick(_ context.Context, click *domain.Click) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *click
	stored.ID = int64(len(s.clicks) + 1)
	if stored.ClickedAt.IsZero() {
		stored.ClickedAt = time.Now()
	}
	s.clicks = append(s.clicks, &stored)

	return nil
}

// GetClicksByDevice aggregates recorded clicks per device type.
func (s *MemoryStorage) GetClicksByDevice(_ context.Context, linkID int64) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]int64)
	for _, click := range s.clicks {
		if click.LinkID == linkID {
			result[click.GetDeviceType()]++
		}
	}

	return result, nil
}
