package service

import (
	"PressLink-Backend/internal/config"
	dirmemory "PressLink-Backend/internal/directory/memory"
	"PressLink-Backend/internal/domain"
	"PressLink-Backend/internal/repository"
	"PressLink-Backend/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockStorage is a testify mock for the repository Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Create(ctx context.Context, link *domain.ShortLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockStorage) FindByShortID(ctx context.Context, shortID string) (*domain.ShortLink, error) {
	args := m.Called(ctx, shortID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortLink), args.Error(1)
}

func (m *MockStorage) FindByArticle(ctx context.Context, articleID string) (*domain.ShortLink, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortLink), args.Error(1)
}

func (m *MockStorage) IncrementClicks(ctx context.Context, linkID int64) error {
	args := m.Called(ctx, linkID)
	return args.Error(0)
}

func (m *MockStorage) List(ctx context.Context, offset, limit int) ([]*domain.ShortLink, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.ShortLink), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) RecordClick(ctx context.Context, click *domain.Click) error {
	args := m.Called(ctx, click)
	return args.Error(0)
}

func (m *MockStorage) GetClicksByDevice(ctx context.Context, linkID int64) (map[string]int64, error) {
	args := m.Called(ctx, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// stubGenerator returns a fixed sequence of codes.
type stubGenerator struct {
	codes []string
	calls int
}

func (g *stubGenerator) Generate() (string, error) {
	code := g.codes[g.calls%len(g.codes)]
	g.calls++
	return code, nil
}

func testConfig() *config.ShortLink {
	return &config.ShortLink{
		CodeLength:  6,
		MaxAttempts: 10,
		BaseURL:     "http://sho.rt",
		SiteURL:     "http://news.example",
	}
}

func publishedArticle(id, slug string) *domain.Article {
	now := time.Now()
	return &domain.Article{
		ID:          id,
		Slug:        slug,
		Title:       "Test Article",
		PublishedAt: &now,
		Status:      domain.ArticleStatusPublished,
	}
}

func TestCreateForArticle_NewAndIdempotent(t *testing.T) {
	storage := memory.New()
	dir := dirmemory.New(publishedArticle("a1", "test-article"))
	gen := &stubGenerator{codes: []string{"abc123"}}
	svc := NewShortLink(storage, dir, gen, nil, testConfig(), zap.NewNop())
	ctx := context.Background()

	link, article, created, err := svc.CreateForArticle(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "abc123", link.ShortID)
	assert.Equal(t, "a1", article.ID)

	// Repeating the call returns the same link without minting another.
	again, _, created, err := svc.CreateForArticle(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, link.ShortID, again.ShortID)
	assert.Equal(t, 1, gen.calls)
}

func TestCreateForArticle_BySlug(t *testing.T) {
	storage := memory.New()
	dir := dirmemory.New(publishedArticle("a1", "test-article"))
	svc := NewShortLink(storage, dir, &stubGenerator{codes: []string{"abc123"}}, nil, testConfig(), zap.NewNop())

	link, _, created, err := svc.CreateForArticle(context.Background(), "test-article")

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "a1", link.ArticleID)
}

func TestCreateForArticle_UnknownArticle(t *testing.T) {
	svc := NewShortLink(memory.New(), dirmemory.New(), &stubGenerator{codes: []string{"abc123"}}, nil, testConfig(), zap.NewNop())

	_, _, _, err := svc.CreateForArticle(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestCreateForArticle_RetriesOnCollision(t *testing.T) {
	storage := memory.New()
	require.NoError(t, storage.Create(context.Background(), &domain.ShortLink{ShortID: "abc123", ArticleID: "other"}))

	dir := dirmemory.New(publishedArticle("a1", "test-article"))
	gen := &stubGenerator{codes: []string{"abc123", "abc123", "def456"}}
	svc := NewShortLink(storage, dir, gen, nil, testConfig(), zap.NewNop())

	link, _, created, err := svc.CreateForArticle(context.Background(), "a1")

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "def456", link.ShortID)
	assert.Equal(t, 3, gen.calls)
}

func TestCreateForArticle_GenerationExhausted(t *testing.T) {
	ctx := context.Background()
	storage := new(MockStorage)
	storage.On("FindByArticle", mock.Anything, "a1").Return(nil, repository.ErrLinkNotFound)
	storage.On("Create", mock.Anything, mock.Anything).Return(repository.ErrShortIDExists)

	dir := dirmemory.New(publishedArticle("a1", "test-article"))
	gen := &stubGenerator{codes: []string{"abc123"}}
	svc := NewShortLink(storage, dir, gen, nil, testConfig(), zap.NewNop())

	_, _, _, err := svc.CreateForArticle(ctx, "a1")

	assert.ErrorIs(t, err, ErrGenerationExhausted)
	assert.Equal(t, 10, gen.calls)
	storage.AssertNumberOfCalls(t, "Create", 10)
}

func TestResolve(t *testing.T) {
	storage := memory.New()
	dir := dirmemory.New(publishedArticle("a1", "test-article"))
	svc := NewShortLink(storage, dir, &stubGenerator{codes: []string{"abc123"}}, nil, testConfig(), zap.NewNop())
	ctx := context.Background()

	_, _, _, err := svc.CreateForArticle(ctx, "a1")
	require.NoError(t, err)

	link, destination, err := svc.Resolve(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "http://news.example/article/test-article", destination)
	assert.Equal(t, "abc123", link.ShortID)

	// Each resolution counts exactly one click.
	_, _, err = svc.Resolve(ctx, "abc123")
	require.NoError(t, err)

	found, err := storage.FindByShortID(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.Clicks)
}

func TestResolve_InvalidShortID(t *testing.T) {
	svc := NewShortLink(memory.New(), dirmemory.New(), &stubGenerator{codes: []string{"abc123"}}, nil, testConfig(), zap.NewNop())

	tests := []string{"", "abc12", "abc1234"}
	for _, shortID := range tests {
		_, _, err := svc.Resolve(context.Background(), shortID)
		assert.ErrorIs(t, err, ErrInvalidShortID, "short id %q", shortID)
	}
}

func TestResolve_NotFound(t *testing.T) {
	svc := NewShortLink(memory.New(), dirmemory.New(), &stubGenerator{codes: []string{"abc123"}}, nil, testConfig(), zap.NewNop())

	_, _, err := svc.Resolve(context.Background(), "zzzzzz")

	assert.ErrorIs(t, err, repository.ErrLinkNotFound)
}

func TestResolve_FallsBackToArticleID(t *testing.T) {
	storage := memory.New()
	article := publishedArticle("a1", "")
	dir := dirmemory.New(article)
	svc := NewShortLink(storage, dir, &stubGenerator{codes: []string{"abc123"}}, nil, testConfig(), zap.NewNop())
	ctx := context.Background()

	_, _, _, err := svc.CreateForArticle(ctx, "a1")
	require.NoError(t, err)

	_, destination, err := svc.Resolve(ctx, "abc123")

	require.NoError(t, err)
	assert.Equal(t, "http://news.example/article/a1", destination)
}

func TestGenerateAllMissing(t *testing.T) {
	storage := memory.New()
	dir := dirmemory.New(
		publishedArticle("a1", "first"),
		publishedArticle("a2", "second"),
		publishedArticle("a3", "third"),
		&domain.Article{ID: "d1", Slug: "draft", Status: "draft"},
	)
	gen := &stubGenerator{codes: []string{"aaa111", "bbb222", "ccc333"}}
	svc := NewShortLink(storage, dir, gen, nil, testConfig(), zap.NewNop())
	ctx := context.Background()

	// a2 already has a link; the run must skip it.
	require.NoError(t, storage.Create(ctx, &domain.ShortLink{ShortID: "xyz789", ArticleID: "a2"}))

	summary, err := svc.GenerateAllMissing(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 0, summary.Errors)
	assert.Len(t, summary.Results, 2)

	// Rerunning creates nothing further.
	summary, err = svc.GenerateAllMissing(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Created)
	assert.Equal(t, 0, summary.Errors)
}

func TestGenerateAllMissing_CollectsFailures(t *testing.T) {
	ctx := context.Background()
	storage := new(MockStorage)
	storage.On("FindByArticle", mock.Anything, mock.Anything).Return(nil, repository.ErrLinkNotFound)
	storage.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.ShortLink) bool {
		return l.ArticleID == "a1"
	})).Return(repository.ErrShortIDExists)
	storage.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.ShortLink) bool {
		return l.ArticleID != "a1"
	})).Return(nil)

	dir := dirmemory.New(publishedArticle("a1", "first"), publishedArticle("a2", "second"))
	svc := NewShortLink(storage, dir, &stubGenerator{codes: []string{"abc123"}}, nil, testConfig(), zap.NewNop())

	summary, err := svc.GenerateAllMissing(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Errors)
}
