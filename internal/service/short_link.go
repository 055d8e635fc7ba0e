package service

import (
	"PressLink-Backend/internal/cache"
	"PressLink-Backend/internal/config"
	"PressLink-Backend/internal/directory"
	"PressLink-Backend/internal/domain"
	"PressLink-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrGenerationExhausted = errors.New("short id generation exhausted")
	ErrArticleNotFound     = errors.New("article not found")
	ErrInvalidShortID      = errors.New("invalid short id")
)

// CodeGenerator produces candidate short ids.
type CodeGenerator interface {
	Generate() (string, error)
}

// ShortLinkService mints, resolves and backfills short links for articles.
type ShortLinkService struct {
	storage   repository.Storage
	directory directory.Directory
	generator CodeGenerator
	cache     *cache.LinkCache
	cfg       *config.ShortLink
	log       *zap.Logger
}

// NewShortLink creates the short-link service. cache may be nil.
func NewShortLink(
	storage repository.Storage,
	dir directory.Directory,
	generator CodeGenerator,
	linkCache *cache.LinkCache,
	cfg *config.ShortLink,
	log *zap.Logger,
) *ShortLinkService {
	return &ShortLinkService{
		storage:   storage,
		directory: dir,
		generator: generator,
		cache:     linkCache,
		cfg:       cfg,
		log:       log,
	}
}

// CreateForArticle returns the existing link for an article or mints a new
// one. The bool result reports whether a new record was created, so one
// link per article holds no matter how often the operation repeats.
func (s *ShortLinkService) CreateForArticle(ctx context.Context, articleID string) (*domain.ShortLink, *domain.Article, bool, error) {
	article, err := s.directory.Get(ctx, articleID)
	if err != nil {
		if errors.Is(err, directory.ErrArticleNotFound) {
			return nil, nil, false, ErrArticleNotFound
		}
		return nil, nil, false, fmt.Errorf("failed to look up article: %w", err)
	}

	existing, err := s.storage.FindByArticle(ctx, article.ID)
	if err == nil {
		return existing, article, false, nil
	}
	if !errors.Is(err, repository.ErrLinkNotFound) {
		return nil, nil, false, fmt.Errorf("failed to look up existing link: %w", err)
	}

	link, err := s.createWithRetry(ctx, article.ID)
	if err != nil {
		return nil, nil, false, err
	}

	return link, article, true, nil
}

// createWithRetry generates a candidate id and attempts the insert, relying
// on the storage unique constraint as the only collision signal. Capped
// attempts turn a saturated id space into ErrGenerationExhausted instead of
// an unbounded loop.
func (s *ShortLinkService) createWithRetry(ctx context.Context, articleID string) (*domain.ShortLink, error) {
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		shortID, err := s.generator.Generate()
		if err != nil {
			return nil, fmt.Errorf("failed to generate short id: %w", err)
		}

		link := &domain.ShortLink{
			ShortID:   shortID,
			ArticleID: articleID,
		}

		err = s.storage.Create(ctx, link)
		if err == nil {
			return link, nil
		}
		if errors.Is(err, repository.ErrShortIDExists) {
			s.log.Warn("short id collision, retrying",
				zap.String("short_id", shortID),
				zap.String("article_id", articleID),
				zap.Int("attempt", attempt))
			continue
		}
		return nil, fmt.Errorf("failed to create short link: %w", err)
	}

	s.log.Error("exhausted short id generation attempts",
		zap.String("article_id", articleID),
		zap.Int("max_attempts", s.cfg.MaxAttempts))
	return nil, ErrGenerationExhausted
}

// Resolve validates a short id, looks it up, counts the click and returns
// the link with its canonical destination URL.
func (s *ShortLinkService) Resolve(ctx context.Context, shortID string) (*domain.ShortLink, string, error) {
	if len(shortID) != s.cfg.CodeLength {
		return nil, "", ErrInvalidShortID
	}

	link, cached := s.cache.Get(ctx, shortID)
	if !cached {
		var err error
		link, err = s.storage.FindByShortID(ctx, shortID)
		if err != nil {
			if errors.Is(err, repository.ErrLinkNotFound) {
				return nil, "", repository.ErrLinkNotFound
			}
			return nil, "", fmt.Errorf("failed to resolve short link: %w", err)
		}
		s.cache.Set(ctx, link)
	}

	article, err := s.directory.Get(ctx, link.ArticleID)
	if err != nil {
		if errors.Is(err, directory.ErrArticleNotFound) {
			// The article left the catalog after the link was minted.
			return nil, "", repository.ErrLinkNotFound
		}
		return nil, "", fmt.Errorf("failed to look up article for link: %w", err)
	}

	// The counter must not lose increments, but a counting failure must
	// not cost the reader their redirect.
	if err := s.storage.IncrementClicks(ctx, link.ID); err != nil {
		s.log.Warn("failed to increment clicks", zap.String("short_id", shortID), zap.Error(err))
	}

	return link, s.CanonicalURL(article), nil
}

// Stats returns the link and its article for the analytics endpoint.
func (s *ShortLinkService) Stats(ctx context.Context, shortID string) (*domain.ShortLink, *domain.Article, error) {
	link, err := s.storage.FindByShortID(ctx, shortID)
	if err != nil {
		return nil, nil, err
	}

	article, err := s.directory.Get(ctx, link.ArticleID)
	if err != nil {
		if errors.Is(err, directory.ErrArticleNotFound) {
			return link, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to look up article for link: %w", err)
	}

	return link, article, nil
}

// BackfillItem reports one article's outcome in a bulk generation run.
type BackfillItem struct {
	ArticleID string `json:"article_id"`
	Slug      string `json:"slug,omitempty"`
	ShortID   string `json:"short_id,omitempty"`
	ShortURL  string `json:"short_url,omitempty"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// BackfillSummary aggregates a bulk generation run.
type BackfillSummary struct {
	Created int            `json:"created"`
	Errors  int            `json:"errors"`
	Total   int            `json:"total"`
	Results []BackfillItem `json:"results"`
}

// GenerateAllMissing mints links for every published article that has
// none. Articles that already have a link are skipped, so reruns are
// harmless. Per-article failures are collected and never abort the batch.
func (s *ShortLinkService) GenerateAllMissing(ctx context.Context) (*BackfillSummary, error) {
	articles, err := s.directory.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list published articles: %w", err)
	}

	summary := &BackfillSummary{
		Total:   len(articles),
		Results: make([]BackfillItem, 0, len(articles)),
	}

	for _, article := range articles {
		_, err := s.storage.FindByArticle(ctx, article.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrLinkNotFound) {
			summary.Errors++
			summary.Results = append(summary.Results, BackfillItem{
				ArticleID: article.ID,
				Slug:      article.Slug,
				Status:    "failed",
				Error:     err.Error(),
			})
			continue
		}

		link, err := s.createWithRetry(ctx, article.ID)
		if err != nil {
			summary.Errors++
			summary.Results = append(summary.Results, BackfillItem{
				ArticleID: article.ID,
				Slug:      article.Slug,
				Status:    "failed",
				Error:     err.Error(),
			})
			continue
		}

		summary.Created++
		summary.Results = append(summary.Results, BackfillItem{
			ArticleID: article.ID,
			Slug:      article.Slug,
			ShortID:   link.ShortID,
			ShortURL:  s.ShortURL(link.ShortID),
			Status:    "created",
		})
	}

	s.log.Info("bulk link generation finished",
		zap.Int("total", summary.Total),
		zap.Int("created", summary.Created),
		zap.Int("errors", summary.Errors))

	return summary, nil
}

// CanonicalURL builds the public article URL, preferring the slug.
func (s *ShortLinkService) CanonicalURL(article *domain.Article) string {
	slug := article.Slug
	if slug == "" {
		slug = article.ID
	}
	return strings.TrimRight(s.cfg.SiteURL, "/") + "/article/" + slug
}

// ShortURL builds the public short URL for a short id.
func (s *ShortLinkService) ShortURL(shortID string) string {
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/" + shortID
}
