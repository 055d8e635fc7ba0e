package preview

import (
	"PressLink-Backend/internal/config"
	dirmemory "PressLink-Backend/internal/directory/memory"
	"PressLink-Backend/internal/domain"
	"PressLink-Backend/pkg/encid"
	"PressLink-Backend/pkg/useragent"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	crawlerUA = "facebookexternalhit/1.1"
	humanUA   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"
)

func testSite() *config.Site {
	return &config.Site{
		Name:    "PressLink",
		Tagline: "Breaking news, video and live coverage",
		LogoURL: "http://news.example/images/logo-social.png",
		Locale:  "en_US",
		Author:  "PressLink Newsroom",
		Section: "News",
	}
}

func testLinks() *config.ShortLink {
	return &config.ShortLink{
		CodeLength: 6,
		BaseURL:    "http://sho.rt",
		SiteURL:    "http://news.example",
	}
}

func newRenderer(articles ...*domain.Article) *Renderer {
	return New(dirmemory.New(articles...), useragent.NewCrawlerClassifier(), testSite(), testLinks(), zap.NewNop())
}

func fullArticle() *domain.Article {
	published := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return &domain.Article{
		ID:          "a1",
		Slug:        "council-vote",
		Title:       "Council Votes on Transit Plan",
		Summary:     "The council approved the plan in a late session.",
		ImageURL:    "http://news.example/images/council.jpg",
		PublishedAt: &published,
		Status:      domain.ArticleStatusPublished,
	}
}

func TestForArticleID_CrawlerGetsDocument(t *testing.T) {
	r := newRenderer(fullArticle())

	render, err := r.ForArticleID(context.Background(), "a1", crawlerUA)

	require.NoError(t, err)
	require.Equal(t, RenderHTML, render.Kind)

	html := string(render.HTML)
	assert.Contains(t, html, "<title>Council Votes on Transit Plan</title>")
	assert.Contains(t, html, `<meta property="og:title" content="Council Votes on Transit Plan">`)
	assert.Contains(t, html, `<meta property="og:description" content="The council approved the plan in a late session.">`)
	assert.Contains(t, html, `<meta property="og:image" content="http://news.example/images/council.jpg">`)
	assert.Contains(t, html, `<meta property="og:url" content="http://news.example/article/council-vote">`)
	assert.Contains(t, html, `<meta property="og:type" content="article">`)
	assert.Contains(t, html, `<meta name="twitter:card" content="summary_large_image">`)
	assert.Contains(t, html, `<meta property="article:published_time" content="2026-08-30T12:00:00Z">`)
	assert.Contains(t, html, `http-equiv="refresh"`)
}

func TestForArticleID_HumanGetsRedirect(t *testing.T) {
	r := newRenderer(fullArticle())

	render, err := r.ForArticleID(context.Background(), "a1", humanUA)

	require.NoError(t, err)
	assert.Equal(t, RenderRedirect, render.Kind)
	assert.Equal(t, "http://news.example/article/council-vote", render.Location)
}

func TestForArticleID_BySlug(t *testing.T) {
	r := newRenderer(fullArticle())

	render, err := r.ForArticleID(context.Background(), "council-vote", humanUA)

	require.NoError(t, err)
	assert.Equal(t, RenderRedirect, render.Kind)
}

func TestForArticleID_NotFound(t *testing.T) {
	r := newRenderer()

	render, err := r.ForArticleID(context.Background(), "missing", crawlerUA)

	require.NoError(t, err)
	assert.Equal(t, RenderNotFound, render.Kind)
}

func TestForArticleID_UnpublishedHidden(t *testing.T) {
	draft := fullArticle()
	draft.Status = "draft"
	r := newRenderer(draft)

	render, err := r.ForArticleID(context.Background(), "a1", crawlerUA)

	require.NoError(t, err)
	assert.Equal(t, RenderNotFound, render.Kind)
}

func TestForEncodedID_DecodesBase64(t *testing.T) {
	r := newRenderer(fullArticle())

	render, err := r.ForEncodedID(context.Background(), encid.Encode("a1"), humanUA)

	require.NoError(t, err)
	assert.Equal(t, RenderRedirect, render.Kind)
	assert.Equal(t, "http://news.example/article/council-vote", render.Location)
}

func TestForEncodedID_RawFallback(t *testing.T) {
	article := fullArticle()
	article.ID = "not base64!!"
	article.Slug = "fallback-article"
	r := newRenderer(article)

	render, err := r.ForEncodedID(context.Background(), "not base64!!", humanUA)

	require.NoError(t, err)
	assert.Equal(t, RenderRedirect, render.Kind)
	assert.Equal(t, "http://news.example/article/fallback-article", render.Location)
}

func TestForEncodedID_MissingArticleRedirectsHome(t *testing.T) {
	r := newRenderer()

	render, err := r.ForEncodedID(context.Background(), encid.Encode("missing"), crawlerUA)

	require.NoError(t, err)
	assert.Equal(t, RenderRedirect, render.Kind)
	assert.Equal(t, "http://news.example/", render.Location)
}

func TestFallbackChains(t *testing.T) {
	article := &domain.Article{
		ID:               "a2",
		Slug:             "bare-article",
		TitleLocalized:   "Localized Title",
		SummaryLocalized: "Localized summary.",
		ImageURL:         "/relative/image.jpg",
		Status:           domain.ArticleStatusPublished,
	}
	r := newRenderer(article)

	render, err := r.ForArticleID(context.Background(), "a2", crawlerUA)
	require.NoError(t, err)
	require.Equal(t, RenderHTML, render.Kind)

	html := string(render.HTML)
	// Localized fields win over defaults.
	assert.Contains(t, html, "<title>Localized Title</title>")
	assert.Contains(t, html, `content="Localized summary."`)
	// Relative image falls back to the site logo.
	assert.Contains(t, html, `<meta property="og:image" content="http://news.example/images/logo-social.png">`)
	// No published_time without a publication date.
	assert.NotContains(t, html, "article:published_time")
}

func TestFallbackChains_SiteDefaults(t *testing.T) {
	article := &domain.Article{
		ID:     "a3",
		Slug:   "empty-article",
		Status: domain.ArticleStatusPublished,
	}
	r := newRenderer(article)

	render, err := r.ForArticleID(context.Background(), "a3", crawlerUA)
	require.NoError(t, err)

	html := string(render.HTML)
	assert.Contains(t, html, "<title>PressLink</title>")
	assert.Contains(t, html, `content="Breaking news, video and live coverage"`)
}

func TestDocumentEscapesArticleFields(t *testing.T) {
	article := fullArticle()
	article.Title = `Quotes "and" <tags>`
	r := newRenderer(article)

	render, err := r.ForArticleID(context.Background(), "a1", crawlerUA)
	require.NoError(t, err)

	html := string(render.HTML)
	assert.NotContains(t, html, "<tags>")
	assert.Contains(t, html, "&lt;tags&gt;")
}
