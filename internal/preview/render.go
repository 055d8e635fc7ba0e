// Package preview renders social-preview responses for share URLs.
// Crawlers get a metadata document, people get a redirect to the article.
package preview

import (
	"PressLink-Backend/internal/config"
	"PressLink-Backend/internal/directory"
	"PressLink-Backend/internal/domain"
	"PressLink-Backend/pkg/encid"
	"PressLink-Backend/pkg/useragent"
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RenderKind tags the outcome of a preview request.
type RenderKind int

const (
	// RenderHTML carries a full document for an automated client.
	RenderHTML RenderKind = iota
	// RenderRedirect carries a Location for a person.
	RenderRedirect
	// RenderNotFound means the requested article does not exist or is not
	// published.
	RenderNotFound
)

// Render is the outcome of a preview request. Exactly one of HTML or
// Location is meaningful, selected by Kind.
type Render struct {
	Kind     RenderKind
	HTML     []byte
	Location string
}

// Renderer builds preview responses from the article directory.
type Renderer struct {
	directory  directory.Directory
	classifier useragent.Classifier
	site       *config.Site
	links      *config.ShortLink
	tmpl       *template.Template
	log        *zap.Logger
}

// New creates a renderer. Panics if the embedded template does not parse,
// which only happens on a programming error.
func New(
	dir directory.Directory,
	classifier useragent.Classifier,
	site *config.Site,
	links *config.ShortLink,
	log *zap.Logger,
) *Renderer {
	return &Renderer{
		directory:  dir,
		classifier: classifier,
		site:       site,
		links:      links,
		tmpl:       template.Must(template.New("preview").Parse(previewTemplate)),
		log:        log,
	}
}

// ForArticleID serves preview requests addressed by canonical article id
// or slug. A dead id is a real error, reported as not found.
func (r *Renderer) ForArticleID(ctx context.Context, idOrSlug, userAgent string) (Render, error) {
	article, err := r.lookup(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, directory.ErrArticleNotFound) {
			return Render{Kind: RenderNotFound}, nil
		}
		return Render{}, err
	}

	return r.render(article, userAgent)
}

// ForEncodedID serves share URLs carrying a reversible encoded article id.
// Undecodable values fall back to the raw input; a missing article soft
// lands on the site home page instead of an error.
func (r *Renderer) ForEncodedID(ctx context.Context, encoded, userAgent string) (Render, error) {
	articleID := encid.Decode(encoded)

	article, err := r.lookup(ctx, articleID)
	if err != nil {
		if errors.Is(err, directory.ErrArticleNotFound) {
			r.log.Debug("encoded id did not resolve, redirecting home",
				zap.String("encoded", encoded),
				zap.String("decoded", articleID))
			return Render{Kind: RenderRedirect, Location: r.homeURL()}, nil
		}
		return Render{}, err
	}

	return r.render(article, userAgent)
}

// lookup fetches an article and hides unpublished ones.
func (r *Renderer) lookup(ctx context.Context, idOrSlug string) (*domain.Article, error) {
	article, err := r.directory.Get(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	if !article.IsPublished() {
		return nil, directory.ErrArticleNotFound
	}
	return article, nil
}

func (r *Renderer) render(article *domain.Article, userAgent string) (Render, error) {
	canonical := r.canonicalURL(article)

	if !r.classifier.IsAutomatedClient(userAgent) {
		return Render{Kind: RenderRedirect, Location: canonical}, nil
	}

	doc, err := r.buildDocument(article, canonical)
	if err != nil {
		return Render{}, err
	}

	return Render{Kind: RenderHTML, HTML: doc}, nil
}

// previewData is the template context for a crawler document.
type previewData struct {
	Title        string
	Description  string
	Image        string
	CanonicalURL string
	SiteName     string
	Locale       string
	Author       string
	Section      string
	PublishedAt  string
}

func (r *Renderer) buildDocument(article *domain.Article, canonical string) ([]byte, error) {
	data := previewData{
		Title:        r.title(article),
		Description:  r.description(article),
		Image:        r.image(article),
		CanonicalURL: canonical,
		SiteName:     r.site.Name,
		Locale:       r.site.Locale,
		Author:       r.site.Author,
		Section:      r.site.Section,
	}
	if article.PublishedAt != nil {
		data.PublishedAt = article.PublishedAt.Format(time.RFC3339)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render preview document: %w", err)
	}

	return buf.Bytes(), nil
}

// title prefers the localized title, then the default, then the site name.
func (r *Renderer) title(article *domain.Article) string {
	if article.TitleLocalized != "" {
		return article.TitleLocalized
	}
	if article.Title != "" {
		return article.Title
	}
	return r.site.Name
}

// description prefers the localized summary, then the default, then the
// site tagline.
func (r *Renderer) description(article *domain.Article) string {
	if article.SummaryLocalized != "" {
		return article.SummaryLocalized
	}
	if article.Summary != "" {
		return article.Summary
	}
	return r.site.Tagline
}

// image requires an absolute URL; anything else falls back to the site
// logo so cards never render with a broken image.
func (r *Renderer) image(article *domain.Article) string {
	if strings.HasPrefix(article.ImageURL, "http://") || strings.HasPrefix(article.ImageURL, "https://") {
		return article.ImageURL
	}
	return r.site.LogoURL
}

func (r *Renderer) canonicalURL(article *domain.Article) string {
	slug := article.Slug
	if slug == "" {
		slug = article.ID
	}
	return strings.TrimRight(r.links.SiteURL, "/") + "/article/" + slug
}

func (r *Renderer) homeURL() string {
	return strings.TrimRight(r.links.SiteURL, "/") + "/"
}

// NotFoundHTML is the body served for preview requests addressing a
// missing or unpublished article.
func (r *Renderer) NotFoundHTML() []byte {
	return []byte(fmt.Sprintf(notFoundTemplate, template.HTMLEscapeString(r.site.Name), template.HTMLEscapeString(r.homeURL())))
}

const previewTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="description" content="{{.Description}}">
<meta property="og:type" content="article">
<meta property="og:title" content="{{.Title}}">
<meta property="og:description" content="{{.Description}}">
<meta property="og:image" content="{{.Image}}">
<meta property="og:image:width" content="1200">
<meta property="og:image:height" content="630">
<meta property="og:image:type" content="image/jpeg">
<meta property="og:url" content="{{.CanonicalURL}}">
<meta property="og:site_name" content="{{.SiteName}}">
<meta property="og:locale" content="{{.Locale}}">
<meta name="twitter:card" content="summary_large_image">
<meta name="twitter:title" content="{{.Title}}">
<meta name="twitter:description" content="{{.Description}}">
<meta name="twitter:image" content="{{.Image}}">
{{- if .PublishedAt}}
<meta property="article:published_time" content="{{.PublishedAt}}">
{{- end}}
<meta property="article:author" content="{{.Author}}">
<meta property="article:section" content="{{.Section}}">
<meta http-equiv="refresh" content="0;url={{.CanonicalURL}}">
</head>
<body>
<p>Redirecting to <a href="{{.CanonicalURL}}">{{.Title}}</a></p>
</body>
</html>
`

const notFoundTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Article not found</title>
</head>
<body>
<h1>Article not found</h1>
<p>The article you are looking for does not exist or is no longer available.</p>
<p><a href="%[2]s">Go to %[1]s</a></p>
</body>
</html>
`
