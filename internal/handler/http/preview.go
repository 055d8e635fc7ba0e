package http

import (
	"PressLink-Backend/internal/preview"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// PreviewHandler serves social-preview share URLs.
type PreviewHandler struct {
	renderer *preview.Renderer
	log      *zap.Logger
}

// NewPreviewHandler creates a new preview handler.
func NewPreviewHandler(renderer *preview.Renderer, log *zap.Logger) *PreviewHandler {
	return &PreviewHandler{
		renderer: renderer,
		log:      log,
	}
}

// HandlePreview serves GET /preview/{id}: the id or slug addresses the
// article directory directly.
//
//	@Summary		Article social preview
//	@Description	Serves a metadata document to crawlers, redirects people to the article
//	@Tags			Preview
//	@Produce		html
//	@Param			id	path	string	true	"Article id or slug"
//	@Success		200	"Metadata document (crawler)"
//	@Success		302	"Redirect to the article (person)"
//	@Failure		404	"Article missing or unpublished"
//	@Router			/preview/{id} [get]
func (h *PreviewHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/preview/")
	if id == "" || strings.ContainsRune(id, '/') {
		http.NotFound(w, r)
		return
	}

	render, err := h.renderer.ForArticleID(r.Context(), id, r.UserAgent())
	if err != nil {
		h.log.Error("failed to render preview", zap.String("id", id), zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.write(w, r, render)
}

// HandleEncoded serves GET /p/{encodedID}: a reversible encoded article id
// minted by the publishing side without a stored link.
//
//	@Summary		Encoded-id social preview
//	@Description	Decodes the article id, then serves a metadata document or redirect
//	@Tags			Preview
//	@Produce		html
//	@Param			encodedID	path	string	true	"URL-safe base64 article id"
//	@Success		200			"Metadata document (crawler)"
//	@Success		302			"Redirect to the article or site home"
//	@Router			/p/{encodedID} [get]
func (h *PreviewHandler) HandleEncoded(w http.ResponseWriter, r *http.Request) {
	encoded := strings.TrimPrefix(r.URL.Path, "/p/")
	if encoded == "" || strings.ContainsRune(encoded, '/') {
		http.NotFound(w, r)
		return
	}

	render, err := h.renderer.ForEncodedID(r.Context(), encoded, r.UserAgent())
	if err != nil {
		h.log.Error("failed to render encoded preview", zap.String("encoded", encoded), zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.write(w, r, render)
}

// write turns a Render into an HTTP response. Metadata documents must not
// be cached: platforms re-scrape share URLs and stale cards outlive edits.
func (h *PreviewHandler) write(w http.ResponseWriter, r *http.Request, render preview.Render) {
	switch render.Kind {
	case preview.RenderRedirect:
		http.Redirect(w, r, render.Location, http.StatusFound)

	case preview.RenderHTML:
		setHTMLHeaders(w)
		w.WriteHeader(http.StatusOK)
		w.Write(render.HTML)

	case preview.RenderNotFound:
		setHTMLHeaders(w)
		w.WriteHeader(http.StatusNotFound)
		w.Write(h.renderer.NotFoundHTML())
	}
}

func setHTMLHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}
