package http

import (
	"PressLink-Backend/internal/directory"
	"PressLink-Backend/internal/repository"
	"PressLink-Backend/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// LinksHandler serves the short-link management API.
type LinksHandler struct {
	storage    repository.Storage
	directory  directory.Directory
	shortLinks *service.ShortLinkService
	log        *zap.Logger
}

// NewLinksHandler creates a new links handler.
func NewLinksHandler(storage repository.Storage, dir directory.Directory, shortLinks *service.ShortLinkService, log *zap.Logger) *LinksHandler {
	return &LinksHandler{
		storage:    storage,
		directory:  dir,
		shortLinks: shortLinks,
		log:        log,
	}
}

// CreateLinkRequest is the request body for link creation.
type CreateLinkRequest struct {
	ArticleID string `json:"article_id"`
}

// LinkResponse describes a short link the way the API reports it.
type LinkResponse struct {
	ShortID     string `json:"short_id"`
	ShortURL    string `json:"short_url"`
	ArticleID   string `json:"article_id"`
	ArticleSlug string `json:"article_slug,omitempty"`
}

// LinkInfo is one row of the link listing.
type LinkInfo struct {
	ShortID      string `json:"short_id"`
	ShortURL     string `json:"short_url"`
	ArticleID    string `json:"article_id"`
	ArticleTitle string `json:"article_title,omitempty"`
	Clicks       int64  `json:"clicks"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// Pagination describes the page of a listing response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// ListLinksResponse is the link listing envelope.
type ListLinksResponse struct {
	Data       []LinkInfo `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// AnalyticsResponse reports click accounting for one link.
type AnalyticsResponse struct {
	ShortID        string           `json:"short_id"`
	ArticleID      string           `json:"article_id"`
	ArticleTitle   string           `json:"article_title,omitempty"`
	Clicks         int64            `json:"clicks"`
	ClicksByDevice map[string]int64 `json:"clicks_by_device,omitempty"`
	CreatedAt      string           `json:"created_at"`
	UpdatedAt      string           `json:"updated_at"`
}

// CreateLink mints a short link for an article, or returns the existing one.
//
//	@Summary		Create a short link for an article
//	@Description	Returns the article's existing short link, or mints a new one
//	@Tags			Links
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateLinkRequest	true	"Link creation request"
//	@Success		200		{object}	LinkResponse		"Existing link returned"
//	@Success		201		{object}	LinkResponse		"Link created"
//	@Failure		400		{object}	map[string]string	"Missing article id"
//	@Failure		404		{object}	map[string]string	"Unknown article"
//	@Failure		500		{object}	map[string]string	"Generation failed"
//	@Router			/api/links [post]
func (h *LinksHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid create link request", zap.Error(err))
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if req.ArticleID == "" {
		writeError(w, "article_id is required", http.StatusBadRequest)
		return
	}

	link, article, created, err := h.shortLinks.CreateForArticle(r.Context(), req.ArticleID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArticleNotFound):
			writeError(w, "Article not found", http.StatusNotFound)
		case errors.Is(err, service.ErrGenerationExhausted):
			h.log.Error("short id generation exhausted", zap.String("article_id", req.ArticleID))
			writeError(w, "Failed to generate a unique short id", http.StatusInternalServerError)
		default:
			h.log.Error("failed to create link", zap.String("article_id", req.ArticleID), zap.Error(err))
			writeError(w, "Failed to create link", http.StatusInternalServerError)
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	h.log.Info("link requested",
		zap.String("short_id", link.ShortID),
		zap.String("article_id", article.ID),
		zap.Bool("created", created))

	writeJSON(w, LinkResponse{
		ShortID:     link.ShortID,
		ShortURL:    h.shortLinks.ShortURL(link.ShortID),
		ArticleID:   article.ID,
		ArticleSlug: article.Slug,
	}, status)
}

// ListLinks returns a page of short links.
//
//	@Summary		List short links
//	@Description	Returns short links newest first with their article titles, paginated
//	@Tags			Links
//	@Produce		json
//	@Param			page	query		int	false	"Page number (1-based)"
//	@Param			limit	query		int	false	"Page size, max 100"
//	@Success		200		{object}	ListLinksResponse
//	@Router			/api/links [get]
func (h *LinksHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := queryInt(r, "limit", defaultPageSize)
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	links, total, err := h.storage.List(r.Context(), (page-1)*limit, limit)
	if err != nil {
		h.log.Error("failed to list links", zap.Error(err))
		writeError(w, "Failed to retrieve links", http.StatusInternalServerError)
		return
	}

	// Titles come from the directory; a missing article leaves the row
	// without one rather than failing the listing.
	titles := make(map[string]string, len(links))
	data := make([]LinkInfo, len(links))
	for i, link := range links {
		title, ok := titles[link.ArticleID]
		if !ok {
			if article, err := h.directory.Get(r.Context(), link.ArticleID); err == nil {
				title = article.Title
			}
			titles[link.ArticleID] = title
		}

		data[i] = LinkInfo{
			ShortID:      link.ShortID,
			ShortURL:     h.shortLinks.ShortURL(link.ShortID),
			ArticleID:    link.ArticleID,
			ArticleTitle: title,
			Clicks:       link.Clicks,
			CreatedAt:    link.CreatedAt.Format(time.RFC3339),
			UpdatedAt:    link.UpdatedAt.Format(time.RFC3339),
		}
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	writeJSON(w, ListLinksResponse{
		Data: data,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, http.StatusOK)
}

// GetAnalytics returns click accounting for one short link.
//
//	@Summary		Short link analytics
//	@Description	Returns the click counter and device breakdown for a link
//	@Tags			Links
//	@Produce		json
//	@Param			shortID	path		string	true	"Short id"
//	@Success		200		{object}	AnalyticsResponse
//	@Failure		404		{object}	map[string]string	"Unknown short id"
//	@Router			/api/links/{shortID}/analytics [get]
func (h *LinksHandler) GetAnalytics(w http.ResponseWriter, r *http.Request, shortID string) {
	link, article, err := h.shortLinks.Stats(r.Context(), shortID)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			writeError(w, "Link not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed to get link analytics", zap.String("short_id", shortID), zap.Error(err))
		writeError(w, "Failed to retrieve analytics", http.StatusInternalServerError)
		return
	}

	clicksByDevice, err := h.storage.GetClicksByDevice(r.Context(), link.ID)
	if err != nil {
		h.log.Warn("failed to get clicks by device", zap.Int64("link_id", link.ID), zap.Error(err))
		clicksByDevice = nil
	}

	response := AnalyticsResponse{
		ShortID:        link.ShortID,
		ArticleID:      link.ArticleID,
		Clicks:         link.Clicks,
		ClicksByDevice: clicksByDevice,
		CreatedAt:      link.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      link.UpdatedAt.Format(time.RFC3339),
	}
	if article != nil {
		response.ArticleTitle = article.Title
	}

	writeJSON(w, response, http.StatusOK)
}

// GenerateAll mints links for every published article without one.
//
//	@Summary		Backfill short links
//	@Description	Creates links for all published articles that have none
//	@Tags			Links
//	@Produce		json
//	@Success		200	{object}	service.BackfillSummary
//	@Failure		500	{object}	map[string]string	"Directory unavailable"
//	@Router			/api/links/generate-all [post]
func (h *LinksHandler) GenerateAll(w http.ResponseWriter, r *http.Request) {
	summary, err := h.shortLinks.GenerateAllMissing(r.Context())
	if err != nil {
		h.log.Error("bulk link generation failed", zap.Error(err))
		writeError(w, "Failed to generate links", http.StatusInternalServerError)
		return
	}

	writeJSON(w, summary, http.StatusOK)
}

// Helper functions

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
