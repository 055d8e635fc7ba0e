package http

import (
	"PressLink-Backend/internal/analytics"
	"PressLink-Backend/internal/repository"
	"PressLink-Backend/internal/service"
	"PressLink-Backend/pkg/random"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RedirectHandler resolves short ids to article URLs.
type RedirectHandler struct {
	shortLinks *service.ShortLinkService
	processor  *analytics.Processor
	log        *zap.Logger
}

// NewRedirectHandler creates a new redirect handler. processor may be nil.
func NewRedirectHandler(shortLinks *service.ShortLinkService, processor *analytics.Processor, log *zap.Logger) *RedirectHandler {
	return &RedirectHandler{
		shortLinks: shortLinks,
		processor:  processor,
		log:        log,
	}
}

// HandleRedirect resolves GET /{shortID}.
//
//	@Summary		Resolve a short link
//	@Description	Redirects to the canonical article URL and counts the click
//	@Tags			Redirect
//	@Param			shortID	path	string	true	"Short id"
//	@Success		301		"Permanent redirect to the article"
//	@Failure		400		{object}	map[string]string	"Malformed short id"
//	@Failure		404		{object}	map[string]string	"Unknown short id"
//	@Router			/{shortID} [get]
func (h *RedirectHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	shortID := strings.TrimPrefix(r.URL.Path, "/")

	// The catch-all pattern also receives system paths
	if shortID == "" || strings.ContainsRune(shortID, '/') || isSystemPath(r.URL.Path) {
		http.NotFound(w, r)
		return
	}

	// Stray requests like /favicon.ico or /robots.txt are not short-id
	// candidates at all; only lowercase alphanumeric paths go further, and
	// the resolver still rejects candidates of the wrong length.
	if !random.IsValidCode(shortID, len(shortID)) {
		http.NotFound(w, r)
		return
	}

	link, destination, err := h.shortLinks.Resolve(r.Context(), shortID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidShortID):
			writeError(w, "Malformed short id", http.StatusBadRequest)
		case errors.Is(err, repository.ErrLinkNotFound):
			h.log.Debug("short id not found", zap.String("short_id", shortID))
			writeError(w, "Link not found", http.StatusNotFound)
		default:
			h.log.Error("failed to resolve short link", zap.String("short_id", shortID), zap.Error(err))
			writeError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	// Detailed analytics are recorded off the request path; the counter
	// was already incremented by the resolver.
	if h.processor != nil {
		ipAddress := extractIPAddress(r)
		userAgent := r.UserAgent()
		referer := r.Referer()

		_ = h.processor.SubmitClick(&analytics.ClickData{
			LinkID:    link.ID,
			ShortID:   link.ShortID,
			IPAddress: &ipAddress,
			UserAgent: &userAgent,
			Referer:   &referer,
			ClickedAt: time.Now(),
		})
	}

	h.log.Info("resolved short link",
		zap.String("short_id", shortID),
		zap.String("destination", destination))

	http.Redirect(w, r, destination, http.StatusMovedPermanently)
}

// isSystemPath reports whether a path belongs to a non-redirect route.
func isSystemPath(path string) bool {
	systemPaths := []string{
		"/api/",
		"/health",
		"/ready",
		"/metrics",
		"/preview/",
		"/p/",
	}

	for _, systemPath := range systemPaths {
		if strings.HasPrefix(path, systemPath) {
			return true
		}
	}

	return false
}

// extractIPAddress extracts the client IP, preferring proxy headers.
func extractIPAddress(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		// X-Forwarded-For may hold a comma-separated list
		ips := strings.Split(ip, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
