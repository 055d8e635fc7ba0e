package http

import (
	"PressLink-Backend/internal/analytics"
	"PressLink-Backend/internal/directory"
	"PressLink-Backend/internal/preview"
	"PressLink-Backend/internal/repository"
	"PressLink-Backend/internal/service"
	"net/http"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Server wires the HTTP handlers together.
type Server struct {
	linksHandler    *LinksHandler
	redirectHandler *RedirectHandler
	previewHandler  *PreviewHandler
	healthHandler   *HealthHandler
	log             *zap.Logger
}

// NewServer creates a new HTTP server.
func NewServer(
	storage repository.Storage,
	dir directory.Directory,
	shortLinks *service.ShortLinkService,
	renderer *preview.Renderer,
	processor *analytics.Processor,
	log *zap.Logger,
) *Server {
	return &Server{
		linksHandler:    NewLinksHandler(storage, dir, shortLinks, log),
		redirectHandler: NewRedirectHandler(shortLinks, processor, log),
		previewHandler:  NewPreviewHandler(renderer, log),
		healthHandler:   NewHealthHandler(storage, processor, log),
		log:             log,
	}
}

// SetupRoutes configures the route table.
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	// Health checks
	mux.HandleFunc("/health", s.healthHandler.Health)
	mux.HandleFunc("/ready", s.healthHandler.Ready)
	mux.HandleFunc("/metrics", s.healthHandler.Metrics)

	// Swagger documentation
	mux.Handle("/api/v1/", httpSwagger.WrapHandler)

	// Links API
	mux.HandleFunc("/api/links", withCORS(s.handleLinksCollection))
	mux.HandleFunc("/api/links/", withCORS(s.handleLinksItem))

	// Social preview endpoints
	mux.HandleFunc("/preview/", s.previewHandler.HandlePreview)
	mux.HandleFunc("/p/", s.previewHandler.HandleEncoded)

	// Redirect endpoint - must be last
	mux.HandleFunc("/", s.redirectHandler.HandleRedirect)

	return mux
}

// handleLinksCollection routes /api/links by method.
func (s *Server) handleLinksCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.linksHandler.CreateLink(w, r)
	case http.MethodGet:
		s.linksHandler.ListLinks(w, r)
	default:
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleLinksItem routes /api/links/* sub-resources:
// POST /api/links/generate-all and GET /api/links/{shortID}/analytics.
func (s *Server) handleLinksItem(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/links/generate-all" {
		if r.Method != http.MethodPost {
			writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.linksHandler.GenerateAll(w, r)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) == 4 && parts[3] == "analytics" {
		if r.Method != http.MethodGet {
			writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.linksHandler.GetAnalytics(w, r, parts[2])
		return
	}

	http.NotFound(w, r)
}

// withCORS adds CORS headers to API handlers.
func withCORS(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		handler(w, r)
	}
}
