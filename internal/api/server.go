package api

import (
	"log/slog"
	"net/http"

	"github.com/blogkey/blogkey/internal/backend"
	"github.com/blogkey/blogkey/internal/config"
	"github.com/blogkey/blogkey/internal/pipeline"
	"github.com/blogkey/blogkey/internal/reflow"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for blogkey.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	stats        *backend.Stats
	log          *slog.Logger
	cfg          config.Config
	reflowCfg    reflow.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, stats *backend.Stats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		stats:        stats,
		log:          log,
		cfg:          cfg,
		reflowCfg:    reflow.Config{Target: cfg.ReflowTarget},
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/format/text", s.handleFormatText)
		r.Post("/api/format/html", s.handleFormatHTML)
		r.Post("/api/format/upload", s.handleFormatUpload)

		r.Post("/api/generate", s.handleGenerate)
		r.Get("/api/generate/{jobID}/status", s.handleGenerateStatus)

		r.Get("/api/keywords", s.handleListKeywords)
		r.Post("/api/keywords", s.handleCreateKeyword)
		r.Delete("/api/keywords/{keywordID}", s.handleDeleteKeyword)

		r.Get("/api/content", s.handleListContents)
		r.Get("/api/content/{contentID}/mobile", s.handleContentMobile)
		r.Post("/api/content/{contentID}/summary", s.handleContentSummary)

		r.Get("/api/stats/backend", s.handleBackendStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
