package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/doccheck/internal/compare"
	"github.com/dgallion1/doccheck/internal/config"
	"github.com/dgallion1/doccheck/internal/pipeline"
	"github.com/dgallion1/doccheck/internal/segment"
	"github.com/dgallion1/doccheck/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for doccheck.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	claude       *compare.ClaudeClient
	templates    *store.Store
	segmenter    *segment.Segmenter
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, claude *compare.ClaudeClient, templates *store.Store, seg *segment.Segmenter, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		claude:       claude,
		templates:    templates,
		segmenter:    seg,
		log:          log,
		cfg:          cfg,
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
		r.Use(AuthMiddleware(s.cfg.DoccheckAPIKey, s.log))

		r.Post("/api/segment", s.handleSegment)
		r.Post("/api/templates", s.handleCreateTemplate)
		r.Get("/api/templates", s.handleListTemplates)
		r.Get("/api/templates/{name}", s.handleGetTemplate)
		r.Delete("/api/templates/{name}", s.handleDeleteTemplate)

		r.Post("/api/compare", s.handleCompare)
		r.Get("/api/compare/{runID}/status", s.handleRunStatus)
		r.Get("/api/compare/{runID}/results", s.handleRunResults)
		r.Get("/api/compare/{runID}/export", s.handleRunExport)

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
