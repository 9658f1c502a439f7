package api

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dgallion1/pdfqa/internal/config"
	"github.com/dgallion1/pdfqa/internal/llm"
	"github.com/dgallion1/pdfqa/internal/pipeline"
	"github.com/dgallion1/pdfqa/internal/workspace"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/yuin/goldmark"
)

// Server is the HTTP surface for uploading PDFs and asking questions.
type Server struct {
	router   chi.Router
	pipeline *pipeline.Pipeline
	ws       *workspace.Workspace
	stats    *llm.LLMStats
	model    string
	log      *slog.Logger
	cfg      config.Config
	pages    *template.Template
	md       goldmark.Markdown
}

// NewServer creates and configures the HTTP server. stats may be nil.
func NewServer(p *pipeline.Pipeline, ws *workspace.Workspace, stats *llm.LLMStats, model string, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		pipeline: p,
		ws:       ws,
		stats:    stats,
		model:    model,
		log:      log,
		cfg:      cfg,
		pages:    parsePages(),
		md:       goldmark.New(),
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

	r.Get("/health", s.handleHealth)

	// Browser pages.
	r.Get("/", s.handleIndex)
	r.Post("/documents", s.handleUploadPage)
	r.Post("/documents/{docID}/ask", s.handleAskPage)

	// JSON API.
	r.Route("/api", func(r chi.Router) {
		r.Post("/documents", s.handleUpload)
		r.Post("/documents/{docID}/ask", s.handleAsk)
		r.Get("/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
