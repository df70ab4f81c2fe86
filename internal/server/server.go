// Package server exposes the studio engine over HTTP for the web frontend.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/auradecor/studio/internal/export"
	"github.com/auradecor/studio/internal/store"
	"github.com/auradecor/studio/internal/studio"
	"github.com/auradecor/studio/internal/telemetry"
)

// Config wires the server's collaborators.
type Config struct {
	Port      int
	AuthToken string // bearer credential for persistence routes; empty disables them
	Oracle    studio.Oracle
	Store     store.ProjectStore
	Exporter  *export.Exporter
	Telemetry telemetry.Client
}

type Server struct {
	oracle    studio.Oracle
	store     store.ProjectStore
	exporter  *export.Exporter
	telemetry telemetry.Client
	authToken string
	port      int

	mu       sync.Mutex
	sessions map[string]*studio.Session

	server *http.Server
}

func New(cfg Config) *Server {
	s := &Server{
		oracle:    cfg.Oracle,
		store:     cfg.Store,
		exporter:  cfg.Exporter,
		telemetry: cfg.Telemetry,
		authToken: cfg.AuthToken,
		port:      cfg.Port,
		sessions:  make(map[string]*studio.Session),
	}
	if s.telemetry == nil {
		s.telemetry = telemetry.NewNoopClient()
	}

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.registerRoutes(),
	}
	return s
}

// registerRoutes sets up all API endpoints.
func (s *Server) registerRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/styles", s.handleStyles)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)

	mux.HandleFunc("POST /api/sessions", s.handleStartSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("POST /api/sessions/{id}/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/sessions/{id}/chat", s.handleChat)
	mux.HandleFunc("POST /api/sessions/{id}/select", s.handleSelect)
	mux.HandleFunc("POST /api/sessions/{id}/current", s.handleSetCurrent)
	mux.HandleFunc("POST /api/sessions/{id}/concept", s.handleNewConcept)
	mux.HandleFunc("POST /api/sessions/{id}/export", s.handleExport)
	mux.HandleFunc("POST /api/sessions/{id}/quotes", s.handleQuotes)

	// Persistence routes require the bearer token.
	mux.Handle("POST /api/projects", s.requireAuth(http.HandlerFunc(s.handleSaveProject)))
	mux.Handle("GET /api/projects", s.requireAuth(http.HandlerFunc(s.handleListProjects)))
	mux.Handle("GET /api/projects/{id}", s.requireAuth(http.HandlerFunc(s.handleGetProject)))
	mux.Handle("DELETE /api/projects/{id}", s.requireAuth(http.HandlerFunc(s.handleDeleteProject)))

	mux.HandleFunc("GET /images/{name}", s.handleImage)

	return corsMiddleware(mux)
}

// session looks up a studio session by ID.
func (s *Server) session(id string) (*studio.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Server) addSession(sess *studio.Session) {
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
}

func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
