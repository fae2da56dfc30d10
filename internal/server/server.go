// Package server provides the HTTP server for the dinojump game.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/ayusman/dinojump/internal/app"
	"github.com/ayusman/dinojump/internal/server/api"
	"github.com/ayusman/dinojump/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	App       *app.App
}

// Server represents the HTTP server for the dinojump application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
	hub    *Hub

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
		ctx:    ctx,
		cancel: cancel,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.App != nil {
		sessionHandler := api.NewSessionHandler(s.config.App)
		s.mux.Handle("/api/session", sessionHandler)
		s.mux.Handle("/api/session/", sessionHandler)

		s.mux.Handle("/api/stream", NewStreamHandler(s.config.App.Preview()))

		s.hub = NewHub(s.config.App)
		go s.hub.Run(s.ctx)
		s.mux.Handle("/api/ws", s.hub)
	}

	if s.config.Store != nil {
		scoresHandler := api.NewScoresHandler(s.config.Store)
		s.mux.Handle("/api/scores", scoresHandler)
		s.mux.Handle("/api/scores/", scoresHandler)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}
	if s.hub != nil {
		response["clients"] = s.hub.Clients()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// Close stops the websocket broadcaster.
func (s *Server) Close() {
	s.cancel()
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
