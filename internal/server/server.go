// Package server provides the HTTP server feeding the browser renderer.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/nakshatra/internal/capture"
	"github.com/ayusman/nakshatra/internal/scene"
	"github.com/ayusman/nakshatra/internal/state"
	"github.com/ayusman/nakshatra/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir  string
	Store      *store.Store
	Camera     capture.Camera
	State      *state.Store
	Controller *scene.Controller
}

// Server represents the HTTP server for the Nakshatra viewer.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
	scene  *SceneHandler
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.State != nil && s.config.Controller != nil {
		s.mux.HandleFunc("/api/state", s.handleState)
		s.scene = NewSceneHandler(s.config.State, s.config.Controller)
		s.mux.Handle("/ws/scene", s.scene)
	}

	if s.config.Store != nil {
		sessionRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// /api/sessions/{id}/events lists one session's transitions
			if strings.HasSuffix(r.URL.Path, "/events") {
				s.handleSessionEvents(w, r)
				return
			}
			s.handleSessions(w, r)
		})
		s.mux.Handle("/api/sessions", sessionRouter)
		s.mux.Handle("/api/sessions/", sessionRouter)
	}

	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

	// Serve the renderer's static files if StaticDir is configured
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

	writeJSON(w, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	})
}

// handleState handles GET requests to /api/state: a one-shot snapshot of
// the interaction state and the smoothed pose, for UI display.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, SceneFrame{
		State:     s.config.State.Snapshot(),
		Pose:      s.config.Controller.Pose(),
		Timestamp: time.Now().UnixMilli(),
	})
}

// handleSessions handles GET requests to /api/sessions.
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessions, err := s.config.Store.Sessions().List()
	if err != nil {
		http.Error(w, "Failed to list sessions", http.StatusInternalServerError)
		return
	}
	if sessions == nil {
		sessions = []store.Session{}
	}

	writeJSON(w, sessions)
}

// handleSessionEvents handles GET requests to /api/sessions/{id}/events.
func (s *Server) handleSessionEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path: /api/sessions/{id}/events
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 4 {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}
	sessionID := parts[2]

	events, err := s.config.Store.Sessions().Events(sessionID)
	if err != nil {
		http.Error(w, "Failed to list events", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []store.Event{}
	}

	writeJSON(w, events)
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

// Close stops the server's background broadcast loop. The HTTP listener
// itself is owned by the ListenAndServe caller. Safe to call more than
// once.
func (s *Server) Close() {
	if s.scene != nil {
		s.scene.Close()
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
