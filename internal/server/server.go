// Package server exposes the record keeper over HTTP. The UI is a thin
// collaborator: every route maps directly onto the persistence adapter
// or the aggregator.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/daeun-lee/hakwonlog/internal/store"
)

// Server handles the week-record API.
type Server struct {
	store *store.Store
	now   func() time.Time
}

// New creates an API server over a record store.
func New(st *store.Store) *Server {
	return &Server{store: st, now: time.Now}
}

// Register attaches the API routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/weeks", s.handleListWeeks)
	mux.HandleFunc("POST /api/weeks", s.handleCreateWeek)
	mux.HandleFunc("GET /api/weeks/{key}", s.handleGetWeek)
	mux.HandleFunc("PUT /api/weeks/{key}", s.handlePutWeek)
	mux.HandleFunc("DELETE /api/weeks/{key}", s.handleDeleteWeek)
	mux.HandleFunc("GET /api/weeks/{key}/summary", s.handleSummary)
	mux.HandleFunc("GET /api/weeks/{key}/export/xlsx", s.handleExportExcel)
	mux.HandleFunc("GET /api/weeks/{key}/export/pdf", s.handleExportPDF)
}

// Handler returns a mux with the API routes registered, for tests and
// embedding.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
