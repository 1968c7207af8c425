// Package web exposes the task engine over a small JSON API: quick-add,
// listing and completion. Rendering is left to whatever consumes it.
package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mkoval/tend/internal/quickadd"
	"github.com/mkoval/tend/internal/reconcile"
	"github.com/mkoval/tend/internal/task"
	"github.com/rs/zerolog/log"
)

// Server provides the JSON API handlers and state.
type Server struct {
	store *task.Store
	now   func() time.Time
}

// NewServer creates an API server over the task store.
func NewServer(store *task.Store) *Server {
	return &Server{store: store, now: time.Now}
}

// Routes returns the API router.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /tasks", s.handleQuickAdd)
	mux.HandleFunc("GET /tasks", s.handleList)
	mux.HandleFunc("POST /tasks/{id}/done", s.handleComplete)
	return mux
}

type quickAddRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleQuickAdd(w http.ResponseWriter, r *http.Request) {
	var req quickAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	now := s.now()
	parsed := quickadd.Parse(req.Text, now)
	if parsed.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	t := task.FromQuickAdd(parsed, now)
	if err := s.store.Create(r.Context(), &t); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Info().Str("task_id", t.ID).Msg("task added via api")
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	var status *task.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := task.Status(raw)
		if !task.ValidStatus(st) {
			http.Error(w, "unknown status", http.StatusBadRequest)
			return
		}
		status = &st
	}
	items, err := s.store.List(r.Context(), status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []task.Task{}
	}
	writeJSON(w, http.StatusOK, items)
}

type completeResponse struct {
	Task    task.Task  `json:"task"`
	Spawned *task.Task `json:"spawned,omitempty"`
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	done, spawned, err := reconcile.CompleteTask(r.Context(), s.store, id, s.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, completeResponse{Task: done, Spawned: spawned})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}
