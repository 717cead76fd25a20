// Package web provides a simple web UI for the task list.
package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"sync"

	"github.com/metalagman/tasker/internal/task"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server provides the web UI handlers. Requests are serialized because the
// store is single-threaded.
type Server struct {
	mu    sync.Mutex
	store *task.Store
	index *template.Template
}

// NewServer creates a web server over store.
func NewServer(store *task.Store) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &Server{store: store, index: tmpl}, nil
}

// Routes returns the router for the web UI.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /tasks", s.handleAdd)
	mux.HandleFunc("POST /tasks/{id}/done", s.handleComplete)
	mux.HandleFunc("POST /tasks/{id}/delete", s.handleDelete)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	items := s.store.List()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.index.Execute(w, items); err != nil {
		log.Error().Err(err).Msg("render index")
	}
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	_, err := s.store.Add(r.Context(), r.FormValue("description"))
	s.mu.Unlock()
	s.finish(w, r, err)
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	id, err := task.ParseID(r.PathValue("id"))
	if err == nil {
		s.mu.Lock()
		_, err = s.store.Complete(r.Context(), id)
		s.mu.Unlock()
	}
	s.finish(w, r, err)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := task.ParseID(r.PathValue("id"))
	if err == nil {
		s.mu.Lock()
		_, err = s.store.Delete(r.Context(), id)
		s.mu.Unlock()
	}
	s.finish(w, r, err)
}

func (s *Server) finish(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	switch {
	case errors.Is(err, task.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, task.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("task request failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
