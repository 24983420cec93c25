// Package web provides the HTTP server and handlers for the campsite web UI.
package web

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/rscole87/nucamp/internal/campsite"
	"github.com/rscole87/nucamp/internal/comment"
	"github.com/rscole87/nucamp/internal/view"
)

// Config controls where the server's pages point.
type Config struct {
	BaseURL       string // image host prefix, default "/static/"
	DirectoryPath string // default "/directory"
	StaticDir     string // served under /static/ when set
}

// Server is the web UI HTTP server.
type Server struct {
	campsiteRepo *campsite.Repository
	commentRepo  *comment.Repository
	renderer     *view.Renderer
	mux          *http.ServeMux
	status       loadStatus
}

// loadStatus tracks a background data load.
type loadStatus struct {
	mu      sync.RWMutex
	loading bool
	errMess string
}

func (l *loadStatus) get() (bool, string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading, l.errMess
}

func (l *loadStatus) set(loading bool, errMess string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = loading
	l.errMess = errMess
}

// NewServer creates a web server with the given database.
func NewServer(db *sql.DB, cfg Config) (*Server, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "/static/"
	}
	if cfg.DirectoryPath == "" {
		cfg.DirectoryPath = "/directory"
	}

	renderer, err := view.NewRenderer(view.Config{
		BaseURL:       cfg.BaseURL,
		DirectoryPath: cfg.DirectoryPath,
	})
	if err != nil {
		return nil, err
	}

	s := &Server{
		campsiteRepo: campsite.NewRepository(db),
		commentRepo:  comment.NewRepository(db),
		renderer:     renderer,
		mux:          http.NewServeMux(),
	}

	if cfg.StaticDir != "" {
		s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(os.DirFS(cfg.StaticDir)))))
	}

	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("GET "+cfg.DirectoryPath, s.handleDirectory)
	s.mux.HandleFunc("GET /campsite/{id}", s.handleDetail)
	s.mux.HandleFunc("POST /campsite/{id}/comments", s.handleCommentPost)

	s.mux.HandleFunc("GET /api/campsites", s.apiListCampsites)
	s.mux.HandleFunc("GET /api/campsites/{id}", s.apiGetCampsite)
	s.mux.HandleFunc("GET /api/campsites/{id}/comments", s.apiListComments)
	s.mux.HandleFunc("POST /api/campsites/{id}/comments", s.apiAddComment)

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Load runs fn in the background. Detail pages render the loading
// placeholder until it returns, and its error message afterwards.
// The returned channel is closed when fn has finished.
func (s *Server) Load(ctx context.Context, fn func(context.Context) error) <-chan struct{} {
	done := make(chan struct{})
	s.status.set(true, "")
	go func() {
		defer close(done)
		if err := fn(ctx); err != nil {
			slog.Error("loading campsites failed", "error", err)
			s.status.set(false, err.Error())
			return
		}
		s.status.set(false, "")
	}()
	return done
}

// ListenAndServe starts the HTTP server with h as its handler.
func ListenAndServe(port int, h http.Handler) error {
	addr := fmt.Sprintf(":%d", port)
	slog.Info("starting web UI", "url", fmt.Sprintf("http://localhost%s", addr))
	return http.ListenAndServe(addr, h)
}
