// Package server serves rendered résumé pages over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"golang.org/x/text/language"

	"github.com/nikogura/resume-render/pkg/resume"
)

// CookieName holds the visitor's chosen locale.
const CookieName = "lng"

// QueryParam selects a locale for one request and remembers it.
const QueryParam = "lng"

const shutdownTimeout = 10 * time.Second

// Renderer produces pages and merged documents for a locale.
type Renderer interface {
	Render(ctx context.Context, tag language.Tag, link resume.LinkFunc) (content []byte, err error)
	Load(ctx context.Context, tag language.Tag) (result resume.Result, err error)
}

// Server is the HTTP surface of resume-render.
type Server struct {
	router   chi.Router
	renderer Renderer
	log      *slog.Logger
	dataDir  string
}

// NewServer creates and configures the HTTP server. An empty dataDir
// disables the /data/ file route.
func NewServer(renderer Renderer, log *slog.Logger, dataDir string) (s *Server) {
	if log == nil {
		log = slog.Default()
	}
	s = &Server{
		renderer: renderer,
		log:      log,
		dataDir:  dataDir,
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
	r.Get("/", s.handlePage)
	r.Get("/lang/{locale}", s.handleSwitch)
	r.Get("/api/document", s.handleDocument)

	if s.dataDir != "" {
		r.Handle("/data/*", http.StripPrefix("/data/", http.FileServer(http.Dir(s.dataDir))))
	}

	s.router = r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) (err error) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("listening", "addr", addr)

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
			return err
		}
		err = errors.Wrapf(err, "failed to listen on %s", addr)
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		err = errors.Wrap(err, "failed to shut down server")
		return err
	}
	return err
}
