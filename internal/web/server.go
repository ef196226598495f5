package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/arcanaland/cardex/internal/logging"
	"github.com/arcanaland/cardex/internal/render"
	"github.com/arcanaland/cardex/internal/search"
	"github.com/arcanaland/cardex/internal/store"
)

// Config holds server configuration.
type Config struct {
	Addr string
	// AssetsDir is served under /assets/ when set. Relative image references
	// are then resolved against /assets.
	AssetsDir string
}

// Server is the HTTP front-end over a loaded catalog.
type Server struct {
	cfg      Config
	store    *store.Store
	index    *search.Index
	renderer *render.Renderer
	pages    *pages
	logger   *zap.Logger
	router   chi.Router
}

// New builds the server. renderer may be nil, in which case one is derived
// from cfg.AssetsDir.
func New(cfg Config, s *store.Store, index *search.Index, renderer *render.Renderer, logger *zap.Logger) (*Server, error) {
	if renderer == nil {
		base := ""
		if cfg.AssetsDir != "" {
			base = "/assets"
		}
		renderer = render.New(base)
	}
	p, err := parsePages()
	if err != nil {
		return nil, err
	}

	srv := &Server{
		cfg:      cfg,
		store:    s,
		index:    index,
		renderer: renderer,
		pages:    p,
		logger:   logging.OrNop(logger),
	}
	srv.router = srv.buildRouter()
	return srv, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if s.cfg.AssetsDir != "" {
		r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(s.cfg.AssetsDir))))
	}

	r.Get("/", s.handlePage)
	r.Get("/card", s.handlePage)
	r.Get("/card/{id}", s.handleCardPath)
	r.Post("/theme", s.handleThemeToggle)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearchAPI)
		r.Get("/cards/{id}", s.handleCardAPI)
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web listening", zap.String("addr", s.cfg.Addr), zap.Int("cards", s.store.Len()))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
