package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"telegram-link-shortener/internal/config"
	"telegram-link-shortener/internal/infra/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Server answers hosting-platform health checks. It knows nothing about the bot.
type Server struct {
	cfg    *config.HTTPConfig
	log    *zerolog.Logger
	server *http.Server
}

func NewServer(cfg *config.HTTPConfig, logger *zerolog.Logger) *Server {
	s := &Server{cfg: cfg, log: logger}
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Routes returns the router; exposed for tests.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealthCheck)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	return r
}

// Start blocks until the server stops. A clean Shutdown returns nil.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hello World!"))
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
