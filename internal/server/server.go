// Package server exposes the pinned project extraction over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Cyclone1070/spyglass-pinned/internal/config"
	"github.com/Cyclone1070/spyglass-pinned/internal/upstream"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"gitlab.com/tozd/go/errors"
)

// Server is the pinned projects web server.
type Server struct {
	logger zerolog.Logger
	server *http.Server
}

// NewServer wires the handler and its middleware from cfg.
func NewServer(logger zerolog.Logger, cfg *config.Config, fetcher upstream.Fetcher) *Server {
	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      NewRouter(logger, cfg, fetcher),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}
}

// NewRouter returns the complete handler chain: access logging, headers and routes.
func NewRouter(logger zerolog.Logger, cfg *config.Config, fetcher upstream.Fetcher) http.Handler {
	mux := http.NewServeMux()
	NewHandler(fetcher, cfg.Server.RootRedirect).RegisterRoutes(mux)

	return Chain(mux,
		hlog.NewHandler(logger),
		hlog.RequestIDHandler("req_id", "X-Request-Id"),
		hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			hlog.FromRequest(r).Info().
				Str("method", r.Method).
				Stringer("url", r.URL).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("request")
		}),
		SecureHeaders(cfg.Headers.HSTSMaxAge),
		CORS(cfg.Headers.AllowOrigin, cfg.Headers.AllowMethods),
		CacheControl(cfg.Headers.CacheMaxAge),
	)
}

// Start listens until the server is stopped.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("starting server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop gracefully stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Msg("shutting down server")
	return s.server.Shutdown(ctx)
}
