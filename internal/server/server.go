// Package server exposes the character catalog as a small JSON API so that
// browser clients can query it without holding the API key.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/rshade/herodex/internal/logging"
	"github.com/rshade/herodex/internal/marvel"
)

const shutdownTimeout = 5 * time.Second

// CharacterSource is the data service the server proxies.
type CharacterSource interface {
	GetAllCharacters(ctx context.Context, offset int) ([]marvel.Character, error)
	GetCharacterByID(ctx context.Context, id int) (marvel.Character, error)
}

// Options configures a Server.
type Options struct {
	Logger zerolog.Logger
	// PickID chooses the id served by /api/characters/random. The route is
	// not registered when nil.
	PickID func() int
}

// Server is the JSON proxy.
type Server struct {
	Echo *echo.Echo

	source CharacterSource
	pickID func() int
	logger zerolog.Logger
}

// New builds a server around source.
func New(source CharacterSource, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		Echo:   e,
		source: source,
		pickID: opts.PickID,
		logger: logging.ComponentLogger(opts.Logger, "server"),
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			ev := s.logger.Info()
			if v.Error != nil {
				ev = s.logger.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}))

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.Echo.GET("/healthz", s.handleHealth)

	api := s.Echo.Group("/api")
	api.GET("/characters", s.handleList)
	if s.pickID != nil {
		api.GET("/characters/random", s.handleRandom)
	}
	api.GET("/characters/:id", s.handleGet)
}

// ServeHTTP lets the server be mounted or exercised with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Echo.ServeHTTP(w, r)
}

// Start listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Echo.Start(addr)
	}()
	s.logger.Info().Str("addr", addr).Msg("server listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := s.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
