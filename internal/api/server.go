// Package api exposes the calculation engine over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rgehrsitz/corpus/internal/breakeven"
	"github.com/rgehrsitz/corpus/internal/calculation"
	"github.com/rgehrsitz/corpus/internal/config"
	"github.com/rgehrsitz/corpus/internal/storage"
	"golang.org/x/time/rate"
)

// Config holds server options
type Config struct {
	// RateLimit is the sustained requests per second allowed per client.
	// Zero disables rate limiting.
	RateLimit rate.Limit
	Burst     int

	// Debug enables the engine's debug logging
	Debug bool

	ShutdownTimeout time.Duration
}

// DefaultConfig returns the production defaults
func DefaultConfig() Config {
	return Config{
		RateLimit:       10,
		Burst:           20,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server is the HTTP front end for calculations and settings
type Server struct {
	cfg      Config
	engine   *calculation.CalculationEngine
	solver   *breakeven.Solver
	parser   *config.InputParser
	repo     storage.Repository
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *Metrics
	limiter  *RateLimiter
	router   *gin.Engine
}

// NewServer wires the routes. repo must not be nil; a nil logger uses
// slog.Default().
func NewServer(cfg Config, repo storage.Repository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	engine := calculation.NewCalculationEngine()
	engine.Debug = cfg.Debug
	engine.SetLogger(slogAdapter{logger: logger.With(slog.String("component", "engine"))})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &Server{
		cfg:      cfg,
		engine:   engine,
		solver:   breakeven.NewDefaultSolver(engine),
		parser:   config.NewInputParser(),
		repo:     repo,
		logger:   logger,
		registry: registry,
		metrics:  NewMetrics(registry),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = NewRateLimiter(cfg.RateLimit, burst)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), observe(s.logger, s.metrics))

	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	if s.limiter != nil {
		v1.Use(rateLimit(s.limiter, s.metrics))
	}
	{
		v1.POST("/calculate", s.handleCalculate)
		v1.POST("/optimize", s.handleOptimize)
		v1.POST("/whatif", s.handleWhatIf)
		v1.POST("/breakeven", s.handleBreakEven)

		settings := v1.Group("/settings/:user")
		{
			settings.GET("/selection", s.handleGetSelection)
			settings.PUT("/selection", s.handlePutSelection)
			settings.GET("/assumptions", s.handleGetAssumptions)
			settings.PUT("/assumptions", s.handlePutAssumptions)
		}
	}
	return router
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases background resources. It does not close the repository.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}
