package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/rgehrsitz/corpus/internal/api"
	"github.com/rgehrsitz/corpus/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculation API over HTTP",
	Long: `Serve the calculation, optimizer, what-if and break-even endpoints together
with per-user settings, a health check and Prometheus metrics.

Examples:
  corpus serve --addr :8080
  CORPUS_STORE=badger CORPUS_BADGER_PATH=./data corpus serve
  corpus serve --store redis --redis-addr cache:6379 --rate-limit 0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := serverConfig(cmd)
		if err != nil {
			return err
		}
		if !cfg.Debug {
			gin.SetMode(gin.ReleaseMode)
		}
		logger := newSlogLogger(cmd)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		kind, _ := cmd.Flags().GetString("store")
		badgerPath, _ := cmd.Flags().GetString("badger-path")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")
		repo, err := storage.Open(ctx, storage.Config{
			Kind:       storage.Kind(kind),
			BadgerPath: badgerPath,
			RedisAddr:  redisAddr,
			Logger:     logger.With(slog.String("component", "storage")),
		})
		if err != nil {
			return err
		}
		defer repo.Close()

		server := api.NewServer(cfg, repo, logger)
		defer server.Close()

		addr, _ := cmd.Flags().GetString("addr")
		logger.Info("starting server", "addr", addr, "store", kind)
		return server.ListenAndServe(ctx, addr)
	},
}

// serverConfig reads the API settings from the serve flags
func serverConfig(cmd *cobra.Command) (api.Config, error) {
	cfg := api.DefaultConfig()

	limit, err := cmd.Flags().GetFloat64("rate-limit")
	if err != nil {
		return cfg, err
	}
	if limit < 0 {
		return cfg, fmt.Errorf("--rate-limit must not be negative, got %g", limit)
	}
	burst, err := cmd.Flags().GetInt("burst")
	if err != nil {
		return cfg, err
	}
	if limit > 0 && burst < 1 {
		return cfg, fmt.Errorf("--burst must be at least 1 when rate limiting, got %d", burst)
	}
	debugMode, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return cfg, err
	}

	cfg.RateLimit = rate.Limit(limit)
	cfg.Burst = burst
	cfg.Debug = debugMode
	return cfg, nil
}

// newSlogLogger logs JSON unless --log-format asks otherwise or stderr is a
// terminal.
func newSlogLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	format, _ := cmd.Flags().GetString("log-format")
	if format == "" && isatty.IsTerminal(os.Stderr.Fd()) {
		format = "text"
	}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
	}
	return slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), opts))
}

func init() {
	defaults := api.DefaultConfig()
	serveCmd.Flags().String("addr", envOr("CORPUS_ADDR", ":8080"), "Listen address [CORPUS_ADDR]")
	serveCmd.Flags().Float64("rate-limit", float64(defaults.RateLimit), "Requests per second per client; 0 disables")
	serveCmd.Flags().Int("burst", defaults.Burst, "Rate limiter burst size")
	serveCmd.Flags().String("log-format", "", "Log format (json, text); text when stderr is a terminal")
	serveCmd.Flags().Bool("debug", false, "Enable debug logging and gin debug mode")
}
