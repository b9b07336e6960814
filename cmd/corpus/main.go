package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/corpus/internal/calculation"
	"github.com/rgehrsitz/corpus/internal/config"
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/rgehrsitz/corpus/internal/storage"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Retirement corpus planner",
	Long: `Projects a household's retirement corpus year by year, sizes the corpus
each income strategy needs and searches for the changes that close the gap.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "corpus %s (commit %s, built %s)\n", version, commit, date)
		if info := buildInfo(); info != "" {
			fmt.Fprintln(cmd.OutOrStdout(), info)
		}
	},
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("user", "", "Apply the saved assumptions and strategy of this user")
	pf.String("store", envOr("CORPUS_STORE", string(storage.KindMemory)), "Settings store (memory, badger, redis) [CORPUS_STORE]")
	pf.String("badger-path", envOr("CORPUS_BADGER_PATH", ""), "BadgerDB directory; empty keeps settings in memory [CORPUS_BADGER_PATH]")
	pf.String("redis-addr", envOr("CORPUS_REDIS_ADDR", "localhost:6379"), "Redis address [CORPUS_REDIS_ADDR]")

	rootCmd.AddCommand(
		calculateCmd,
		validateCmd,
		optimizeCmd,
		whatifCmd,
		compareCmd,
		breakEvenCmd,
		serveCmd,
		settingsCmd,
		versionCmd,
	)
}

// openRepository opens the settings store selected by the persistent flags
func openRepository(cmd *cobra.Command) (storage.Repository, error) {
	kind, _ := cmd.Flags().GetString("store")
	badgerPath, _ := cmd.Flags().GetString("badger-path")
	redisAddr, _ := cmd.Flags().GetString("redis-addr")
	return storage.Open(cmd.Context(), storage.Config{
		Kind:       storage.Kind(kind),
		BadgerPath: badgerPath,
		RedisAddr:  redisAddr,
	})
}

// loadPlan reads a plan file. With --user the user's saved settings fill the
// parameters the file leaves out.
func loadPlan(cmd *cobra.Command, path string) (*domain.Plan, error) {
	parser := config.NewInputParser()

	if user, _ := cmd.Flags().GetString("user"); user != "" {
		repo, err := openRepository(cmd)
		if err != nil {
			return nil, err
		}
		defer repo.Close()

		defaults, err := storage.PlanDefaults(cmd.Context(), repo, user, parser.Defaults)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings for %s: %w", user, err)
		}
		parser = parser.WithDefaults(defaults)
	}

	return parser.LoadFromFile(path)
}

// newEngine creates a calculation engine, logging through the standard
// logger when --debug is set.
func newEngine(cmd *cobra.Command) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
		engine.Debug = true
	}
	return engine
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
