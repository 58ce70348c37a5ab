package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/KaramelBytes/tidyset-cli/internal/config"
	"github.com/KaramelBytes/tidyset-cli/internal/engine"
	"github.com/KaramelBytes/tidyset-cli/internal/logging"
	"github.com/KaramelBytes/tidyset-cli/internal/session"
	"github.com/KaramelBytes/tidyset-cli/internal/source"
	"github.com/KaramelBytes/tidyset-cli/internal/utils"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Retry/HTTP flags (override config if set)
	flagHTTPTimeoutSec   int
	flagRetryMaxAttempts int
	flagRetryBaseDelayMs int
	flagRetryMaxDelayMs  int

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "tidyset",
	Short: "tidyset CLI: clean, impute and profile messy employee datasets",
	Long: `tidyset loads a loosely typed employee dataset (CSV, XLSX, a URL or the bundled sample),
cleans it with range filters and median salary imputation, and profiles the result with
grouped averages, a salary histogram and an experience/salary scatter sample.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tidyset/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP client timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxAttempts, "retry-max", 0, "max retry attempts on 429/5xx (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryBaseDelayMs, "retry-base-ms", 0, "base retry backoff in ms (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxDelayMs, "retry-max-ms", 0, "max retry backoff cap in ms (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands that need config report it themselves
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("retry-max") && flagRetryMaxAttempts > 0 {
		cfg.RetryMaxAttempts = flagRetryMaxAttempts
	}
	if f.Changed("retry-base-ms") && flagRetryBaseDelayMs > 0 {
		cfg.RetryBaseDelayMs = flagRetryBaseDelayMs
	}
	if f.Changed("retry-max-ms") && flagRetryMaxDelayMs > 0 {
		cfg.RetryMaxDelayMs = flagRetryMaxDelayMs
	}

	l, err := logging.New(cfg.LogLevel, cfg.LogFormat, debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v; logging disabled\n", err)
		return
	}
	logger = l
}

func requireConfig() error {
	if cfg == nil {
		return errors.New("configuration not loaded")
	}
	return nil
}

// openSession opens the workspace database. The returned func closes it.
func openSession() (*session.Session, func(), error) {
	if err := requireConfig(); err != nil {
		return nil, nil, err
	}
	if err := utils.EnsureDir(cfg.WorkspaceDir); err != nil {
		return nil, nil, err
	}
	eng, err := engine.OpenSQLite(cfg.SessionPath(), logger)
	if err != nil {
		return nil, nil, err
	}
	s, err := session.New(eng, logger.Named("session"))
	if err != nil {
		_ = eng.Close()
		return nil, nil, err
	}
	return s, func() { _ = eng.Close() }, nil
}

func newFetcher() *source.Fetcher {
	return source.NewFetcher(cfg.HTTPTimeout(), cfg.RetryMaxAttempts, cfg.RetryBaseDelay(), cfg.RetryMaxDelay())
}

// explain turns session sentinels into a next-step hint.
func explain(err error) error {
	switch {
	case errors.Is(err, session.ErrNoRawTable):
		return fmt.Errorf("%w (run: tidyset load <file|url|sample>)", err)
	case errors.Is(err, session.ErrNoCleanedTable):
		return fmt.Errorf("%w (run: tidyset clean)", err)
	}
	return err
}
