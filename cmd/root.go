// Package cmd implements the budgetboard CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetboard/internal/config"
	"github.com/theirongolddev/budgetboard/internal/locale"
	"github.com/theirongolddev/budgetboard/internal/logger"
	"github.com/theirongolddev/budgetboard/internal/session"
	"github.com/theirongolddev/budgetboard/internal/store"
)

var (
	flagConfig  string
	flagBackend string
	flagLocale  string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:           "budgetboard",
	Short:         "Personal budget dashboard",
	Long:          "Track income and expenses, fixed costs, saving goals and next month's plan.",
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.Path()+")")
	rootCmd.PersistentFlags().StringVarP(&flagBackend, "backend", "b", "", "Record store: sqlite, sheets, postgres or memory")
	rootCmd.PersistentFlags().StringVarP(&flagLocale, "locale", "l", "", "Display language: en or th")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfig reads the config file and applies the persistent flags.
func loadConfig() (config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return cfg, err
	}
	if flagBackend != "" {
		cfg.Store.Backend = flagBackend
	}
	if flagLocale != "" {
		cfg.General.Locale = flagLocale
	}
	return cfg, nil
}

func storeOptions(cfg config.Config) store.Options {
	return store.Options{
		Backend:         cfg.Store.Backend,
		SQLitePath:      cfg.Store.SQLitePath,
		PostgresURL:     cfg.Store.PostgresURL,
		SpreadsheetID:   cfg.Sheets.SpreadsheetID,
		CredentialsFile: cfg.Sheets.CredentialsFile,
		TabNames:        map[string]string{store.Transactions.Name: cfg.Sheets.TransactionsTab},
	}
}

// budget is what every command works with.
type budget struct {
	cfg  config.Config
	ctrl *session.Controller
	tr   *locale.Translator
	log  zerolog.Logger
	rs   store.RecordStore
}

func (b *budget) Close() error { return b.rs.Close() }

// openBudget connects to the configured store. Commands log to stderr at
// warn unless the config asks for more.
func openBudget(ctx context.Context) (*budget, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	level := cfg.General.LogLevel
	if level == "" {
		level = "warn"
	}
	return openBudgetWith(ctx, cfg, logger.New(level))
}

func openBudgetWith(ctx context.Context, cfg config.Config, log zerolog.Logger) (*budget, error) {
	if cfg.Store.Backend == store.BackendSQLite || cfg.Store.Backend == "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Store.SQLitePath), 0o750); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
	}
	rs, err := store.Open(ctx, storeOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Store.Backend, err)
	}
	log.Debug().Str("backend", cfg.Store.Backend).Msg("store opened")

	ctrl := session.New(rs, session.Options{
		TTL:    cfg.CacheTTL(),
		Payday: cfg.General.Payday,
		Logger: log,
	})
	return &budget{
		cfg:  cfg,
		ctrl: ctrl,
		tr:   locale.New(cfg.General.Locale),
		log:  log,
		rs:   rs,
	}, nil
}

// withBudget opens the store for the duration of fn.
func withBudget(cmd *cobra.Command, fn func(ctx context.Context, b *budget) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	b, err := openBudget(ctx)
	if err != nil {
		return err
	}
	defer b.Close()
	return fn(ctx, b)
}

func progress(format string, args ...any) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
