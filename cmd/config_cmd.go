package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetboard/internal/config"
	"github.com/theirongolddev/budgetboard/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Locale:      %s\n", cfg.General.Locale)
	fmt.Printf("    Payday:      %d\n", cfg.General.Payday)
	fmt.Printf("    Cache TTL:   %s\n", cfg.CacheTTL())
	fmt.Println()

	fmt.Println("  [Store]")
	fmt.Printf("    Backend:     %s\n", cfg.Store.Backend)
	switch cfg.Store.Backend {
	case store.BackendSheets:
		fmt.Printf("    Spreadsheet: %s\n", orNotSet(cfg.Sheets.SpreadsheetID))
		fmt.Printf("    Credentials: %s\n", orNotSet(cfg.Sheets.CredentialsFile))
		fmt.Printf("    Entries tab: %s\n", cfg.Sheets.TransactionsTab)
	case store.BackendPostgres:
		fmt.Printf("    URL:         %s\n", maskSecret(cfg.Store.PostgresURL))
	default:
		fmt.Printf("    SQLite:      %s\n", cfg.Store.SQLitePath)
	}
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:     %s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Println("  [Export]")
	fmt.Printf("    Directory:   %s\n", orNotSet(cfg.Export.Dir))
	fmt.Printf("    GCS bucket:  %s\n", orNotSet(cfg.Export.GCSBucket))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:       %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `budgetboard setup` to reconfigure.")
	return nil
}

func orNotSet(s string) string {
	if s == "" {
		return "not set"
	}
	return s
}

func maskSecret(s string) string {
	if s == "" {
		return "not set"
	}
	if len(s) > 16 {
		return s[:12] + "..." + s[len(s)-4:]
	}
	return "****"
}
