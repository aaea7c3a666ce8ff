package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetboard/internal/config"
	"github.com/theirongolddev/budgetboard/internal/logger"
	"github.com/theirongolddev/budgetboard/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Log lines on stderr would corrupt the alternate screen.
	log, closer, err := logger.NewFile(filepath.Join(config.DataDir(), "budgetboard.log"), cfg.General.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	b, err := openBudgetWith(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	// Force TrueColor so every background style produces ANSI codes.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(b.ctrl, tui.Options{
		Config:    cfg,
		NeedSetup: !config.Exists() && flagConfig == "",
		Logger:    log,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
