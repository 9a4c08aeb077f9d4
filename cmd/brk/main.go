package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Brasil-Rental-Karts/brk-cli/internal/api"
	"github.com/Brasil-Rental-Karts/brk-cli/internal/cmd"
	"github.com/Brasil-Rental-Karts/brk-cli/internal/config"
	"github.com/Brasil-Rental-Karts/brk-cli/internal/logging"
	"github.com/Brasil-Rental-Karts/brk-cli/internal/prefs"
	"github.com/Brasil-Rental-Karts/brk-cli/internal/ui"
)

func main() {
	root := &cobra.Command{
		Use:   "brk",
		Short: "BRK - championship admin console",
		Long:  "brk: manage championships, seasons, categories, stages, registrations, penalties and staff.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.LoginCmd())
	root.AddCommand(cmd.ChampionshipsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly.
	// Must be set before any lipgloss style initialization.
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("not logged in, run 'brk login' first: %w", err)
		}
		return err
	}

	log, err := logging.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	prefsPath := prefs.DefaultPath()
	client := api.NewClient(cfg.Endpoint(api.DefaultBaseURL), cfg.APIKey).WithLogger(log)
	app := ui.NewApp(client, cfg, ui.AppOptions{
		Prefs:     prefs.Load(prefsPath),
		PrefsPath: prefsPath,
		Logger:    log,
	})

	log.Info("console started", zap.String("endpoint", cfg.Endpoint(api.DefaultBaseURL)))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithFilter(app.QuitFilter()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
