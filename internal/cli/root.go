package cli

import (
	"fmt"

	"github.com/MikeBiancalana/qeydar/internal/calendar"
	"github.com/MikeBiancalana/qeydar/internal/config"
	"github.com/MikeBiancalana/qeydar/internal/db"
	"github.com/MikeBiancalana/qeydar/internal/logger"
	"github.com/MikeBiancalana/qeydar/internal/storage"
	"github.com/MikeBiancalana/qeydar/internal/sync"
	"github.com/MikeBiancalana/qeydar/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// registry resolves calendar names for every command. Tests swap it for one
// with a fixed clock.
var registry = calendar.DefaultRegistry()

// NewRootCmd builds the qd command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "qd",
		Short: "Qeydar - calendar-agnostic date picker",
		Long: `A terminal date picker that works in the Jalali and Gregorian calendars.

Run without arguments to open the interactive demo, or use the subcommands
to convert dates and run text through the picker's correction rules.`,
		SilenceUsage: true,
		RunE:         runTUI,
	}

	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newCorrectCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigureCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// runTUI launches the interactive demo
func runTUI(cmd *cobra.Command, args []string) error {
	// Logging to stderr would corrupt the screen
	logCfg := logger.ConfigFromEnv()
	logCfg.TUIMode = true
	if err := logger.InitializeWithConfig(logCfg); err != nil {
		return err
	}
	defer logger.Close()

	settingsPath, err := config.SettingsPath()
	if err != nil {
		return fmt.Errorf("failed to get settings path: %w", err)
	}
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return err
	}

	model, err := tui.NewModel(settings, registry)
	if err != nil {
		return err
	}
	model.SetSettingsPath(settingsPath)

	history, closeHistory, err := openHistory()
	if err != nil {
		return err
	}
	defer closeHistory()
	model.SetHistory(history)

	watcher, err := sync.NewWatcher(settingsPath)
	if err != nil {
		// Run without hot reload
		logger.Warn("settings watcher unavailable", "error", err)
	} else {
		defer watcher.Stop()
		model.SetWatcher(watcher)
	}

	logger.Info("starting demo", "settings", settingsPath, "calendar", settings.Calendar, "mode", settings.Mode)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()

	stats := history.Stats()
	logger.Info("history queries",
		"count", stats.Count,
		"avg_ms", stats.AvgDuration().Milliseconds(),
		"max_ms", stats.MaxDuration.Milliseconds(),
		"slow", stats.SlowOps)

	return err
}

// openHistory opens the emission history in the data directory
func openHistory() (*db.HistoryRepository, func(), error) {
	dbPath, err := config.DatabasePath()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database path: %w", err)
	}

	database, err := storage.NewDatabase(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	closeFn := func() {
		if err := database.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}
	return db.NewHistoryRepository(database, logger.GetLogger()), closeFn, nil
}

// lookupAdapter resolves a calendar name against the registry
func lookupAdapter(name string) (calendar.Adapter, error) {
	system, err := calendar.ParseSystem(name)
	if err != nil {
		return nil, err
	}
	return registry.Lookup(system)
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
