package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"taskflow/internal/home"
	"taskflow/internal/tui"
	"taskflow/internal/watcher"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the live Home screen",
	Long: `Open the interactive Home screen. It reloads every refresh_interval and,
when watch_db is on, whenever another process writes to the database.

Keys: 1-5 quick views, g grouping, space toggle, t tomorrow, x delete,
r reload, q quit. Press ? for the full list.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	r := home.NewReconciler(
		home.NewRepositoryStore(a.tasks, a.projects),
		home.WithLogger(a.logger),
		home.WithRefreshInterval(a.cfg.RefreshInterval),
		home.WithFilterStore(a.filterStore(true)),
	)

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	if a.cfg.WatchDB {
		w, err := watcher.New(a.db.Path(), r.Reload)
		if err != nil {
			a.logger.Warn("database watcher disabled", "error", err)
		} else {
			defer w.Close()
			go w.Run(ctx, func(err error) {
				a.logger.Warn("database watcher error", "error", err)
			})
		}
	}

	a.logger.Info("tui started", "db", a.db.Path(), "refresh", a.cfg.RefreshInterval, "watch_db", a.cfg.WatchDB)

	p := tea.NewProgram(tui.New(r, tui.WithTheme(a.theme)), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
