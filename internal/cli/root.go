package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"taskflow/internal/config"
	"taskflow/internal/theme"
)

var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "TaskFlow - plan today, see what is overdue, clear your inbox",
	Long: `TaskFlow is a command-line task manager built around a Home screen: an
Inbox, overdue work grouped by project, and the rest of your day grouped by
project in the order you choose.

Run 'taskflow home' for a snapshot or 'taskflow tui' for the live screen.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		displayWelcome(cmd.OutOrStdout())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func displayWelcome(w io.Writer) {
	cfg, err := config.LoadConfig()
	if err != nil {
		// fallback to default
		cfg = config.GetDefaultConfig()
	}

	themeObj, err := theme.Resolve(cfg.ThemeName)
	if err != nil {
		themeObj = theme.DefaultTheme()
	}

	styles := theme.NewStyles(themeObj)

	title := styles.Title.Render(`
		------------------------------------------------------

		                T A S K F L O W

		------------------------------------------------------
	`)
	subtitle := styles.Muted.Render("Manage your days like never before <3")

	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, subtitle)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'taskflow --help' to see available commands.")
	fmt.Fprintln(w)
}
