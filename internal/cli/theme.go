package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"taskflow/internal/config"
	"taskflow/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the color theme",
}

var themeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List available themes",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		executeThemeList(cfg.ThemeName, cmd.OutOrStdout())
		return nil
	},
}

var themeSetCmd = &cobra.Command{
	Use:   "set <theme>",
	Short: "Change the color theme",
	Long: `Change the color theme used by the CLI and the TUI.

Examples:
  taskflow theme set dracula
  taskflow theme set default`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeThemeSet(args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeListCmd, themeSetCmd)
}

func executeThemeList(current string, w io.Writer) {
	if current == "" {
		current = "default"
	}
	for _, name := range theme.ListThemes() {
		t, err := theme.GetTheme(name)
		if err != nil {
			continue
		}
		styles := theme.NewStyles(t)
		marker := " "
		if name == current {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\n", marker, styles.Info.Render(name))
	}
}

func executeThemeSet(name string, w io.Writer) error {
	t, err := theme.GetTheme(name)
	if err != nil {
		return err
	}
	if err := config.UpdateTheme(name); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	fmt.Fprintln(w, theme.NewStyles(t).Success.Render(fmt.Sprintf("✓ Theme set to %q", name)))
	return nil
}
