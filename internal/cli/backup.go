package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"taskflow/internal/export"
)

var (
	exportFile     string
	importStrategy string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a full JSON backup",
	Long: `Write every project, task and saved view as one JSON document. The
result can be loaded again with 'taskflow import'.

For a rendering of the Home screen use 'taskflow home --output json'.

Examples:
  taskflow export > backup.json
  taskflow export --file backup.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if exportFile == "" {
				return executeExport(ctx, a, cmd.OutOrStdout())
			}
			f, err := os.Create(exportFile)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", exportFile, err)
			}
			if err := executeExport(ctx, a, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.styles.Success.Render("✓ Backup written to "+exportFile))
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore a JSON backup",
	Long: `Restore a backup written by 'taskflow export'. Existing records are kept
by default; use --strategy overwrite to replace them.

Examples:
  taskflow import backup.json
  taskflow import backup.json --strategy overwrite`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strategy, err := export.ParseConflictStrategy(importStrategy)
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		return withApp(cmd, func(ctx context.Context, a *app) error {
			return executeImport(ctx, a, f, strategy, cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)

	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "Write to this file instead of stdout")
	importCmd.Flags().StringVar(&importStrategy, "strategy", "skip", "Conflict strategy (skip, overwrite)")
}

func executeExport(ctx context.Context, a *app, w io.Writer) error {
	return export.NewJSONExporter(a.projects, a.tasks, a.views).CreateFullBackupToWriter(ctx, w)
}

func executeImport(ctx context.Context, a *app, r io.Reader, strategy export.ConflictStrategy, w io.Writer) error {
	result, err := export.NewImporter(a.projects, a.tasks, a.views).RestoreBackup(ctx, r, strategy)
	if err != nil {
		return err
	}
	a.logger.Info("backup restored", "created", result.Created, "updated", result.Updated, "skipped", result.Skipped)
	fmt.Fprintln(w, a.styles.Success.Render(fmt.Sprintf("✓ Imported: %d created, %d updated, %d skipped",
		result.Created, result.Updated, result.Skipped)))
	return nil
}
