package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"taskflow/internal/display"
	"taskflow/internal/domain"
	"taskflow/internal/home"
)

var projectIcon string

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"projects"},
	Short:   "Manage projects",
	Long: `Create, list and delete projects. Every home section belongs to a project;
the Inbox always exists.`,
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a project",
	Long: `Create a project.

Examples:
  taskflow project add Work
  taskflow project add "Side Project" --icon rocket`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return executeProjectAdd(ctx, a, strings.Join(args, " "), projectIcon, cmd.OutOrStdout())
		})
	},
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects with their task counts",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return executeProjectList(ctx, a, cmd.OutOrStdout())
		})
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <project>",
	Short: "Delete a project",
	Long: `Delete a project. Its tasks are kept and show up under the project's
name until they are moved.`,
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return executeProjectDelete(ctx, a, args[0], cmd.OutOrStdout())
		})
	},
}

var orderCmd = &cobra.Command{
	Use:   "order <project>...",
	Short: "Set the order of project sections",
	Long: `Set the order of the project sections on the Home screen. Listed
projects come first, in the given order; the rest follow alphabetically.
Run with --reset to go back to alphabetical order.

Examples:
  taskflow order Work Errands
  taskflow order --reset`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reset, _ := cmd.Flags().GetBool("reset")
		if !reset && len(args) == 0 {
			return fmt.Errorf("give at least one project, or --reset")
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return executeOrder(ctx, a, args, cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.AddCommand(projectCmd, orderCmd)
	projectCmd.AddCommand(projectAddCmd, projectListCmd, projectDeleteCmd)

	projectAddCmd.Flags().StringVarP(&projectIcon, "icon", "i", domain.FolderIcon, "Project icon")
	orderCmd.Flags().Bool("reset", false, "Clear the custom order")
}

func executeProjectAdd(ctx context.Context, a *app, name, icon string, w io.Writer) error {
	project := domain.NewProject(strings.TrimSpace(name))
	project.Icon = icon

	if err := a.projects.Create(ctx, project); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Fprintln(w, a.styles.Success.Render(fmt.Sprintf("✓ Created project %q", project.Name)))
	fmt.Fprintf(w, "  %s %s\n", a.styles.Muted.Render("ID:"), display.ShortID(project.ID))
	return nil
}

func executeProjectList(ctx context.Context, a *app, w io.Writer) error {
	projects, err := a.projects.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	fmt.Fprintln(w, a.styles.Title.Render(fmt.Sprintf("Projects (%d)", len(projects))))
	for _, p := range projects {
		count, err := a.projects.GetTaskCount(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("failed to count tasks for %s: %w", p.Name, err)
		}
		name := fmt.Sprintf("%-24s", p.Name)
		if p.IsInbox {
			name = a.styles.InboxHeader.UnsetMarginTop().Render(name)
		}
		fmt.Fprintf(w, "  %s  %s %s\n",
			a.styles.Muted.Render(display.ShortID(p.ID)),
			name,
			a.styles.Muted.Render(fmt.Sprintf("%d tasks", count)),
		)
	}
	return nil
}

func executeProjectDelete(ctx context.Context, a *app, ref string, w io.Writer) error {
	project, err := lookupProject(ctx, a.projects, ref)
	if err != nil {
		return err
	}
	if domain.IsInboxProject(*project, nil) {
		return fmt.Errorf("the Inbox cannot be deleted")
	}

	if err := a.projects.Delete(ctx, project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	fmt.Fprintln(w, a.styles.Success.Render(fmt.Sprintf("✓ Deleted project %q", project.Name)))
	return nil
}

// executeOrder persists the custom project order; no refs resets it.
func executeOrder(ctx context.Context, a *app, refs []string, w io.Writer) error {
	ids, err := lookupProjectIDs(ctx, a.projects, refs)
	if err != nil {
		return err
	}

	snap, err := a.withReconciler(ctx, true, func(r *home.Reconciler) {
		r.SetCustomProjectOrder(ids)
	})
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		fmt.Fprintln(w, a.styles.Success.Render("✓ Projects are back in alphabetical order"))
		return nil
	}
	names := make([]string, 0, len(ids))
	for _, id := range snap.Filter.CustomProjectOrderIDs {
		for _, p := range snap.Projects {
			if p.ID == id {
				names = append(names, p.Name)
			}
		}
	}
	fmt.Fprintln(w, a.styles.Success.Render("✓ Project order: "+strings.Join(names, ", ")))
	return nil
}
