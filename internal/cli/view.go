package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"taskflow/internal/display"
	"taskflow/internal/domain"
	"taskflow/internal/home"
	"taskflow/internal/repository"
)

var viewOverwrite bool

var viewCmd = &cobra.Command{
	Use:     "view",
	Aliases: []string{"views"},
	Short:   "Manage saved views",
	Long: `A saved view is a named Home filter: quick view, project selection,
advanced filter, grouping mode and project order.

Examples:
  taskflow home --view upcoming --project Work --save
  taskflow view save "Work week"
  taskflow view apply "Work week"`,
}

var viewSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current Home filter as a view",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return executeViewSave(ctx, a, strings.Join(args, " "), viewOverwrite, cmd.OutOrStdout())
		})
	},
}

var viewListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved views",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return executeViewList(ctx, a, cmd.OutOrStdout())
		})
	},
}

var viewApplyCmd = &cobra.Command{
	Use:   "apply <view>",
	Short: "Make a saved view the current Home filter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return executeViewApply(ctx, a, args[0], cmd.OutOrStdout())
		})
	},
}

var viewDeleteCmd = &cobra.Command{
	Use:     "delete <view>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved view",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return executeViewDelete(ctx, a, args[0], cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.AddCommand(viewSaveCmd, viewListCmd, viewApplyCmd, viewDeleteCmd)

	viewSaveCmd.Flags().BoolVar(&viewOverwrite, "overwrite", false, "Replace a view with the same name")
}

func executeViewSave(ctx context.Context, a *app, name string, overwrite bool, w io.Writer) error {
	state, err := home.NewStateFilterStore(a.state).LoadFilterState(ctx)
	if err != nil {
		a.logger.Warn("saving default filter", "error", err)
	}

	name = strings.TrimSpace(name)
	existing, err := a.views.GetByName(ctx, name)
	switch {
	case err == nil && !overwrite:
		return fmt.Errorf("view %q already exists, use --overwrite to replace it", name)
	case err == nil:
		replaced := domain.NewSavedView(name, state)
		replaced.ID = existing.ID
		replaced.CreatedAt = existing.CreatedAt
		if err := a.views.Update(ctx, replaced); err != nil {
			return fmt.Errorf("failed to update view: %w", err)
		}
		fmt.Fprintln(w, a.styles.Success.Render(fmt.Sprintf("✓ Updated view %q: %s", name, replaced.GetFilterSummary())))
		return nil
	case !errors.Is(err, repository.ErrNotFound):
		return err
	}

	view := domain.NewSavedView(name, state)
	if err := a.views.Create(ctx, view); err != nil {
		return fmt.Errorf("failed to create view: %w", err)
	}
	fmt.Fprintln(w, a.styles.Success.Render(fmt.Sprintf("✓ Saved view %q: %s", name, view.GetFilterSummary())))
	return nil
}

func executeViewList(ctx context.Context, a *app, w io.Writer) error {
	views, err := a.views.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list views: %w", err)
	}
	if len(views) == 0 {
		fmt.Fprintln(w, a.styles.Muted.Render("No saved views. Create one with 'taskflow view save <name>'."))
		return nil
	}

	current, _ := home.NewStateFilterStore(a.state).LoadFilterState(ctx)

	fmt.Fprintln(w, a.styles.Title.Render(fmt.Sprintf("Saved views (%d)", len(views))))
	for _, v := range views {
		marker := " "
		if current.SelectedSavedViewID != nil && *current.SelectedSavedViewID == v.ID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s  %-20s %s\n",
			marker,
			a.styles.Muted.Render(display.ShortID(v.ID)),
			v.Name,
			a.styles.Muted.Render(v.GetFilterSummary()),
		)
	}
	return nil
}

func executeViewApply(ctx context.Context, a *app, ref string, w io.Writer) error {
	view, err := lookupView(ctx, a.views, ref)
	if err != nil {
		return err
	}

	snap, err := a.withReconciler(ctx, true, func(r *home.Reconciler) {
		r.ApplySavedView(*view)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, a.styles.Success.Render(fmt.Sprintf("✓ Applied view %q", view.Name)))
	renderHome(w, snap, a.styles, a.now())
	return nil
}

func executeViewDelete(ctx context.Context, a *app, ref string, w io.Writer) error {
	view, err := lookupView(ctx, a.views, ref)
	if err != nil {
		return err
	}
	if err := a.views.Delete(ctx, view.ID); err != nil {
		return fmt.Errorf("failed to delete view: %w", err)
	}
	fmt.Fprintln(w, a.styles.Success.Render(fmt.Sprintf("✓ Deleted view %q", view.Name)))
	return nil
}
