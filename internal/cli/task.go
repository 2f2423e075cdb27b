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
	"taskflow/internal/query"
)

var doneCmd = &cobra.Command{
	Use:   "done <task>",
	Short: "Toggle a task's completion",
	Long: `Mark a task complete, or reopen it if it is already complete.

The task may be given by ID, ID prefix or exact name.

Examples:
  taskflow done 3f2a9c1e
  taskflow done "File taxes"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return executeDone(ctx, a, args[0], cmd.OutOrStdout())
		})
	},
}

var rescheduleCmd = &cobra.Command{
	Use:   "reschedule <task> <date>",
	Short: "Change a task's due date",
	Long: `Change a task's due date. Use "none" to remove it.

Examples:
  taskflow reschedule 3f2a9c1e tomorrow
  taskflow reschedule "Write report" +3d
  taskflow reschedule 3f2a9c1e "2025-06-20 18:00"
  taskflow reschedule 3f2a9c1e none`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return executeReschedule(ctx, a, args[0], args[1], cmd.OutOrStdout())
		})
	},
}

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <task>",
	Short: "Delete a task",
	Long: `Delete a task permanently.

Examples:
  taskflow delete 3f2a9c1e
  taskflow delete "Old idea" --force`,
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return executeDelete(ctx, a, args[0], deleteForce, cmd.InOrStdin(), cmd.OutOrStdout())
		})
	},
}

var (
	updateName     string
	updatePriority string
	updateType     string
	updateProject  string
	updateTags     []string
)

var updateCmd = &cobra.Command{
	Use:   "update <task>",
	Short: "Edit a task",
	Long: `Edit a task's name, priority, type, project or tags. Only the flags you
give are changed.

Examples:
  taskflow update 3f2a9c1e --priority max
  taskflow update "Stretch" --type evening
  taskflow update 3f2a9c1e --project Work --tag deep,focus`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		edit := taskEdit{
			name:     changed(flags.Changed("name"), updateName),
			priority: changed(flags.Changed("priority"), updatePriority),
			taskType: changed(flags.Changed("type"), updateType),
			project:  changed(flags.Changed("project"), updateProject),
			tags:     updateTags,
			setTags:  flags.Changed("tag"),
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return executeUpdate(ctx, a, args[0], edit, cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.AddCommand(doneCmd, rescheduleCmd, deleteCmd, updateCmd)

	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")

	f := updateCmd.Flags()
	f.StringVarP(&updateName, "name", "n", "", "New name")
	f.StringVarP(&updatePriority, "priority", "p", "", "New priority (none, low, high, max)")
	f.StringVar(&updateType, "type", "", "New type (morning, evening, upcoming, inbox)")
	f.StringVarP(&updateProject, "project", "P", "", "Move to project (name or ID)")
	f.StringSliceVarP(&updateTags, "tag", "t", nil, "Replace tags")
}

// withApp opens the app for one command and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func executeDone(ctx context.Context, a *app, ref string, w io.Writer) error {
	task, err := lookupTask(ctx, a.tasks, ref)
	if err != nil {
		return err
	}

	if _, err := a.withReconciler(ctx, false, func(r *home.Reconciler) {
		r.ToggleCompletion(task.ID)
	}); err != nil {
		return err
	}

	if task.IsComplete {
		fmt.Fprintln(w, a.styles.Warning.Render(fmt.Sprintf("○ Reopened %q", task.Name)))
	} else {
		msg := fmt.Sprintf("✓ Completed %q", task.Name)
		if p := task.Priority.Score(); p > 0 {
			msg += fmt.Sprintf(" (+%d)", p)
		}
		fmt.Fprintln(w, a.styles.Success.Render(msg))
	}
	return nil
}

func executeReschedule(ctx context.Context, a *app, ref, when string, w io.Writer) error {
	task, err := lookupTask(ctx, a.tasks, ref)
	if err != nil {
		return err
	}
	due, err := query.ParseDate(when, a.now())
	if err != nil {
		return err
	}

	if _, err := a.withReconciler(ctx, false, func(r *home.Reconciler) {
		r.Reschedule(task.ID, due)
	}); err != nil {
		return err
	}

	if due == nil {
		fmt.Fprintln(w, a.styles.Success.Render(fmt.Sprintf("✓ Removed the due date of %q", task.Name)))
		return nil
	}
	fmt.Fprintln(w, a.styles.Success.Render(fmt.Sprintf("✓ %q is due %s", task.Name, display.FormatDueDate(due, a.now()))))
	return nil
}

func executeDelete(ctx context.Context, a *app, ref string, force bool, in io.Reader, w io.Writer) error {
	task, err := lookupTask(ctx, a.tasks, ref)
	if err != nil {
		return err
	}

	if !force {
		fmt.Fprintf(w, "Delete %q? (y/N): ", task.Name)
		var answer string
		fmt.Fscanln(in, &answer)
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(w, a.styles.Muted.Render("Cancelled."))
			return nil
		}
	}

	if _, err := a.withReconciler(ctx, false, func(r *home.Reconciler) {
		r.Delete(task.ID)
	}); err != nil {
		return err
	}

	fmt.Fprintln(w, a.styles.Success.Render(fmt.Sprintf("✓ Deleted %q", task.Name)))
	return nil
}

// taskEdit lists the fields to change; nil leaves a field alone.
type taskEdit struct {
	name     *string
	priority *string
	taskType *string
	project  *string
	tags     []string
	setTags  bool
}

func changed(set bool, value string) *string {
	if !set {
		return nil
	}
	return &value
}

func applyUpdate(ctx context.Context, a *app, t *domain.Task, e taskEdit) error {
	if e.name != nil {
		t.Name = strings.TrimSpace(*e.name)
	}
	if e.priority != nil {
		p, err := domain.ParsePriority(*e.priority)
		if err != nil {
			return err
		}
		t.Priority = p
	}
	if e.taskType != nil {
		tt, err := domain.ParseTaskType(*e.taskType)
		if err != nil {
			return err
		}
		t.Type = tt
	}
	if e.project != nil {
		p, err := lookupProject(ctx, a.projects, *e.project)
		if err != nil {
			return err
		}
		t.ProjectID = p.ID
		t.LegacyProjectName = ""
	}
	if e.setTags {
		t.Tags = append([]string{}, e.tags...)
	}
	return nil
}

func executeUpdate(ctx context.Context, a *app, ref string, e taskEdit, w io.Writer) error {
	task, err := lookupTask(ctx, a.tasks, ref)
	if err != nil {
		return err
	}
	if err := applyUpdate(ctx, a, task, e); err != nil {
		return err
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if _, err := a.withReconciler(ctx, false, func(r *home.Reconciler) {
		r.UpdateTask(*task)
	}); err != nil {
		return err
	}

	fmt.Fprintln(w, a.styles.Success.Render(fmt.Sprintf("✓ Updated %q", task.Name)))
	return nil
}
