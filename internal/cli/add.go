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

type addOptions struct {
	name     string
	project  string
	priority string
	taskType string
	due      string
	tags     []string
	category string
	context  string
	energy   string
	estimate *int
	after    []string
}

var (
	addOpts     addOptions
	addEstimate int
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new task",
	Long: `Add a new task. Without --project it lands in the Inbox.

Due dates accept ISO dates (2025-06-12, 2025-06-12 18:00), keywords (today,
tomorrow) and offsets (+3d, 2w).

Examples:
  taskflow add "File taxes"
  taskflow add "Stretch" --type morning --due today
  taskflow add "Fix login bug" --priority high --project Backend --tag bug
  taskflow add "Write report" --due +2d --estimate 90 --energy high
  taskflow add "Ship release" --after 3f2a9c1e`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	f := addCmd.Flags()
	f.StringVarP(&addOpts.project, "project", "P", "", "Project name or ID (default Inbox)")
	f.StringVarP(&addOpts.priority, "priority", "p", "low", "Task priority (none, low, high, max)")
	f.StringVar(&addOpts.taskType, "type", "inbox", "Task type (morning, evening, upcoming, inbox)")
	f.StringVarP(&addOpts.due, "due", "d", "", "Due date")
	f.StringSliceVarP(&addOpts.tags, "tag", "t", nil, "Comma-separated tags")
	f.StringVar(&addOpts.category, "category", "", "Category")
	f.StringVar(&addOpts.context, "context", "", "Context, e.g. @home")
	f.StringVar(&addOpts.energy, "energy", "", "Energy needed (low, medium, high)")
	f.IntVar(&addEstimate, "estimate", 0, "Estimate in minutes")
	f.StringSliceVar(&addOpts.after, "after", nil, "Tasks this one depends on (ID or name)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	opts := addOpts
	opts.name = strings.Join(args, " ")
	if cmd.Flags().Changed("estimate") {
		opts.estimate = &addEstimate
	}

	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	return executeAdd(ctx, a, opts, cmd.OutOrStdout())
}

// executeAdd creates the task through the Reconciler, so it is placed and
// confirmed the same way an interactive add is.
func executeAdd(ctx context.Context, a *app, opts addOptions, w io.Writer) error {
	task, err := buildTask(ctx, a, opts)
	if err != nil {
		return err
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if _, err := a.withReconciler(ctx, false, func(r *home.Reconciler) {
		r.AddTask(*task)
	}); err != nil {
		return err
	}

	fmt.Fprintln(w, a.styles.Success.Render(fmt.Sprintf("✓ Added %q", task.Name)))
	fmt.Fprintf(w, "  %s %s\n", a.styles.Muted.Render("ID:"), display.ShortID(task.ID))
	if task.DueDate != nil {
		fmt.Fprintf(w, "  %s %s\n", a.styles.Muted.Render("Due:"), display.FormatDueDate(task.DueDate, a.now()))
	}
	return nil
}

func buildTask(ctx context.Context, a *app, opts addOptions) (*domain.Task, error) {
	task := domain.NewTask(strings.TrimSpace(opts.name))
	now := a.now()
	task.CreatedAt, task.UpdatedAt = now, now

	task.ProjectID = a.inbox.ID
	if opts.project != "" {
		p, err := lookupProject(ctx, a.projects, opts.project)
		if err != nil {
			return nil, err
		}
		task.ProjectID = p.ID
	}

	var err error
	if task.Priority, err = domain.ParsePriority(opts.priority); err != nil {
		return nil, err
	}
	if opts.taskType != "" {
		if task.Type, err = domain.ParseTaskType(opts.taskType); err != nil {
			return nil, err
		}
	}
	if opts.due != "" {
		if task.DueDate, err = query.ParseDate(opts.due, now); err != nil {
			return nil, err
		}
	}

	task.Tags = append(task.Tags, opts.tags...)
	task.Category = opts.category
	task.Context = opts.context
	task.Energy = domain.EnergyLevel(strings.ToLower(opts.energy))
	if opts.estimate != nil {
		est := *opts.estimate
		task.EstimateMinutes = &est
	}

	for _, ref := range opts.after {
		dep, err := lookupTask(ctx, a.tasks, ref)
		if err != nil {
			return nil, err
		}
		task.DependencyIDs = append(task.DependencyIDs, dep.ID)
	}

	return task, nil
}
