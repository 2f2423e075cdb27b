package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"taskflow/internal/domain"
	"taskflow/internal/query"
	"taskflow/internal/repository"
)

type listOptions struct {
	project   string
	status    string
	priority  string
	tags      []string
	dueFrom   string
	dueTo     string
	sortBy    string
	sortOrder string
	limit     int
	offset    int
}

var listOpts listOptions

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks outside the Home layout",
	Long: `List stored tasks with plain filters, sorting and paging. Use 'taskflow
home' for the Home screen's selection and grouping.

Examples:
  taskflow list
  taskflow list --status open --sort due_date
  taskflow list --project Work --priority high
  taskflow list --due-from today --due-to +7d
  taskflow list --sort name --order asc --limit 20 --offset 20`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return executeList(ctx, a, listOpts, cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	f := listCmd.Flags()
	f.StringVarP(&listOpts.project, "project", "P", "", "Filter by project (name or ID)")
	f.StringVarP(&listOpts.status, "status", "s", "all", "Filter by status (open, done, all)")
	f.StringVarP(&listOpts.priority, "priority", "p", "", "Filter by priority")
	f.StringSliceVarP(&listOpts.tags, "tag", "t", nil, "Filter by tags (all must match)")
	f.StringVar(&listOpts.dueFrom, "due-from", "", "Due on or after this date")
	f.StringVar(&listOpts.dueTo, "due-to", "", "Due before this date")
	f.StringVar(&listOpts.sortBy, "sort", "created_at", "Sort by (created_at, updated_at, priority, due_date, name)")
	f.StringVar(&listOpts.sortOrder, "order", "desc", "Sort order (asc, desc)")
	f.IntVarP(&listOpts.limit, "limit", "l", 0, "Maximum number of tasks (0 = no limit)")
	f.IntVar(&listOpts.offset, "offset", 0, "Skip this many tasks")
}

func buildTaskFilter(ctx context.Context, a *app, opts listOptions) (repository.TaskFilter, error) {
	filter := repository.TaskFilter{
		Tags:      opts.tags,
		SortBy:    opts.sortBy,
		SortOrder: opts.sortOrder,
		Limit:     opts.limit,
		Offset:    opts.offset,
	}

	if opts.project != "" {
		p, err := lookupProject(ctx, a.projects, opts.project)
		if err != nil {
			return filter, err
		}
		filter.ProjectID = &p.ID
	}

	switch strings.ToLower(opts.status) {
	case "", "all":
	case "open":
		open := false
		filter.IsComplete = &open
	case "done":
		done := true
		filter.IsComplete = &done
	default:
		return filter, fmt.Errorf("unknown status %q: use open, done or all", opts.status)
	}

	if opts.priority != "" {
		p, err := domain.ParsePriority(opts.priority)
		if err != nil {
			return filter, err
		}
		filter.Priority = p
	}

	now := a.now()
	var err error
	if opts.dueFrom != "" {
		if filter.DueFrom, err = query.ParseDate(opts.dueFrom, now); err != nil {
			return filter, err
		}
	}
	if opts.dueTo != "" {
		if filter.DueTo, err = query.ParseDate(opts.dueTo, now); err != nil {
			return filter, err
		}
	}

	return filter, nil
}

func executeList(ctx context.Context, a *app, opts listOptions, w io.Writer) error {
	filter, err := buildTaskFilter(ctx, a, opts)
	if err != nil {
		return err
	}

	tasks, err := a.tasks.List(ctx, filter)
	if err != nil {
		return err
	}
	total, err := a.tasks.Count(ctx, filter)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Fprintln(w, a.styles.Muted.Render("No tasks found."))
		return nil
	}

	now := a.now()
	fmt.Fprintln(w, a.styles.Title.Render(fmt.Sprintf("Tasks (%d of %d)", len(tasks), total)))
	for _, t := range tasks {
		fmt.Fprintln(w, renderTaskLine(*t, a.styles, now))
	}
	return nil
}
