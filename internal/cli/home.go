package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"taskflow/internal/domain"
	"taskflow/internal/export"
	"taskflow/internal/home"
	"taskflow/internal/query"
)

// homeOptions holds the home command's flags. Pointer fields are set only
// when the flag was given, so unset flags keep the persisted filter.
type homeOptions struct {
	view          string
	group         string
	projects      []string
	savedView     string
	showCompleted *bool
	clear         bool
	output        string
	save          bool

	priorities  []string
	tags        []string
	tagMode     string
	categories  []string
	contexts    []string
	energy      []string
	hasDue      *bool
	hasEstimate *bool
	blocked     *bool
	dueFrom     string
	dueTo       string
	query       string
}

var (
	homeOpts          homeOptions
	homeShowCompleted bool
	homeHasDue        bool
	homeHasEstimate   bool
	homeBlocked       bool
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the Home screen",
	Long: `Show the Home screen: the Inbox, overdue tasks and the rest of the current
quick view grouped by project.

Flags adjust the filter for this run only, unless --save is given. Without
flags the last saved filter is used.

Examples:
  taskflow home
  taskflow home --view upcoming --group projects
  taskflow home --project Work --project Errands
  taskflow home --priority high --priority max --tag deep --tag-mode all
  taskflow home -q 'priority:high,max -has:due @~work'
  taskflow home --saved-view Focus --output markdown
  taskflow home --view evening --save`,
	Args: cobra.NoArgs,
	RunE: runHome,
}

func init() {
	rootCmd.AddCommand(homeCmd)

	f := homeCmd.Flags()
	f.StringVarP(&homeOpts.view, "view", "v", "", "Quick view (today, upcoming, done, morning, evening)")
	f.StringVarP(&homeOpts.group, "group", "g", "", "Grouping mode (overdue, projects)")
	f.StringArrayVarP(&homeOpts.projects, "project", "P", nil, "Only show these projects (name or ID, repeatable)")
	f.StringVar(&homeOpts.savedView, "saved-view", "", "Apply a saved view first")
	f.BoolVar(&homeShowCompleted, "show-completed", false, "Show completed tasks inline")
	f.BoolVar(&homeOpts.clear, "clear", false, "Clear project and advanced filters")
	f.StringVarP(&homeOpts.output, "output", "o", "text", "Output format (text, json, yaml, markdown)")
	f.BoolVar(&homeOpts.save, "save", false, "Keep the resulting filter for later runs")

	f.StringSliceVarP(&homeOpts.priorities, "priority", "p", nil, "Only these priorities (none, low, high, max)")
	f.StringSliceVarP(&homeOpts.tags, "tag", "t", nil, "Only tasks with these tags")
	f.StringVar(&homeOpts.tagMode, "tag-mode", "any", "Tag matching (any, all)")
	f.StringSliceVar(&homeOpts.categories, "category", nil, "Only these categories")
	f.StringSliceVar(&homeOpts.contexts, "context", nil, "Only these contexts")
	f.StringSliceVar(&homeOpts.energy, "energy", nil, "Only these energy levels (low, medium, high)")
	f.BoolVar(&homeHasDue, "has-due", false, "Only tasks with (or, =false, without) a due date")
	f.BoolVar(&homeHasEstimate, "has-estimate", false, "Only tasks with (or, =false, without) an estimate")
	f.BoolVar(&homeBlocked, "blocked", false, "Only tasks with (or, =false, without) dependencies")
	f.StringVar(&homeOpts.dueFrom, "due-from", "", "Due on or after this date")
	f.StringVar(&homeOpts.dueTo, "due-to", "", "Due on or before this date")
	f.StringVarP(&homeOpts.query, "query", "q", "", "Filter query, e.g. 'priority:high tag:deep @work due:today..+7d'")
}

func runHome(cmd *cobra.Command, args []string) error {
	opts := homeOpts
	flags := cmd.Flags()
	if flags.Changed("show-completed") {
		opts.showCompleted = &homeShowCompleted
	}
	if flags.Changed("has-due") {
		opts.hasDue = &homeHasDue
	}
	if flags.Changed("has-estimate") {
		opts.hasEstimate = &homeHasEstimate
	}
	if flags.Changed("blocked") {
		opts.blocked = &homeBlocked
	}

	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	return executeHome(ctx, a, opts, cmd.OutOrStdout())
}

func executeHome(ctx context.Context, a *app, opts homeOptions, w io.Writer) error {
	format, err := export.ParseFormat(opts.output)
	if err != nil {
		return err
	}

	intents, err := homeIntents(ctx, a, opts)
	if err != nil {
		return err
	}

	snap, err := a.withReconciler(ctx, opts.save, func(r *home.Reconciler) {
		for _, intent := range intents {
			intent(r)
		}
	})
	if err != nil {
		return err
	}

	if format == export.FormatText {
		renderHome(w, snap, a.styles, a.now())
		return nil
	}
	return export.WriteHome(w, format, export.NewHomeExport(snap, a.now()))
}

// homeIntents validates every flag up front and returns the filter intents
// to post, saved view first so the other flags refine it.
func homeIntents(ctx context.Context, a *app, opts homeOptions) ([]func(*home.Reconciler), error) {
	var intents []func(*home.Reconciler)

	if opts.savedView != "" {
		view, err := lookupView(ctx, a.views, opts.savedView)
		if err != nil {
			return nil, err
		}
		intents = append(intents, func(r *home.Reconciler) { r.ApplySavedView(*view) })
	}

	if opts.view != "" {
		v, ok := domain.ParseQuickView(opts.view)
		if !ok {
			return nil, fmt.Errorf("unknown view %q: use today, upcoming, done, morning or evening", opts.view)
		}
		intents = append(intents, func(r *home.Reconciler) { r.SetQuickView(v) })
	}

	if opts.group != "" {
		mode, ok := domain.ParseGroupingMode(opts.group)
		if !ok {
			return nil, fmt.Errorf("unknown grouping %q: use overdue or projects", opts.group)
		}
		intents = append(intents, func(r *home.Reconciler) { r.SetProjectGroupingMode(mode) })
	}

	if opts.clear {
		intents = append(intents, func(r *home.Reconciler) {
			r.ClearProjectFilters()
			r.ApplyAdvancedFilter(nil)
		})
	}

	if len(opts.projects) > 0 {
		ids, err := lookupProjectIDs(ctx, a.projects, opts.projects)
		if err != nil {
			return nil, err
		}
		intents = append(intents, func(r *home.Reconciler) { r.SelectProjects(ids) })
	}

	adv, err := buildAdvancedFilter(opts, a)
	if err != nil {
		return nil, err
	}
	if opts.query != "" {
		var ids []uuid.UUID
		if adv, ids, err = applyQuery(ctx, a, adv, opts); err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			intents = append(intents, func(r *home.Reconciler) { r.SelectProjects(ids) })
		}
	}
	if adv != nil {
		intents = append(intents, func(r *home.Reconciler) { r.ApplyAdvancedFilter(adv) })
	}

	if opts.showCompleted != nil {
		show := *opts.showCompleted
		intents = append(intents, func(r *home.Reconciler) { r.SetShowCompletedInline(show) })
	}

	return intents, nil
}

// buildAdvancedFilter returns nil when no advanced flag was given.
func buildAdvancedFilter(opts homeOptions, a *app) (*domain.AdvancedFilter, error) {
	f := &domain.AdvancedFilter{
		Categories:      opts.categories,
		Contexts:        opts.contexts,
		Tags:            opts.tags,
		RequireDueDate:  opts.hasDue,
		HasEstimate:     opts.hasEstimate,
		HasDependencies: opts.blocked,
	}

	for _, s := range opts.priorities {
		p, err := domain.ParsePriority(s)
		if err != nil {
			return nil, err
		}
		f.Priorities = append(f.Priorities, p)
	}

	for _, s := range opts.energy {
		e := domain.EnergyLevel(strings.ToLower(strings.TrimSpace(s)))
		switch e {
		case domain.EnergyLow, domain.EnergyMedium, domain.EnergyHigh:
			f.EnergyLevels = append(f.EnergyLevels, e)
		default:
			return nil, fmt.Errorf("unknown energy level %q: use low, medium or high", s)
		}
	}

	switch strings.ToLower(opts.tagMode) {
	case "", "any":
		f.TagMatchMode = domain.TagMatchAny
	case "all":
		f.TagMatchMode = domain.TagMatchAll
	default:
		return nil, fmt.Errorf("unknown tag mode %q: use any or all", opts.tagMode)
	}

	if opts.dueFrom != "" || opts.dueTo != "" {
		now := a.now()
		r := &domain.DateRange{}
		var err error
		if opts.dueFrom != "" {
			if r.Start, err = query.ParseDate(opts.dueFrom, now); err != nil {
				return nil, err
			}
		}
		if opts.dueTo != "" {
			if r.End, err = query.ParseDate(opts.dueTo, now); err != nil {
				return nil, err
			}
		}
		f.DateRange = r
	}

	if f.IsEmpty() {
		return nil, nil
	}
	return f, nil
}

// applyQuery adds the terms of opts.query to base. Project mentions come back
// as ids for the project selection.
func applyQuery(ctx context.Context, a *app, base *domain.AdvancedFilter, opts homeOptions) (*domain.AdvancedFilter, []uuid.UUID, error) {
	parsed, err := query.ParseQuery(opts.query)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid query: %w", err)
	}

	f := base
	if f == nil {
		f = &domain.AdvancedFilter{TagMatchMode: domain.TagMatchAny}
		if strings.EqualFold(opts.tagMode, "all") {
			f.TagMatchMode = domain.TagMatchAll
		}
	}

	var projects []*domain.Project
	conv := query.Converter{
		Now: a.now(),
		Resolve: func(name string, fuzzy bool) (uuid.UUID, error) {
			if !fuzzy {
				p, err := lookupProject(ctx, a.projects, name)
				if err != nil {
					return uuid.Nil, err
				}
				return p.ID, nil
			}
			if projects == nil {
				list, err := a.projects.List(ctx)
				if err != nil {
					return uuid.Nil, err
				}
				projects = list
			}
			p, err := lookupProjectByFuzzyName(name, projects)
			if err != nil {
				return uuid.Nil, err
			}
			return p.ID, nil
		},
	}

	ids, err := conv.Apply(f, parsed)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid query: %w", err)
	}
	if f.IsEmpty() {
		f = nil
	}
	return f, ids, nil
}
