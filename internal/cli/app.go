package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"taskflow/internal/config"
	"taskflow/internal/domain"
	"taskflow/internal/home"
	"taskflow/internal/logging"
	"taskflow/internal/repository"
	"taskflow/internal/repository/sqlite"
	"taskflow/internal/theme"
)

// app bundles what every command needs: config, logger, repositories and
// styles. Commands open one per invocation and close it when done.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *sqlite.DB
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	views    repository.ViewRepository
	state    repository.StateRepository
	inbox    *domain.Project
	theme    *theme.Theme
	styles   *theme.Styles
	now      func() time.Time
	closeLog func() error
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return newApp(ctx, cfg)
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logger, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	db, err := sqlite.NewDB(sqlite.Config{Path: cfg.DBPath})
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		tasks:    sqlite.NewTaskRepository(db),
		projects: sqlite.NewProjectRepository(db),
		views:    sqlite.NewViewRepository(db),
		state:    sqlite.NewStateRepository(db),
		now:      time.Now,
		closeLog: closeLog,
	}

	if a.inbox, err = a.projects.EnsureInbox(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to ensure inbox: %w", err)
	}

	a.theme, err = theme.Resolve(cfg.ThemeName)
	if err != nil {
		logger.Warn("unknown theme, using default", "theme", cfg.ThemeName)
		a.theme = theme.DefaultTheme()
	}
	a.styles = theme.NewStyles(a.theme)

	return a, nil
}

func (a *app) Close() error {
	return errors.Join(a.db.Close(), a.closeLog())
}

// filterStore returns the persistent FilterState store, or one that loads
// the persisted state but never writes it back.
func (a *app) filterStore(persist bool) home.FilterStore {
	fs := home.NewStateFilterStore(a.state)
	if persist {
		return fs
	}
	return readOnlyFilters{fs}
}

type readOnlyFilters struct {
	home.FilterStore
}

func (readOnlyFilters) SaveFilterState(context.Context, domain.FilterState) error {
	return nil
}

// withReconciler runs a Reconciler for the duration of one command. fn
// posts intents once the first reload has landed; the returned snapshot is
// the settled state after them, and its error is returned alongside it.
func (a *app) withReconciler(ctx context.Context, persist bool, fn func(r *home.Reconciler)) (home.Snapshot, error) {
	r := home.NewReconciler(
		home.NewRepositoryStore(a.tasks, a.projects),
		home.WithLogger(a.logger),
		home.WithClock(a.now),
		home.WithFilterStore(a.filterStore(persist)),
	)

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	snap, err := r.Settle(ctx)
	if err != nil {
		return snap, err
	}
	if fn != nil {
		fn(r)
		if snap, err = r.Settle(ctx); err != nil {
			return snap, err
		}
	}
	return snap, snap.Err
}
