// Package home owns the state behind the Home screen.
//
// A Reconciler keeps the last reloaded task collection plus a journal of
// local mutations, and publishes a derived Snapshot after every change. All
// state is touched only by the goroutine running Run; storage calls happen
// on background goroutines and hand their results back to it.
package home

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/domain"
	"taskflow/internal/section"
	"taskflow/internal/selection"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrMutationFailed = errors.New("mutation failed")
	ErrReloadFailed   = errors.New("reload failed")
	ErrAlreadyRunning = errors.New("reconciler already running")
)

// Snapshot is one published derived state. Its slices are never touched
// again by the Reconciler; readers must not modify them either.
type Snapshot struct {
	Filter        domain.FilterState
	Layout        section.Layout
	OpenTasks     []domain.Task
	DoneTimeline  []domain.Task
	Projects      []domain.Project
	Loaded        bool
	Reloading     bool
	PendingWrites int
	Err           error
	Version       uint64
	At            time.Time
}

// Settled reports whether no write or reload is outstanding.
func (s Snapshot) Settled() bool {
	return !s.Reloading && s.PendingWrites == 0
}

type Option func(*Reconciler)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) {
		if now != nil {
			r.now = now
		}
	}
}

// WithRefreshInterval enables a periodic reload. Zero disables it.
func WithRefreshInterval(d time.Duration) Option {
	return func(r *Reconciler) { r.refresh = d }
}

func WithFilterStore(fs FilterStore) Option {
	return func(r *Reconciler) { r.filters = fs }
}

type Reconciler struct {
	store   Store
	filters FilterStore
	logger  *slog.Logger
	now     func() time.Time
	refresh time.Duration

	events  chan func()
	done    chan struct{}
	running atomic.Bool
	wg      sync.WaitGroup
	ctx     context.Context

	current atomic.Pointer[Snapshot]

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int

	// owned by the loop goroutine
	clock        uint64
	base         []domain.Task
	projects     []domain.Project
	journal      journal
	writes       map[uuid.UUID][]*mutation // per task, head is in flight
	appliedStart uint64
	reloads      int
	saving       int
	loaded       bool
	filter       domain.FilterState
	lastErr      error
	version      uint64
	waiters      []chan Snapshot
}

func NewReconciler(store Store, opts ...Option) *Reconciler {
	r := &Reconciler{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
		events: make(chan func(), 64),
		done:   make(chan struct{}),
		subs:   make(map[int]func(Snapshot)),
		writes: make(map[uuid.UUID][]*mutation),
		filter: domain.DefaultFilterState(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run loads the persisted filter, starts the first reload and processes
// intents until ctx is done. It returns once every background storage call
// has finished.
func (r *Reconciler) Run(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	r.ctx = ctx
	defer func() {
		close(r.done)
		r.wg.Wait()
	}()

	if r.filters != nil {
		state, err := r.filters.LoadFilterState(ctx)
		if err != nil {
			r.logger.Warn("using default filter state", "error", err)
			state = domain.DefaultFilterState()
		}
		r.filter = state
	}

	r.startReload()

	var tick <-chan time.Time
	if r.refresh > 0 {
		t := time.NewTicker(r.refresh)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("reconciler stopped")
			for _, w := range r.waiters {
				close(w)
			}
			r.waiters = nil
			return nil
		case fn := <-r.events:
			fn()
		case <-tick:
			r.startReload()
		}
	}
}

// Current returns the last published snapshot. Before the first publish it
// returns an empty snapshot carrying the default filter.
func (r *Reconciler) Current() Snapshot {
	if s := r.current.Load(); s != nil {
		return *s
	}
	return Snapshot{Filter: domain.DefaultFilterState()}
}

// Subscribe registers fn for every future snapshot. fn runs on the loop
// goroutine and must not block or call back into the Reconciler
// synchronously waiting for a result.
func (r *Reconciler) Subscribe(fn func(Snapshot)) (cancel func()) {
	r.subMu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.subMu.Unlock()

	return func() {
		r.subMu.Lock()
		delete(r.subs, id)
		r.subMu.Unlock()
	}
}

// Settle waits until every intent posted before it has been processed and
// no write or reload is outstanding, then returns that snapshot. If no
// reload has succeeded yet the snapshot's error is returned with it.
func (r *Reconciler) Settle(ctx context.Context) (Snapshot, error) {
	ch := make(chan Snapshot, 1)
	if !r.post(func() {
		if r.settled() {
			ch <- r.Current()
			return
		}
		r.waiters = append(r.waiters, ch)
	}) {
		return r.Current(), context.Canceled
	}

	select {
	case snap, ok := <-ch:
		if !ok {
			return r.Current(), context.Canceled
		}
		if !snap.Loaded {
			return snap, snap.Err
		}
		return snap, nil
	case <-ctx.Done():
		return r.Current(), ctx.Err()
	}
}

func (r *Reconciler) ToggleCompletion(id uuid.UUID) {
	r.post(func() {
		t, ok := r.find(id)
		if !ok {
			r.fail(fmt.Errorf("%w: %s", ErrTaskNotFound, id))
			return
		}
		if t.IsComplete {
			r.mutate(&mutation{kind: mutUncomplete, taskID: id})
			return
		}
		r.mutate(&mutation{kind: mutComplete, taskID: id, at: r.now()})
	})
}

// Reschedule sets the task's due date; nil removes it.
func (r *Reconciler) Reschedule(id uuid.UUID, due *time.Time) {
	if due != nil {
		d := *due
		due = &d
	}
	r.post(func() {
		if _, ok := r.find(id); !ok {
			r.fail(fmt.Errorf("%w: %s", ErrTaskNotFound, id))
			return
		}
		r.mutate(&mutation{kind: mutReschedule, taskID: id, due: due})
	})
}

func (r *Reconciler) Delete(id uuid.UUID) {
	r.post(func() {
		if _, ok := r.find(id); !ok {
			r.fail(fmt.Errorf("%w: %s", ErrTaskNotFound, id))
			return
		}
		r.mutate(&mutation{kind: mutDelete, taskID: id})
	})
}

func (r *Reconciler) AddTask(task domain.Task) {
	task = task.Clone()
	r.post(func() {
		if err := task.Validate(); err != nil {
			r.fail(fmt.Errorf("%w: create %s: %w", ErrMutationFailed, task.ID, err))
			return
		}
		r.mutate(&mutation{kind: mutCreate, taskID: task.ID, task: task})
	})
}

func (r *Reconciler) UpdateTask(task domain.Task) {
	task = task.Clone()
	r.post(func() {
		if _, ok := r.find(task.ID); !ok {
			r.fail(fmt.Errorf("%w: %s", ErrTaskNotFound, task.ID))
			return
		}
		if err := task.Validate(); err != nil {
			r.fail(fmt.Errorf("%w: update %s: %w", ErrMutationFailed, task.ID, err))
			return
		}
		r.mutate(&mutation{kind: mutUpdate, taskID: task.ID, task: task})
	})
}

// Reload starts a fresh fetch from the store.
func (r *Reconciler) Reload() {
	r.post(r.startReload)
}

func (r *Reconciler) SetQuickView(v domain.QuickView) {
	r.changeFilter(func(s *domain.FilterState) { s.QuickView = v })
}

func (r *Reconciler) SetProjectGroupingMode(mode domain.GroupingMode) {
	r.changeFilter(func(s *domain.FilterState) { s.ProjectGroupingMode = mode })
}

func (r *Reconciler) SetCustomProjectOrder(ids []uuid.UUID) {
	ids = slices.Clone(ids)
	if ids == nil {
		ids = []uuid.UUID{}
	}
	r.changeFilter(func(s *domain.FilterState) { s.CustomProjectOrderIDs = ids })
}

// ApplyAdvancedFilter replaces the advanced facet; nil clears it.
func (r *Reconciler) ApplyAdvancedFilter(f *domain.AdvancedFilter) {
	var af *domain.AdvancedFilter
	if f != nil {
		af = domain.FilterState{AdvancedFilter: f}.Clone().AdvancedFilter
	}
	r.changeFilter(func(s *domain.FilterState) { s.AdvancedFilter = af })
}

func (r *Reconciler) ClearProjectFilters() {
	r.changeFilter(func(s *domain.FilterState) { s.SelectedProjectIDs = nil })
}

func (r *Reconciler) SelectProjects(ids []uuid.UUID) {
	ids = slices.Clone(ids)
	r.changeFilter(func(s *domain.FilterState) { s.SelectedProjectIDs = ids })
}

func (r *Reconciler) TogglePinnedProject(id uuid.UUID) {
	r.changeFilter(func(s *domain.FilterState) {
		if i := slices.Index(s.PinnedProjectIDs, id); i >= 0 {
			s.PinnedProjectIDs = slices.Delete(s.PinnedProjectIDs, i, i+1)
			return
		}
		s.PinnedProjectIDs = append(s.PinnedProjectIDs, id)
	})
}

func (r *Reconciler) SetShowCompletedInline(show bool) {
	r.changeFilter(func(s *domain.FilterState) { s.ShowCompletedInline = show })
}

// ApplySavedView replaces the whole filter with the view's.
func (r *Reconciler) ApplySavedView(view domain.SavedView) {
	state := view.Apply()
	r.post(func() { r.setFilter(state) })
}

// changeFilter edits the current filter. Any manual edit leaves the
// selected saved view.
func (r *Reconciler) changeFilter(change func(*domain.FilterState)) {
	r.post(func() {
		next := r.filter.Clone()
		change(&next)
		next.SelectedSavedViewID = nil
		r.setFilter(next)
	})
}

func (r *Reconciler) setFilter(next domain.FilterState) {
	if next.Equal(r.filter) {
		return
	}
	r.filter = next
	r.lastErr = nil
	r.publish()

	if r.filters == nil {
		return
	}
	saved := next.Clone()
	r.saving++
	r.async(func(ctx context.Context) func() {
		err := r.filters.SaveFilterState(ctx, saved)
		return func() {
			r.saving--
			if err != nil {
				r.fail(fmt.Errorf("failed to save filter state: %w", err))
				return
			}
			r.release()
		}
	})
}

// post hands fn to the loop. It reports false once the loop has stopped.
func (r *Reconciler) post(fn func()) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.events <- fn:
		return true
	case <-r.done:
		return false
	}
}

// async runs work off the loop and posts the callback it returns.
func (r *Reconciler) async(work func(ctx context.Context) func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.post(work(r.ctx))
	}()
}

func (r *Reconciler) tick() uint64 {
	r.clock++
	return r.clock
}

func (r *Reconciler) view() []domain.Task {
	return r.journal.replay(r.base)
}

func (r *Reconciler) find(id uuid.UUID) (domain.Task, bool) {
	for _, t := range r.view() {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

func (r *Reconciler) mutate(m *mutation) {
	m.seq = r.tick()
	r.journal = append(r.journal, m)
	r.lastErr = nil
	r.logger.Debug("mutation applied", "kind", m.kind, "task_id", m.taskID, "seq", m.seq)
	r.publish()

	// writes to one task reach the store in seq order
	queue := append(r.writes[m.taskID], m)
	r.writes[m.taskID] = queue
	if len(queue) == 1 {
		r.startWrite(m)
	}
}

func (r *Reconciler) startWrite(m *mutation) {
	r.async(func(ctx context.Context) func() {
		err := m.write(ctx, r.store)
		return func() { r.finishWrite(m, err) }
	})
}

// nextWrite pops m off its task's queue and starts the write behind it.
func (r *Reconciler) nextWrite(m *mutation) {
	queue := r.writes[m.taskID][1:]
	if len(queue) == 0 {
		delete(r.writes, m.taskID)
		return
	}
	r.writes[m.taskID] = queue
	r.startWrite(queue[0])
}

func (r *Reconciler) finishWrite(m *mutation, err error) {
	r.nextWrite(m)
	if err != nil {
		r.journal = r.journal.without(m)
		r.lastErr = fmt.Errorf("%w: %s %s: %w", ErrMutationFailed, m.kind, m.taskID, err)
		r.logger.Warn("mutation rolled back", "kind", m.kind, "task_id", m.taskID, "seq", m.seq, "error", err)
		r.publish()
		return
	}
	m.confirmed = r.tick()
	r.logger.Debug("mutation confirmed", "kind", m.kind, "task_id", m.taskID, "seq", m.seq, "confirmed", m.confirmed)
	r.startReload()
}

// startReload fetches tasks and projects. The reload takes its own clock
// value, so later mutations, confirmations and reloads all compare greater.
func (r *Reconciler) startReload() {
	start := r.tick()
	r.reloads++
	r.logger.Debug("reload started", "start", start)
	r.publish()

	r.async(func(ctx context.Context) func() {
		tasks, err := r.store.FetchAllTasks(ctx)
		var projects []domain.Project
		if err == nil {
			projects, err = r.store.FetchAllProjects(ctx)
		}
		return func() { r.finishReload(start, tasks, projects, err) }
	})
}

func (r *Reconciler) finishReload(start uint64, tasks []domain.Task, projects []domain.Project, err error) {
	r.reloads--
	switch {
	case err != nil:
		r.lastErr = fmt.Errorf("%w: %w", ErrReloadFailed, err)
		r.logger.Warn("reload failed, keeping last snapshot", "start", start, "error", err)
	case r.loaded && start < r.appliedStart:
		r.logger.Debug("stale reload dropped", "start", start, "applied", r.appliedStart)
	default:
		r.base = tasks
		r.projects = projects
		r.appliedStart = start
		r.loaded = true
		r.journal = r.journal.settled(start)
		if errors.Is(r.lastErr, ErrReloadFailed) {
			r.lastErr = nil
		}
		r.logger.Debug("reload applied", "start", start, "tasks", len(tasks), "journal", len(r.journal))
	}
	r.publish()
}

func (r *Reconciler) fail(err error) {
	r.lastErr = err
	r.logger.Warn("intent failed", "error", err)
	r.publish()
}

// settled also waits for filter saves, which snapshots do not report.
func (r *Reconciler) settled() bool {
	return r.version > 0 && r.reloads == 0 && r.saving == 0 && r.journal.pending() == 0
}

func (r *Reconciler) release() {
	if !r.settled() || len(r.waiters) == 0 {
		return
	}
	snap := r.Current()
	for _, w := range r.waiters {
		w <- snap
	}
	r.waiters = nil
}

func (r *Reconciler) publish() {
	now := r.now()
	res := selection.Select(r.view(), r.filter, now)
	current, overdue := selection.Split(res.OpenTasks, now)
	layout := section.Build(r.filter.ProjectGroupingMode, current, overdue, r.projects, r.filter.CustomProjectOrderIDs)

	r.version++
	snap := Snapshot{
		Filter:        r.filter.Clone(),
		Layout:        layout,
		OpenTasks:     res.OpenTasks,
		DoneTimeline:  res.DoneTimelineTasks,
		Projects:      slices.Clone(r.projects),
		Loaded:        r.loaded,
		Reloading:     r.reloads > 0,
		PendingWrites: r.journal.pending(),
		Err:           r.lastErr,
		Version:       r.version,
		At:            now,
	}
	r.current.Store(&snap)

	r.subMu.Lock()
	subs := make([]func(Snapshot), 0, len(r.subs))
	for id := 0; id < r.nextSub; id++ {
		if fn, ok := r.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	r.subMu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}

	r.release()
}
