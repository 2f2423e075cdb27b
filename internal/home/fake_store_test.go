package home

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"taskflow/internal/domain"
)

// fakeStore is an in-memory Store. With holdFetch or holdWrite set, each
// call parks after capturing its input and hands the test a release channel.
type fakeStore struct {
	mu        sync.Mutex
	tasks     []domain.Task
	projects  []domain.Project
	fetchErr  error
	writeErr  error
	holdFetch bool
	holdWrite bool
	fetches   int

	fetchHeld chan chan struct{}
	writeHeld chan chan struct{}
}

func newFakeStore(tasks ...domain.Task) *fakeStore {
	return &fakeStore{
		tasks:     tasks,
		projects:  []domain.Project{domain.InboxProject(), workProject},
		fetchHeld: make(chan chan struct{}),
		writeHeld: make(chan chan struct{}),
	}
}

func (s *fakeStore) set(fn func(s *fakeStore)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

func (s *fakeStore) task(id uuid.UUID) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return domain.Task{}, false
}

func (s *fakeStore) park(ctx context.Context, held chan chan struct{}) error {
	release := make(chan struct{})
	select {
	case held <- release:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *fakeStore) FetchAllTasks(ctx context.Context) ([]domain.Task, error) {
	s.mu.Lock()
	tasks := make([]domain.Task, len(s.tasks))
	for i, t := range s.tasks {
		tasks[i] = t.Clone()
	}
	err, hold := s.fetchErr, s.holdFetch
	s.fetches++
	s.mu.Unlock()

	if hold {
		if perr := s.park(ctx, s.fetchHeld); perr != nil {
			return nil, perr
		}
	}
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *fakeStore) FetchAllProjects(context.Context) ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Project(nil), s.projects...), nil
}

// write runs fn against the stored task once any hold is released.
func (s *fakeStore) write(ctx context.Context, id uuid.UUID, fn func(t *domain.Task)) (domain.Task, error) {
	s.mu.Lock()
	hold := s.holdWrite
	s.mu.Unlock()
	if hold {
		if err := s.park(ctx, s.writeHeld); err != nil {
			return domain.Task{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return domain.Task{}, s.writeErr
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			fn(&s.tasks[i])
			return s.tasks[i].Clone(), nil
		}
	}
	return domain.Task{}, fmt.Errorf("no task %s", id)
}

func (s *fakeStore) CreateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	s.mu.Lock()
	hold := s.holdWrite
	s.mu.Unlock()
	if hold {
		if err := s.park(ctx, s.writeHeld); err != nil {
			return domain.Task{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return domain.Task{}, s.writeErr
	}
	s.tasks = append(s.tasks, task.Clone())
	return task, nil
}

func (s *fakeStore) UpdateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	return s.write(ctx, task.ID, func(t *domain.Task) { *t = task.Clone() })
}

func (s *fakeStore) CompleteTask(ctx context.Context, id uuid.UUID, at time.Time) (domain.Task, error) {
	return s.write(ctx, id, func(t *domain.Task) { t.Complete(at) })
}

func (s *fakeStore) UncompleteTask(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	return s.write(ctx, id, func(t *domain.Task) { t.Uncomplete() })
}

func (s *fakeStore) RescheduleTask(ctx context.Context, id uuid.UUID, due *time.Time) (domain.Task, error) {
	return s.write(ctx, id, func(t *domain.Task) { t.DueDate = due })
}

func (s *fakeStore) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if _, err := s.write(ctx, id, func(*domain.Task) {}); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	return nil
}

type memoryFilterStore struct {
	mu      sync.Mutex
	state   domain.FilterState
	loadErr error
	saveErr error
	saves   int
}

func (m *memoryFilterStore) LoadFilterState(context.Context) (domain.FilterState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return domain.FilterState{}, m.loadErr
	}
	return m.state.Clone(), nil
}

func (m *memoryFilterStore) SaveFilterState(_ context.Context, state domain.FilterState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.state = state.Clone()
	m.saves++
	return nil
}

func (m *memoryFilterStore) saved() (domain.FilterState, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone(), m.saves
}

// recorder keeps every published snapshot in order.
type recorder struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func record(r *Reconciler) *recorder {
	rec := &recorder{}
	r.Subscribe(func(s Snapshot) {
		rec.mu.Lock()
		rec.snaps = append(rec.snaps, s)
		rec.mu.Unlock()
	})
	return rec
}

func (rec *recorder) all() []Snapshot {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]Snapshot(nil), rec.snaps...)
}

func awaitRelease(t *testing.T, held chan chan struct{}) chan struct{} {
	t.Helper()
	select {
	case release := <-held:
		return release
	case <-time.After(2 * time.Second):
		require.FailNow(t, "timed out waiting for a store call")
		return nil
	}
}
