package home

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/domain"
	"taskflow/internal/repository"
)

// Store is the persistence the Reconciler talks to. Calls may block; the
// Reconciler never invokes them on its loop goroutine.
type Store interface {
	FetchAllTasks(ctx context.Context) ([]domain.Task, error)
	FetchAllProjects(ctx context.Context) ([]domain.Project, error)
	CreateTask(ctx context.Context, task domain.Task) (domain.Task, error)
	UpdateTask(ctx context.Context, task domain.Task) (domain.Task, error)
	CompleteTask(ctx context.Context, id uuid.UUID, at time.Time) (domain.Task, error)
	UncompleteTask(ctx context.Context, id uuid.UUID) (domain.Task, error)
	RescheduleTask(ctx context.Context, id uuid.UUID, due *time.Time) (domain.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

// FilterStore persists the current FilterState between runs.
type FilterStore interface {
	LoadFilterState(ctx context.Context) (domain.FilterState, error)
	SaveFilterState(ctx context.Context, state domain.FilterState) error
}

// RepositoryStore adapts the task and project repositories to Store.
type RepositoryStore struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
}

func NewRepositoryStore(tasks repository.TaskRepository, projects repository.ProjectRepository) *RepositoryStore {
	return &RepositoryStore{tasks: tasks, projects: projects}
}

func (s *RepositoryStore) FetchAllTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, *t)
	}
	return out, nil
}

func (s *RepositoryStore) FetchAllProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, *p)
	}
	return out, nil
}

func (s *RepositoryStore) CreateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	t := task.Clone()
	if err := s.tasks.Create(ctx, &t); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func (s *RepositoryStore) UpdateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	t := task.Clone()
	if err := s.tasks.Update(ctx, &t); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func (s *RepositoryStore) CompleteTask(ctx context.Context, id uuid.UUID, at time.Time) (domain.Task, error) {
	return deref(s.tasks.SetCompletion(ctx, id, true, &at))
}

func (s *RepositoryStore) UncompleteTask(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	return deref(s.tasks.SetCompletion(ctx, id, false, nil))
}

func (s *RepositoryStore) RescheduleTask(ctx context.Context, id uuid.UUID, due *time.Time) (domain.Task, error) {
	return deref(s.tasks.Reschedule(ctx, id, due))
}

func (s *RepositoryStore) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return s.tasks.Delete(ctx, id)
}

func deref(t *domain.Task, err error) (domain.Task, error) {
	if err != nil {
		return domain.Task{}, err
	}
	return *t, nil
}

// FilterStateKey is the app state key holding the current FilterState.
const FilterStateKey = "home.filter_state"

// StateFilterStore keeps the FilterState in the app state table.
type StateFilterStore struct {
	state repository.StateRepository
}

func NewStateFilterStore(state repository.StateRepository) *StateFilterStore {
	return &StateFilterStore{state: state}
}

// LoadFilterState returns defaults when nothing was saved yet. A stored
// value that cannot be decoded also yields defaults, with the error.
func (s *StateFilterStore) LoadFilterState(ctx context.Context) (domain.FilterState, error) {
	raw, err := s.state.Get(ctx, FilterStateKey)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.DefaultFilterState(), nil
	}
	if err != nil {
		return domain.DefaultFilterState(), fmt.Errorf("failed to load filter state: %w", err)
	}
	return domain.DecodeFilterState([]byte(raw))
}

func (s *StateFilterStore) SaveFilterState(ctx context.Context, state domain.FilterState) error {
	data, err := domain.EncodeFilterState(state)
	if err != nil {
		return err
	}
	if err := s.state.Set(ctx, FilterStateKey, string(data)); err != nil {
		return fmt.Errorf("failed to save filter state: %w", err)
	}
	return nil
}
