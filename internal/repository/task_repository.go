package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
	Count(ctx context.Context, filter TaskFilter) (int64, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SetCompletion marks the task complete at the given time, or clears
	// completion when complete is false.
	SetCompletion(ctx context.Context, id uuid.UUID, complete bool, at *time.Time) (*domain.Task, error)
	// Reschedule sets the due date; nil removes it.
	Reschedule(ctx context.Context, id uuid.UUID, due *time.Time) (*domain.Task, error)
}

// filtering options for task lists
type TaskFilter struct {
	ProjectID  *uuid.UUID
	IsComplete *bool
	Priority   domain.Priority
	Tags       []string

	// pagination
	Limit  int // max number of results (0 = no limit)
	Offset int

	// sorting
	SortBy    string // "created_at", "updated_at", "priority", "due_date", "name"
	SortOrder string // "asc" or "desc"

	DueFrom *time.Time
	DueTo   *time.Time
}
