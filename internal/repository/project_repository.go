package repository

import (
	"context"

	"github.com/google/uuid"

	"taskflow/internal/domain"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	GetByName(ctx context.Context, name string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id uuid.UUID) error

	// EnsureInbox returns the Inbox project, creating it when missing.
	EnsureInbox(ctx context.Context) (*domain.Project, error)
	GetTaskCount(ctx context.Context, projectID uuid.UUID) (int, error)
}
