package repository

import (
	"context"

	"github.com/google/uuid"

	"taskflow/internal/domain"
)

type ViewRepository interface {
	Create(ctx context.Context, view *domain.SavedView) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SavedView, error)
	GetByName(ctx context.Context, name string) (*domain.SavedView, error)
	Update(ctx context.Context, view *domain.SavedView) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.SavedView, error)
}
