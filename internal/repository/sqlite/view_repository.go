package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/domain"
	"taskflow/internal/repository"
)

type ViewRepository struct {
	db *DB
}

func NewViewRepository(db *DB) *ViewRepository {
	return &ViewRepository{db: db}
}

type dbView struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	FilterState string    `db:"filter_state"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (dv *dbView) toView() (*domain.SavedView, error) {
	view := &domain.SavedView{
		ID:        dv.ID,
		Name:      dv.Name,
		CreatedAt: dv.CreatedAt,
		UpdatedAt: dv.UpdatedAt,
	}

	state, err := domain.DecodeFilterState([]byte(dv.FilterState))
	if err != nil {
		return nil, fmt.Errorf("failed to decode filter state of view %q: %w", dv.Name, err)
	}
	view.Filter = state

	return view, nil
}

func (r *ViewRepository) Create(ctx context.Context, view *domain.SavedView) error {
	if err := view.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	filterJSON, err := domain.EncodeFilterState(view.Filter)
	if err != nil {
		return fmt.Errorf("failed to encode filter state: %w", err)
	}

	if view.ID == uuid.Nil {
		view.ID = uuid.New()
	}

	now := time.Now()
	if view.CreatedAt.IsZero() {
		view.CreatedAt = now
	}
	if view.UpdatedAt.IsZero() {
		view.UpdatedAt = now
	}

	query := `
		INSERT INTO saved_views (id, name, filter_state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		view.ID,
		view.Name,
		string(filterJSON),
		view.CreatedAt,
		view.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("view with name %q already exists", view.Name)
		}
		return fmt.Errorf("failed to insert view: %w", err)
	}

	return nil
}

func (r *ViewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SavedView, error) {
	query := `SELECT id, name, filter_state, created_at, updated_at FROM saved_views WHERE id = ?`

	var dv dbView
	if err := r.db.GetContext(ctx, &dv, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("view %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get view: %w", err)
	}

	return dv.toView()
}

func (r *ViewRepository) GetByName(ctx context.Context, name string) (*domain.SavedView, error) {
	query := `SELECT id, name, filter_state, created_at, updated_at FROM saved_views WHERE name = ?`

	var dv dbView
	if err := r.db.GetContext(ctx, &dv, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("view %q: %w", name, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get view: %w", err)
	}

	return dv.toView()
}

func (r *ViewRepository) Update(ctx context.Context, view *domain.SavedView) error {
	if err := view.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	filterJSON, err := domain.EncodeFilterState(view.Filter)
	if err != nil {
		return fmt.Errorf("failed to encode filter state: %w", err)
	}

	view.UpdatedAt = time.Now()

	query := `UPDATE saved_views SET name = ?, filter_state = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, view.Name, string(filterJSON), view.UpdatedAt, view.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("view with name %q already exists", view.Name)
		}
		return fmt.Errorf("failed to update view: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("view %s: %w", view.ID, repository.ErrNotFound)
	}

	return nil
}

func (r *ViewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saved_views WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete view: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("view %s: %w", id, repository.ErrNotFound)
	}

	return nil
}

func (r *ViewRepository) List(ctx context.Context) ([]*domain.SavedView, error) {
	query := `SELECT id, name, filter_state, created_at, updated_at FROM saved_views ORDER BY name ASC`

	var dbViews []dbView
	if err := r.db.SelectContext(ctx, &dbViews, query); err != nil {
		return nil, fmt.Errorf("failed to list views: %w", err)
	}

	views := make([]*domain.SavedView, 0, len(dbViews))
	for i := range dbViews {
		view, err := dbViews[i].toView()
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}
