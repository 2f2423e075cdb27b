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

type ProjectRepository struct {
	db *DB
}

func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

type dbProject struct {
	ID        uuid.UUID      `db:"id"`
	Name      string         `db:"name"`
	Icon      sql.NullString `db:"icon"`
	IsInbox   bool           `db:"is_inbox"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (dp *dbProject) toProject() *domain.Project {
	return &domain.Project{
		ID:        dp.ID,
		Name:      dp.Name,
		Icon:      dp.Icon.String,
		IsInbox:   dp.IsInbox,
		CreatedAt: dp.CreatedAt,
		UpdatedAt: dp.UpdatedAt,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if err := project.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	now := time.Now()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	if project.UpdatedAt.IsZero() {
		project.UpdatedAt = now
	}

	query := `
		INSERT INTO projects (id, name, icon, is_inbox, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		project.ID,
		project.Name,
		nullString(project.Icon),
		project.IsInbox,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("project with name %q already exists", project.Name)
		}
		return fmt.Errorf("failed to insert project: %w", err)
	}

	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	query := `SELECT id, name, icon, is_inbox, created_at, updated_at FROM projects WHERE id = ?`

	var dbProj dbProject
	if err := r.db.GetContext(ctx, &dbProj, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return dbProj.toProject(), nil
}

// GetByName matches ignoring case.
func (r *ProjectRepository) GetByName(ctx context.Context, name string) (*domain.Project, error) {
	query := `SELECT id, name, icon, is_inbox, created_at, updated_at FROM projects WHERE name = ? COLLATE NOCASE`

	var dbProj dbProject
	if err := r.db.GetContext(ctx, &dbProj, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %q: %w", name, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return dbProj.toProject(), nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	query := `
		SELECT id, name, icon, is_inbox, created_at, updated_at
		FROM projects
		ORDER BY is_inbox DESC, name COLLATE NOCASE ASC, id ASC
	`

	var dbProjects []dbProject
	if err := r.db.SelectContext(ctx, &dbProjects, query); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*domain.Project, 0, len(dbProjects))
	for i := range dbProjects {
		projects = append(projects, dbProjects[i].toProject())
	}

	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	if err := project.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	project.UpdatedAt = time.Now()

	query := `UPDATE projects SET name = ?, icon = ?, is_inbox = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		project.Name,
		nullString(project.Icon),
		project.IsInbox,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("project with name %q already exists", project.Name)
		}
		return fmt.Errorf("failed to update project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("project %s: %w", project.ID, repository.ErrNotFound)
	}

	return nil
}

// Delete removes the project. Its tasks keep the stale project id.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("project %s: %w", id, repository.ErrNotFound)
	}

	return nil
}

// EnsureInbox returns the project acting as Inbox, creating the canonical
// one when none qualifies.
func (r *ProjectRepository) EnsureInbox(ctx context.Context) (*domain.Project, error) {
	projects, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	values := make([]domain.Project, len(projects))
	for i, p := range projects {
		values[i] = *p
	}
	if inbox, ok := domain.FindInbox(values); ok {
		return &inbox, nil
	}

	inbox := domain.InboxProject()
	if err := r.Create(ctx, &inbox); err != nil {
		return nil, fmt.Errorf("failed to create inbox: %w", err)
	}

	return &inbox, nil
}

func (r *ProjectRepository) GetTaskCount(ctx context.Context, projectID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM tasks WHERE project_id = ?`

	var count int
	if err := r.db.GetContext(ctx, &count, query, projectID); err != nil {
		return 0, fmt.Errorf("failed to get task count: %w", err)
	}

	return count, nil
}
