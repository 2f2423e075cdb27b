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

type TaskRepository struct {
	db *DB
}

func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, project_id, name, type, priority, due_date, is_complete, date_completed,
	legacy_project_name, category, context, energy, tags, estimate_minutes, dependencies,
	created_at, updated_at`

type dbTask struct {
	ID                uuid.UUID      `db:"id"`
	ProjectID         uuid.NullUUID  `db:"project_id"`
	Name              string         `db:"name"`
	Type              string         `db:"type"`
	Priority          string         `db:"priority"`
	DueDate           sql.NullTime   `db:"due_date"`
	IsComplete        bool           `db:"is_complete"`
	DateCompleted     sql.NullTime   `db:"date_completed"`
	LegacyProjectName sql.NullString `db:"legacy_project_name"`
	Category          sql.NullString `db:"category"`
	Context           sql.NullString `db:"context"`
	Energy            sql.NullString `db:"energy"`
	Tags              sql.NullString `db:"tags"`
	EstimateMinutes   sql.NullInt64  `db:"estimate_minutes"`
	Dependencies      sql.NullString `db:"dependencies"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

// converts dbTask to a domain.Task
func (dt *dbTask) toTask() (*domain.Task, error) {
	task := &domain.Task{
		ID:                dt.ID,
		Name:              dt.Name,
		Type:              domain.TaskType(dt.Type),
		Priority:          domain.Priority(dt.Priority),
		DueDate:           timePtr(dt.DueDate),
		IsComplete:        dt.IsComplete,
		DateCompleted:     timePtr(dt.DateCompleted),
		LegacyProjectName: dt.LegacyProjectName.String,
		Category:          dt.Category.String,
		Context:           dt.Context.String,
		Energy:            domain.EnergyLevel(dt.Energy.String),
		CreatedAt:         dt.CreatedAt,
		UpdatedAt:         dt.UpdatedAt,
	}

	if dt.ProjectID.Valid {
		task.ProjectID = dt.ProjectID.UUID
	}

	if dt.EstimateMinutes.Valid {
		m := int(dt.EstimateMinutes.Int64)
		task.EstimateMinutes = &m
	}

	tags, err := unmarshalList[string](dt.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tags: %w", err)
	}
	task.Tags = tags

	deps, err := unmarshalList[uuid.UUID](dt.Dependencies)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dependencies: %w", err)
	}
	task.DependencyIDs = deps

	return task, nil
}

// insert a new task
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = now
	}

	// set default values
	if task.Priority == "" {
		task.Priority = domain.PriorityLow
	}
	if task.Type == "" {
		task.Type = domain.TypeInbox
	}

	tags, deps, err := encodeLists(task)
	if err != nil {
		return err
	}

	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		task.ID,
		nullUUID(task.ProjectID),
		task.Name,
		task.Type,
		task.Priority,
		nullTime(task.DueDate),
		task.IsComplete,
		nullTime(task.DateCompleted),
		nullString(task.LegacyProjectName),
		nullString(task.Category),
		nullString(task.Context),
		nullString(string(task.Energy)),
		tags,
		nullInt(task.EstimateMinutes),
		deps,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("task %s already exists", task.ID)
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

func encodeLists(task *domain.Task) (sql.NullString, sql.NullString, error) {
	tags, err := marshalList(task.Tags)
	if err != nil {
		return sql.NullString{}, sql.NullString{}, fmt.Errorf("failed to marshal tags: %w", err)
	}
	deps, err := marshalList(task.DependencyIDs)
	if err != nil {
		return sql.NullString{}, sql.NullString{}, fmt.Errorf("failed to marshal dependencies: %w", err)
	}
	return tags, deps, nil
}

// get a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	var dbTask dbTask
	if err := r.db.GetContext(ctx, &dbTask, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return dbTask.toTask()
}

// count tasks with filtering (for pagination)
func (r *TaskRepository) Count(ctx context.Context, filter repository.TaskFilter) (int64, error) {
	query, args := r.buildWhereClause(filter, true)

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	return count, nil
}

// get all tasks (with filters)
func (r *TaskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]*domain.Task, error) {
	query, args := r.buildWhereClause(filter, false)
	query += r.buildOrderClause(filter)

	// add pagination
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)

		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	var dbTasks []dbTask
	if err := r.db.SelectContext(ctx, &dbTasks, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(dbTasks))
	for _, dbTask := range dbTasks {
		task, err := dbTask.toTask()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// constructs the WHERE clause with all filters
func (r *TaskRepository) buildWhereClause(filter repository.TaskFilter, isCount bool) (string, []interface{}) {
	var query string
	if isCount {
		query = "SELECT COUNT(*) FROM tasks WHERE 1=1"
	} else {
		query = "SELECT " + taskColumns + " FROM tasks WHERE 1=1"
	}

	args := make([]interface{}, 0)

	if filter.ProjectID != nil {
		query += " AND project_id = ?"
		args = append(args, *filter.ProjectID)
	}
	if filter.IsComplete != nil {
		query += " AND is_complete = ?"
		args = append(args, *filter.IsComplete)
	}
	if filter.Priority != "" {
		query += " AND priority = ?"
		args = append(args, filter.Priority)
	}

	// tag filtering using JSON functions
	for _, tag := range filter.Tags {
		query += " AND EXISTS (SELECT 1 FROM json_each(tasks.tags) WHERE value = ? COLLATE NOCASE)"
		args = append(args, tag)
	}

	if filter.DueFrom != nil {
		query += " AND due_date >= ?"
		args = append(args, filter.DueFrom.UTC())
	}
	if filter.DueTo != nil {
		query += " AND due_date < ?"
		args = append(args, filter.DueTo.UTC())
	}

	return query, args
}

// constructs the ORDER BY clause
func (r *TaskRepository) buildOrderClause(filter repository.TaskFilter) string {
	sortBy := filter.SortBy
	sortOrder := filter.SortOrder

	if sortBy == "" {
		sortBy = "created_at"
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "asc"
	}

	if sortBy == "priority" {
		return fmt.Sprintf(` ORDER BY
			CASE priority
				WHEN 'max' THEN 5
				WHEN 'high' THEN 3
				WHEN 'low' THEN 1
				ELSE 0
			END %s, created_at ASC, id ASC`, sortOrder)
	}

	validColumns := map[string]string{
		"created_at": "created_at",
		"updated_at": "updated_at",
		"due_date":   "due_date",
		"name":       "name",
	}

	column, ok := validColumns[sortBy]
	if !ok {
		column = "created_at"
	}

	// nulls last for due_date
	if column == "due_date" {
		return fmt.Sprintf(" ORDER BY due_date IS NULL, due_date %s, id ASC", sortOrder)
	}

	return fmt.Sprintf(" ORDER BY %s %s, id ASC", column, sortOrder)
}

// modify a task
func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	tags, deps, err := encodeLists(task)
	if err != nil {
		return err
	}

	task.UpdatedAt = time.Now()

	query := `
		UPDATE tasks
		SET project_id = ?, name = ?, type = ?, priority = ?, due_date = ?, is_complete = ?, date_completed = ?,
			legacy_project_name = ?, category = ?, context = ?, energy = ?, tags = ?, estimate_minutes = ?,
			dependencies = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		nullUUID(task.ProjectID),
		task.Name,
		task.Type,
		task.Priority,
		nullTime(task.DueDate),
		task.IsComplete,
		nullTime(task.DateCompleted),
		nullString(task.LegacyProjectName),
		nullString(task.Category),
		nullString(task.Context),
		nullString(string(task.Energy)),
		tags,
		nullInt(task.EstimateMinutes),
		deps,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return r.expectOne(result, task.ID)
}

func (r *TaskRepository) SetCompletion(ctx context.Context, id uuid.UUID, complete bool, at *time.Time) (*domain.Task, error) {
	if complete && at == nil {
		now := time.Now()
		at = &now
	}
	if !complete {
		at = nil
	}

	query := `UPDATE tasks SET is_complete = ?, date_completed = ?, updated_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, complete, nullTime(at), time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to set completion: %w", err)
	}
	if err := r.expectOne(result, id); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *TaskRepository) Reschedule(ctx context.Context, id uuid.UUID, due *time.Time) (*domain.Task, error) {
	query := `UPDATE tasks SET due_date = ?, updated_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, nullTime(due), time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to reschedule task: %w", err)
	}
	if err := r.expectOne(result, id); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// remove a task
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return r.expectOne(result, id)
}

func (r *TaskRepository) expectOne(result sql.Result, id uuid.UUID) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("task %s: %w", id, repository.ErrNotFound)
	}

	return nil
}
