package sqlite

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/domain"
	"taskflow/internal/repository"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	// create temp db file
	tmpFile, err := os.CreateTemp("", "taskflow_test_*.db")
	require.NoError(t, err)
	tmpFile.Close()

	dbPath := tmpFile.Name()

	db, err := NewDB(Config{Path: dbPath})
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}

	return db, cleanup
}

func TestTaskRepository_Create(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTaskRepository(db)
	ctx := context.Background()

	t.Run("create valid task", func(t *testing.T) {
		task := domain.NewTask("Test Task")
		task.Priority = domain.PriorityHigh
		task.Tags = []string{"test", "important"}

		err := repo.Create(ctx, task)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, task.ID)
	})

	t.Run("create task with invalid data", func(t *testing.T) {
		task := &domain.Task{Name: ""}

		err := repo.Create(ctx, task)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("defaults", func(t *testing.T) {
		task := &domain.Task{Name: "bare"}
		require.NoError(t, repo.Create(ctx, task))
		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.Equal(t, domain.PriorityLow, task.Priority)
		assert.Equal(t, domain.TypeInbox, task.Type)
		assert.False(t, task.CreatedAt.IsZero())
	})

	t.Run("duplicate id", func(t *testing.T) {
		task := domain.NewTask("first")
		require.NoError(t, repo.Create(ctx, task))

		again := task.Clone()
		err := repo.Create(ctx, &again)
		assert.ErrorContains(t, err, "already exists")
	})
}

func TestTaskRepository_GetByID(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTaskRepository(db)
	ctx := context.Background()

	due := time.Date(2025, 6, 12, 19, 0, 0, 0, time.UTC)
	done := time.Date(2025, 6, 10, 8, 30, 0, 0, time.UTC)
	estimate := 25
	original := domain.NewTask("Write report")
	original.ProjectID = uuid.New()
	original.Type = domain.TypeEvening
	original.Priority = domain.PriorityMax
	original.DueDate = &due
	original.IsComplete = true
	original.DateCompleted = &done
	original.LegacyProjectName = "Work"
	original.Category = "writing"
	original.Context = "desk"
	original.Energy = domain.EnergyHigh
	original.Tags = []string{"q2", "report"}
	original.EstimateMinutes = &estimate
	original.DependencyIDs = []uuid.UUID{uuid.New()}

	require.NoError(t, repo.Create(ctx, original))

	t.Run("get existing task", func(t *testing.T) {
		got, err := repo.GetByID(ctx, original.ID)
		require.NoError(t, err)

		assert.Equal(t, original.ID, got.ID)
		assert.Equal(t, original.ProjectID, got.ProjectID)
		assert.Equal(t, original.Name, got.Name)
		assert.Equal(t, original.Type, got.Type)
		assert.Equal(t, original.Priority, got.Priority)
		require.NotNil(t, got.DueDate)
		assert.True(t, due.Equal(*got.DueDate))
		assert.True(t, got.IsComplete)
		require.NotNil(t, got.DateCompleted)
		assert.True(t, done.Equal(*got.DateCompleted))
		assert.Equal(t, "Work", got.LegacyProjectName)
		assert.Equal(t, "writing", got.Category)
		assert.Equal(t, "desk", got.Context)
		assert.Equal(t, domain.EnergyHigh, got.Energy)
		assert.Equal(t, original.Tags, got.Tags)
		require.NotNil(t, got.EstimateMinutes)
		assert.Equal(t, 25, *got.EstimateMinutes)
		assert.Equal(t, original.DependencyIDs, got.DependencyIDs)
	})

	t.Run("nullable columns", func(t *testing.T) {
		bare := &domain.Task{Name: "bare"}
		require.NoError(t, repo.Create(ctx, bare))

		got, err := repo.GetByID(ctx, bare.ID)
		require.NoError(t, err)
		assert.Equal(t, uuid.Nil, got.ProjectID)
		assert.Nil(t, got.DueDate)
		assert.Nil(t, got.DateCompleted)
		assert.Nil(t, got.EstimateMinutes)
		assert.Empty(t, got.Tags)
		assert.Empty(t, got.DependencyIDs)
	})

	t.Run("get non-existent task", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestTaskRepository_List(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTaskRepository(db)
	ctx := context.Background()

	projectA, projectB := uuid.New(), uuid.New()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	day := func(n int) *time.Time {
		d := base.AddDate(0, 0, n)
		return &d
	}

	tasks := []*domain.Task{
		{Name: "Task 1", Priority: domain.PriorityHigh, ProjectID: projectA, DueDate: day(3), Tags: []string{"Home"}},
		{Name: "Task 2", Priority: domain.PriorityLow, ProjectID: projectA, IsComplete: true, DateCompleted: day(1)},
		{Name: "Task 3", Priority: domain.PriorityMax, ProjectID: projectB, DueDate: day(1), Tags: []string{"home", "errand"}},
	}
	for i, task := range tasks {
		task.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, task))
	}

	t.Run("list all tasks in creation order", func(t *testing.T) {
		got, err := repo.List(ctx, repository.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "Task 1", got[0].Name)
		assert.Equal(t, "Task 3", got[2].Name)
	})

	t.Run("filter by project", func(t *testing.T) {
		got, err := repo.List(ctx, repository.TaskFilter{ProjectID: &projectA})
		require.NoError(t, err)
		assert.Len(t, got, 2)
		for _, task := range got {
			assert.Equal(t, projectA, task.ProjectID)
		}
	})

	t.Run("filter by completion", func(t *testing.T) {
		open := false
		got, err := repo.List(ctx, repository.TaskFilter{IsComplete: &open})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("filter by tag ignoring case", func(t *testing.T) {
		got, err := repo.List(ctx, repository.TaskFilter{Tags: []string{"HOME"}})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("due range", func(t *testing.T) {
		got, err := repo.List(ctx, repository.TaskFilter{DueFrom: day(2), DueTo: day(4)})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Task 1", got[0].Name)
	})

	t.Run("sort by priority", func(t *testing.T) {
		got, err := repo.List(ctx, repository.TaskFilter{SortBy: "priority", SortOrder: "desc"})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"Task 3", "Task 1", "Task 2"}, []string{got[0].Name, got[1].Name, got[2].Name})
	})

	t.Run("sort by due date puts undated last", func(t *testing.T) {
		got, err := repo.List(ctx, repository.TaskFilter{SortBy: "due_date"})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "Task 3", got[0].Name)
		assert.Equal(t, "Task 2", got[2].Name)
	})

	t.Run("pagination and count", func(t *testing.T) {
		got, err := repo.List(ctx, repository.TaskFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		count, err := repo.Count(ctx, repository.TaskFilter{ProjectID: &projectB})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestTaskRepository_Update(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := domain.NewTask("Original Task")
	require.NoError(t, repo.Create(ctx, task))

	t.Run("update existing task", func(t *testing.T) {
		task.Name = "Updated Task"
		task.Priority = domain.PriorityMax
		task.Type = domain.TypeMorning
		task.Tags = []string{"a"}

		require.NoError(t, repo.Update(ctx, task))

		got, err := repo.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated Task", got.Name)
		assert.Equal(t, domain.PriorityMax, got.Priority)
		assert.Equal(t, domain.TypeMorning, got.Type)
		assert.Equal(t, []string{"a"}, got.Tags)
	})

	t.Run("update non-existent task", func(t *testing.T) {
		missing := domain.NewTask("Non-existent")
		err := repo.Update(ctx, missing)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("update with invalid data", func(t *testing.T) {
		invalid := task.Clone()
		invalid.Name = ""

		err := repo.Update(ctx, &invalid)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})
}

func TestTaskRepository_SetCompletion(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := domain.NewTask("toggle me")
	require.NoError(t, repo.Create(ctx, task))

	at := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	got, err := repo.SetCompletion(ctx, task.ID, true, &at)
	require.NoError(t, err)
	assert.True(t, got.IsComplete)
	require.NotNil(t, got.DateCompleted)
	assert.True(t, at.Equal(*got.DateCompleted))

	got, err = repo.SetCompletion(ctx, task.ID, false, &at)
	require.NoError(t, err)
	assert.False(t, got.IsComplete)
	assert.Nil(t, got.DateCompleted, "uncompleting clears the date")

	got, err = repo.SetCompletion(ctx, task.ID, true, nil)
	require.NoError(t, err)
	assert.NotNil(t, got.DateCompleted)

	_, err = repo.SetCompletion(ctx, uuid.New(), true, nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepository_Reschedule(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := domain.NewTask("move me")
	require.NoError(t, repo.Create(ctx, task))

	due := time.Date(2025, 6, 20, 17, 0, 0, 0, time.FixedZone("UTC+2", 2*3600))
	got, err := repo.Reschedule(ctx, task.ID, &due)
	require.NoError(t, err)
	require.NotNil(t, got.DueDate)
	assert.True(t, due.Equal(*got.DueDate))

	got, err = repo.Reschedule(ctx, task.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, got.DueDate)

	_, err = repo.Reschedule(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepository_Delete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTaskRepository(db)
	ctx := context.Background()

	t.Run("delete existing task", func(t *testing.T) {
		task := domain.NewTask("Task to delete")
		require.NoError(t, repo.Create(ctx, task))

		require.NoError(t, repo.Delete(ctx, task.ID))

		_, err := repo.GetByID(ctx, task.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete non-existent task", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
