package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"taskflow/internal/domain"
	"taskflow/internal/repository"
)

// lookupTask resolves a full id, a unique id prefix or a unique
// case-insensitive name.
func lookupTask(ctx context.Context, repo repository.TaskRepository, ref string) (*domain.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("task reference cannot be empty")
	}

	if id, err := uuid.Parse(ref); err == nil {
		task, err := repo.GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("task %s not found", ref)
		}
		return task, err
	}

	tasks, err := repo.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	prefix := strings.ToLower(ref)
	var byID, byName []*domain.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID.String(), prefix) {
			byID = append(byID, t)
		}
		if strings.EqualFold(t.Name, ref) {
			byName = append(byName, t)
		}
	}

	for _, matches := range [][]*domain.Task{byID, byName} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return nil, fmt.Errorf("%q matches %d tasks, use a longer id", ref, len(matches))
		}
	}
	return nil, fmt.Errorf("task %q not found", ref)
}
