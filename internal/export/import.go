package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"taskflow/internal/domain"
	"taskflow/internal/repository"
)

type Importer struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	viewRepo    repository.ViewRepository
}

func NewImporter(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, viewRepo repository.ViewRepository) *Importer {
	return &Importer{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		viewRepo:    viewRepo,
	}
}

// ImportResult counts what a restore did.
type ImportResult struct {
	Created int
	Updated int
	Skipped int
}

// RestoreBackup loads a backup written by CreateFullBackupToWriter. Records
// are matched by id, projects also by name. Task project ids are remapped
// when a project was matched by name under a different id.
func (i *Importer) RestoreBackup(ctx context.Context, r io.Reader, strategy ConflictStrategy) (ImportResult, error) {
	var result ImportResult

	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return result, fmt.Errorf("failed to decode backup: %w", err)
	}

	projectIDs := make(map[uuid.UUID]uuid.UUID)
	for _, p := range backup.Projects {
		if p == nil {
			continue
		}
		existing, err := i.findProject(ctx, p)
		if err != nil {
			return result, fmt.Errorf("failed to import project %s: %w", p.Name, err)
		}
		switch {
		case existing == nil:
			if err := i.projectRepo.Create(ctx, p); err != nil {
				return result, fmt.Errorf("failed to import project %s: %w", p.Name, err)
			}
			result.Created++
		case strategy == ConflictStrategyOverwrite:
			existing.Name = p.Name
			existing.Icon = p.Icon
			existing.IsInbox = p.IsInbox
			if err := i.projectRepo.Update(ctx, existing); err != nil {
				return result, fmt.Errorf("failed to update existing project: %w", err)
			}
			projectIDs[p.ID] = existing.ID
			result.Updated++
		default:
			projectIDs[p.ID] = existing.ID
			result.Skipped++
		}
	}

	for _, t := range backup.Tasks {
		if t == nil {
			continue
		}
		if mapped, ok := projectIDs[t.ProjectID]; ok {
			t.ProjectID = mapped
		}
		if err := t.Validate(); err != nil {
			return result, fmt.Errorf("invalid task data %q: %w", t.Name, err)
		}
		if err := i.importTask(ctx, t, strategy, &result); err != nil {
			return result, fmt.Errorf("failed to import task %s: %w", t.Name, err)
		}
	}

	for _, v := range backup.Views {
		if v == nil {
			continue
		}
		if err := i.importView(ctx, v, strategy, &result); err != nil {
			return result, fmt.Errorf("failed to import view %s: %w", v.Name, err)
		}
	}

	return result, nil
}

func (i *Importer) findProject(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	existing, err := i.projectRepo.GetByID(ctx, p.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	existing, err = i.projectRepo.GetByName(ctx, p.Name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return existing, err
}

func (i *Importer) importTask(ctx context.Context, t *domain.Task, strategy ConflictStrategy, result *ImportResult) error {
	_, err := i.taskRepo.GetByID(ctx, t.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		if err := i.taskRepo.Create(ctx, t); err != nil {
			return err
		}
		result.Created++
	case err != nil:
		return err
	case strategy == ConflictStrategyOverwrite:
		if err := i.taskRepo.Update(ctx, t); err != nil {
			return err
		}
		result.Updated++
	default:
		result.Skipped++
	}
	return nil
}

func (i *Importer) importView(ctx context.Context, v *domain.SavedView, strategy ConflictStrategy, result *ImportResult) error {
	existing, err := i.viewRepo.GetByName(ctx, v.Name)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		if err := i.viewRepo.Create(ctx, v); err != nil {
			return err
		}
		result.Created++
	case err != nil:
		return err
	case strategy == ConflictStrategyOverwrite:
		existing.Filter = v.Filter
		if err := i.viewRepo.Update(ctx, existing); err != nil {
			return err
		}
		result.Updated++
	default:
		result.Skipped++
	}
	return nil
}
