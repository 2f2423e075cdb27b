package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"taskflow/internal/repository"
)

// WriteHome renders the export as JSON, YAML or Markdown.
func WriteHome(w io.Writer, format Format, data *HomeExport) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return encoder.Close()
	case FormatMarkdown:
		return WriteMarkdown(w, data)
	}
	return fmt.Errorf("format %q is not an export format", format)
}

type JSONExporter struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	viewRepo    repository.ViewRepository
}

func NewJSONExporter(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, viewRepo repository.ViewRepository) *JSONExporter {
	return &JSONExporter{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		viewRepo:    viewRepo,
	}
}

func (e *JSONExporter) CreateFullBackup(ctx context.Context) (*BackupData, error) {
	projects, err := e.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	tasks, err := e.taskRepo.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	views, err := e.viewRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list views: %w", err)
	}

	return &BackupData{
		Version:   FormatVersion,
		Timestamp: time.Now(),
		Projects:  projects,
		Tasks:     tasks,
		Views:     views,
	}, nil
}

func (e *JSONExporter) CreateFullBackupToWriter(ctx context.Context, w io.Writer) error {
	backup, err := e.CreateFullBackup(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(backup)
}
