package export

import (
	"fmt"
	"strings"
	"time"

	"taskflow/internal/domain"
)

const FormatVersion = "1.0"

type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown output format %q: use text, json, yaml or markdown", s)
}

// HomeExport is the rendered form of one Home snapshot.
type HomeExport struct {
	Version      string        `json:"version" yaml:"version"`
	GeneratedAt  time.Time     `json:"generated_at" yaml:"generated_at"`
	View         string        `json:"view" yaml:"view"`
	Grouping     string        `json:"grouping" yaml:"grouping"`
	SavedView    string        `json:"saved_view,omitempty" yaml:"saved_view,omitempty"`
	Inbox        *SectionData  `json:"inbox,omitempty" yaml:"inbox,omitempty"`
	Overdue      []SectionData `json:"overdue" yaml:"overdue"`
	Sections     []SectionData `json:"sections" yaml:"sections"`
	DoneTimeline []TaskData    `json:"done_timeline" yaml:"done_timeline"`
}

type SectionData struct {
	ProjectID string     `json:"project_id" yaml:"project_id"`
	Project   string     `json:"project" yaml:"project"`
	Icon      string     `json:"icon,omitempty" yaml:"icon,omitempty"`
	Tasks     []TaskData `json:"tasks" yaml:"tasks"`
}

type TaskData struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Type          string   `json:"type" yaml:"type"`
	Priority      string   `json:"priority" yaml:"priority"`
	Score         int      `json:"score" yaml:"score"`
	DueDate       *string  `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Overdue       bool     `json:"overdue,omitempty" yaml:"overdue,omitempty"`
	IsComplete    bool     `json:"is_complete" yaml:"is_complete"`
	DateCompleted *string  `json:"date_completed,omitempty" yaml:"date_completed,omitempty"`
	Tags          []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// BackupData is a full dump of the database.
type BackupData struct {
	Version   string              `json:"version"`
	Timestamp time.Time           `json:"timestamp"`
	Projects  []*domain.Project   `json:"projects"`
	Tasks     []*domain.Task      `json:"tasks"`
	Views     []*domain.SavedView `json:"views,omitempty"`
}

type ConflictStrategy string

const (
	ConflictStrategySkip      ConflictStrategy = "skip"
	ConflictStrategyOverwrite ConflictStrategy = "overwrite"
)

func ParseConflictStrategy(s string) (ConflictStrategy, error) {
	switch ConflictStrategy(strings.ToLower(s)) {
	case ConflictStrategySkip:
		return ConflictStrategySkip, nil
	case ConflictStrategyOverwrite:
		return ConflictStrategyOverwrite, nil
	}
	return "", fmt.Errorf("unknown conflict strategy %q: use skip or overwrite", s)
}
