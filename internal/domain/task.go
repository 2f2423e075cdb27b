package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// task priority
type Priority string

const (
	PriorityNone Priority = "none"
	PriorityLow  Priority = "low"
	PriorityHigh Priority = "high"
	PriorityMax  Priority = "max"
)

// Score returns the fixed point value awarded for completing a task of this
// priority. Unknown priorities score like PriorityNone.
func (p Priority) Score() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityHigh:
		return 3
	case PriorityMax:
		return 5
	default:
		return 0
	}
}

// task classification
type TaskType string

const (
	TypeMorning  TaskType = "morning"
	TypeEvening  TaskType = "evening"
	TypeUpcoming TaskType = "upcoming"
	TypeInbox    TaskType = "inbox"
)

type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

type Task struct {
	ID                uuid.UUID   `json:"id"`
	ProjectID         uuid.UUID   `json:"project_id"`
	Name              string      `json:"name"`
	Type              TaskType    `json:"type"`
	Priority          Priority    `json:"priority"`
	DueDate           *time.Time  `json:"due_date,omitempty"`
	IsComplete        bool        `json:"is_complete"`
	DateCompleted     *time.Time  `json:"date_completed,omitempty"`
	LegacyProjectName string      `json:"legacy_project_name,omitempty"`
	Category          string      `json:"category,omitempty"`
	Context           string      `json:"context,omitempty"`
	Energy            EnergyLevel `json:"energy,omitempty"`
	Tags              []string    `json:"tags,omitempty"`
	EstimateMinutes   *int        `json:"estimate_minutes,omitempty"`
	DependencyIDs     []uuid.UUID `json:"dependency_ids,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("task name cannot be empty")
	}

	if len(t.Name) > 200 {
		return errors.New("task name cannot exceed 200 characters")
	}

	if t.Priority != "" && !isValidPriority(t.Priority) {
		return errors.New("invalid priority: must be none, low, high, or max")
	}

	if t.Type != "" && !isValidType(t.Type) {
		return errors.New("invalid type: must be morning, evening, upcoming, or inbox")
	}

	if t.Energy != "" && !isValidEnergy(t.Energy) {
		return errors.New("invalid energy: must be low, medium, or high")
	}

	if t.EstimateMinutes != nil && *t.EstimateMinutes < 0 {
		return errors.New("estimate cannot be negative")
	}

	return nil
}

// create a new task
func NewTask(name string) *Task {
	now := time.Now()
	return &Task{
		ID:        uuid.New(),
		Name:      name,
		Type:      TypeInbox,
		Priority:  PriorityLow,
		Tags:      make([]string, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy, so the copy's slices and pointers can be
// modified without touching t.
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.DateCompleted != nil {
		d := *t.DateCompleted
		c.DateCompleted = &d
	}
	if t.EstimateMinutes != nil {
		e := *t.EstimateMinutes
		c.EstimateMinutes = &e
	}
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	if t.DependencyIDs != nil {
		c.DependencyIDs = append([]uuid.UUID(nil), t.DependencyIDs...)
	}
	return c
}

// Complete marks the task done at the given instant.
func (t *Task) Complete(at time.Time) {
	t.IsComplete = true
	t.DateCompleted = &at
}

func (t *Task) Uncomplete() {
	t.IsComplete = false
	t.DateCompleted = nil
}

func isValidPriority(p Priority) bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityHigh, PriorityMax:
		return true
	default:
		return false
	}
}

func isValidType(tt TaskType) bool {
	switch tt {
	case TypeMorning, TypeEvening, TypeUpcoming, TypeInbox:
		return true
	default:
		return false
	}
}

func isValidEnergy(e EnergyLevel) bool {
	switch e {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return true
	default:
		return false
	}
}

// ParsePriority accepts the canonical names plus a few common spellings.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return PriorityNone, nil
	case "low":
		return PriorityLow, nil
	case "high":
		return PriorityHigh, nil
	case "max", "urgent", "highest":
		return PriorityMax, nil
	default:
		return "", errors.New("unknown priority: " + s)
	}
}

func ParseTaskType(s string) (TaskType, error) {
	tt := TaskType(strings.ToLower(strings.TrimSpace(s)))
	if !isValidType(tt) {
		return "", errors.New("unknown task type: " + s)
	}
	return tt, nil
}
