package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SavedView struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Filter    FilterState `json:"filter"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (v *SavedView) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return errors.New("view name cannot be empty")
	}

	if len(v.Name) > 100 {
		return errors.New("view name cannot exceed 100 characters")
	}

	return nil
}

// NewSavedView captures state under name. The stored filter never points at
// a saved view itself.
func NewSavedView(name string, state FilterState) *SavedView {
	now := time.Now()
	f := state.Clone()
	f.SelectedSavedViewID = nil
	return &SavedView{
		ID:        uuid.New(),
		Name:      name,
		Filter:    f,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply returns the filter state the view selects.
func (v *SavedView) Apply() FilterState {
	s := v.Filter.Clone()
	id := v.ID
	s.SelectedSavedViewID = &id
	return s
}

func (v *SavedView) GetFilterSummary() string {
	f := v.Filter
	parts := []string{string(f.QuickView)}

	if len(f.SelectedProjectIDs) > 0 {
		parts = append(parts, fmt.Sprintf("%d projects", len(f.SelectedProjectIDs)))
	}
	if !f.AdvancedFilter.IsEmpty() {
		af := f.AdvancedFilter
		if len(af.Priorities) > 0 {
			ps := make([]string, len(af.Priorities))
			for i, p := range af.Priorities {
				ps[i] = string(p)
			}
			parts = append(parts, "priority:"+strings.Join(ps, "|"))
		}
		if len(af.Tags) > 0 {
			parts = append(parts, fmt.Sprintf("%d tags", len(af.Tags)))
		}
	}
	if f.ProjectGroupingMode == GroupByProjects {
		parts = append(parts, "by project")
	}
	if f.ShowCompletedInline {
		parts = append(parts, "completed inline")
	}

	return strings.Join(parts, ", ")
}
