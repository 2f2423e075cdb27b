package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// quick view windows on the home screen
type QuickView string

const (
	ViewToday    QuickView = "today"
	ViewUpcoming QuickView = "upcoming"
	ViewDone     QuickView = "done"
	ViewMorning  QuickView = "morning"
	ViewEvening  QuickView = "evening"
)

var QuickViews = []QuickView{ViewToday, ViewUpcoming, ViewDone, ViewMorning, ViewEvening}

func ParseQuickView(s string) (QuickView, bool) {
	v := QuickView(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(QuickViews, v) {
		return v, true
	}
	return "", false
}

type GroupingMode string

const (
	GroupPrioritizeOverdue GroupingMode = "prioritizeOverdue"
	GroupByProjects        GroupingMode = "groupByProjects"
)

func ParseGroupingMode(s string) (GroupingMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prioritizeoverdue", "overdue":
		return GroupPrioritizeOverdue, true
	case "groupbyprojects", "projects":
		return GroupByProjects, true
	default:
		return "", false
	}
}

type TagMatchMode string

const (
	TagMatchAny TagMatchMode = "any"
	TagMatchAll TagMatchMode = "all"
)

// DateRange bounds a due date; either side may be open.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// AdvancedFilter is a set of predicates that must all hold. Unset fields do
// not constrain.
type AdvancedFilter struct {
	Priorities      []Priority    `json:"priorities,omitempty"`
	Categories      []string      `json:"categories,omitempty"`
	Contexts        []string      `json:"contexts,omitempty"`
	EnergyLevels    []EnergyLevel `json:"energy_levels,omitempty"`
	Tags            []string      `json:"tags,omitempty"`
	TagMatchMode    TagMatchMode  `json:"tag_match_mode,omitempty"`
	RequireDueDate  *bool         `json:"require_due_date,omitempty"`
	HasEstimate     *bool         `json:"has_estimate,omitempty"`
	HasDependencies *bool         `json:"has_dependencies,omitempty"`
	DateRange       *DateRange    `json:"date_range,omitempty"`
}

func (f *AdvancedFilter) IsEmpty() bool {
	if f == nil {
		return true
	}
	return len(f.Priorities) == 0 &&
		len(f.Categories) == 0 &&
		len(f.Contexts) == 0 &&
		len(f.EnergyLevels) == 0 &&
		len(f.Tags) == 0 &&
		f.RequireDueDate == nil &&
		f.HasEstimate == nil &&
		f.HasDependencies == nil &&
		(f.DateRange == nil || (f.DateRange.Start == nil && f.DateRange.End == nil))
}

// FilterState describes what the home screen is currently showing.
type FilterState struct {
	QuickView             QuickView       `json:"quick_view"`
	SelectedProjectIDs    []uuid.UUID     `json:"selected_project_ids,omitempty"`
	PinnedProjectIDs      []uuid.UUID     `json:"pinned_project_ids,omitempty"`
	AdvancedFilter        *AdvancedFilter `json:"advanced_filter,omitempty"`
	ShowCompletedInline   bool            `json:"show_completed_inline"`
	SelectedSavedViewID   *uuid.UUID      `json:"selected_saved_view_id,omitempty"`
	ProjectGroupingMode   GroupingMode    `json:"project_grouping_mode"`
	CustomProjectOrderIDs []uuid.UUID     `json:"custom_project_order_ids"`
}

func DefaultFilterState() FilterState {
	return FilterState{
		QuickView:             ViewToday,
		ProjectGroupingMode:   GroupPrioritizeOverdue,
		CustomProjectOrderIDs: []uuid.UUID{},
	}
}

// Clone returns a copy that shares no slices with s.
func (s FilterState) Clone() FilterState {
	c := s
	c.SelectedProjectIDs = slices.Clone(s.SelectedProjectIDs)
	c.PinnedProjectIDs = slices.Clone(s.PinnedProjectIDs)
	c.CustomProjectOrderIDs = slices.Clone(s.CustomProjectOrderIDs)
	if c.CustomProjectOrderIDs == nil {
		c.CustomProjectOrderIDs = []uuid.UUID{}
	}
	if s.SelectedSavedViewID != nil {
		id := *s.SelectedSavedViewID
		c.SelectedSavedViewID = &id
	}
	if s.AdvancedFilter != nil {
		af := *s.AdvancedFilter
		af.Priorities = slices.Clone(af.Priorities)
		af.Categories = slices.Clone(af.Categories)
		af.Contexts = slices.Clone(af.Contexts)
		af.EnergyLevels = slices.Clone(af.EnergyLevels)
		af.Tags = slices.Clone(af.Tags)
		c.AdvancedFilter = &af
	}
	return c
}

func (s FilterState) HasProjectFilter() bool {
	return len(s.SelectedProjectIDs) > 0
}

func (s FilterState) IsProjectSelected(id uuid.UUID) bool {
	return slices.Contains(s.SelectedProjectIDs, id)
}

func (s FilterState) IsProjectPinned(id uuid.UUID) bool {
	return slices.Contains(s.PinnedProjectIDs, id)
}

// Equal compares two states field by field. Id sets compare as sets, the
// custom order compares as a sequence.
func (s FilterState) Equal(o FilterState) bool {
	if s.QuickView != o.QuickView ||
		s.ShowCompletedInline != o.ShowCompletedInline ||
		s.ProjectGroupingMode != o.ProjectGroupingMode {
		return false
	}
	if !sameSet(s.SelectedProjectIDs, o.SelectedProjectIDs) || !sameSet(s.PinnedProjectIDs, o.PinnedProjectIDs) {
		return false
	}
	if !slices.Equal(s.CustomProjectOrderIDs, o.CustomProjectOrderIDs) {
		return false
	}
	if (s.SelectedSavedViewID == nil) != (o.SelectedSavedViewID == nil) {
		return false
	}
	if s.SelectedSavedViewID != nil && *s.SelectedSavedViewID != *o.SelectedSavedViewID {
		return false
	}
	return advancedEqual(s.AdvancedFilter, o.AdvancedFilter)
}

func sameSet(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[uuid.UUID]int, len(a))
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		if seen[id] == 0 {
			return false
		}
		seen[id]--
	}
	return true
}

func advancedEqual(a, b *AdvancedFilter) bool {
	if a.IsEmpty() && b.IsEmpty() {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return slices.Equal(a.Priorities, b.Priorities) &&
		slices.Equal(a.Categories, b.Categories) &&
		slices.Equal(a.Contexts, b.Contexts) &&
		slices.Equal(a.EnergyLevels, b.EnergyLevels) &&
		slices.Equal(a.Tags, b.Tags) &&
		a.TagMatchMode == b.TagMatchMode &&
		boolPtrEqual(a.RequireDueDate, b.RequireDueDate) &&
		boolPtrEqual(a.HasEstimate, b.HasEstimate) &&
		boolPtrEqual(a.HasDependencies, b.HasDependencies) &&
		rangeEqual(a.DateRange, b.DateRange)
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func rangeEqual(a, b *DateRange) bool {
	if a == nil || b == nil {
		return a == b
	}
	return timePtrEqual(a.Start, b.Start) && timePtrEqual(a.End, b.End)
}
