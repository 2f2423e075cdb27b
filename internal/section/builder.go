// Package section groups selected tasks into ordered project sections for
// the home screen.
package section

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"taskflow/internal/domain"
)

type ProjectSection struct {
	Project domain.Project `json:"project"`
	Tasks   []domain.Task  `json:"tasks"`
}

type Layout struct {
	InboxSection   *ProjectSection  `json:"inbox_section,omitempty"`
	OverdueGroups  []ProjectSection `json:"overdue_groups"`
	CustomSections []ProjectSection `json:"custom_sections"`
}

// IsEmpty reports whether the layout has no tasks at all.
func (l Layout) IsEmpty() bool {
	return l.InboxSection == nil && len(l.OverdueGroups) == 0 && len(l.CustomSections) == 0
}

// TaskCount counts tasks across every section.
func (l Layout) TaskCount() int {
	n := 0
	if l.InboxSection != nil {
		n += len(l.InboxSection.Tasks)
	}
	for _, s := range l.OverdueGroups {
		n += len(s.Tasks)
	}
	for _, s := range l.CustomSections {
		n += len(s.Tasks)
	}
	return n
}

// Build lays out open tasks. current holds the non-overdue tasks and overdue
// the overdue ones; a task must not appear in both. Sections are ordered
// Inbox first, then by customOrder, then by project name.
func Build(mode domain.GroupingMode, current, overdue []domain.Task, projects []domain.Project, customOrder []uuid.UUID) Layout {
	layout := Layout{
		OverdueGroups:  []ProjectSection{},
		CustomSections: []ProjectSection{},
	}

	if mode == domain.GroupByProjects {
		flags := make(map[uuid.UUID]bool, len(overdue))
		all := make([]domain.Task, 0, len(current)+len(overdue))
		all = append(all, current...)
		for _, t := range overdue {
			flags[t.ID] = true
			all = append(all, t)
		}

		sections := group(all, projects)
		for i := range sections {
			sortMerged(sections[i].Tasks, flags)
		}
		layout.InboxSection, layout.CustomSections = splitInbox(orderSections(sections, projects, customOrder), projects)
		return layout
	}

	sections := group(current, projects)
	for i := range sections {
		sortByPriority(sections[i].Tasks)
	}
	layout.InboxSection, layout.CustomSections = splitInbox(orderSections(sections, projects, customOrder), projects)

	groups := group(overdue, projects)
	for i := range groups {
		sortByPriority(groups[i].Tasks)
	}
	layout.OverdueGroups = orderSections(groups, projects, customOrder)

	return layout
}

// group buckets tasks by project id and resolves each bucket to a project
// once. Buckets that resolve to the same project are merged, keeping first
// appearance order.
func group(tasks []domain.Task, projects []domain.Project) []ProjectSection {
	type bucket struct {
		tasks []domain.Task
	}
	var keys []string
	buckets := make(map[string]*bucket)
	for _, t := range tasks {
		k := groupKey(t)
		b, ok := buckets[k]
		if !ok {
			b = &bucket{}
			buckets[k] = b
			keys = append(keys, k)
		}
		b.tasks = append(b.tasks, t.Clone())
	}

	var sections []ProjectSection
	index := make(map[uuid.UUID]int)
	for _, k := range keys {
		b := buckets[k]
		p := Resolve(b.tasks, projects)
		if i, ok := index[p.ID]; ok {
			sections[i].Tasks = append(sections[i].Tasks, b.tasks...)
			continue
		}
		index[p.ID] = len(sections)
		sections = append(sections, ProjectSection{Project: p, Tasks: b.tasks})
	}
	return sections
}

// tasks with no project id fall back to their legacy project name so that
// different legacy projects stay apart
func groupKey(t domain.Task) string {
	if t.ProjectID != uuid.Nil {
		return t.ProjectID.String()
	}
	return "legacy:" + strings.ToLower(strings.TrimSpace(t.LegacyProjectName))
}

func splitInbox(sections []ProjectSection, projects []domain.Project) (*ProjectSection, []ProjectSection) {
	rest := make([]ProjectSection, 0, len(sections))
	var inbox *ProjectSection
	for i := range sections {
		if inbox == nil && isInbox(sections[i].Project, projects) {
			s := sections[i]
			inbox = &s
			continue
		}
		rest = append(rest, sections[i])
	}
	return inbox, rest
}

// orderSections puts the Inbox first, then projects named in customOrder in
// that order, then everything else by case-insensitive name. Ids in
// customOrder with no section are skipped.
func orderSections(sections []ProjectSection, projects []domain.Project, customOrder []uuid.UUID) []ProjectSection {
	rank := make(map[uuid.UUID]int, len(customOrder))
	for i, id := range customOrder {
		if _, seen := rank[id]; !seen {
			rank[id] = i
		}
	}

	out := make([]ProjectSection, len(sections))
	copy(out, sections)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Project, out[j].Project
		ai, bi := isInbox(a, projects), isInbox(b, projects)
		if ai != bi {
			return ai
		}
		ar, aok := rank[a.ID]
		br, bok := rank[b.ID]
		if aok != bok {
			return aok
		}
		if aok && ar != br {
			return ar < br
		}
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if an != bn {
			return an < bn
		}
		return a.ID.String() < b.ID.String()
	})
	return out
}

func isInbox(p domain.Project, projects []domain.Project) bool {
	return domain.IsInboxProject(p, projects)
}

// sortByPriority orders by priority score descending, then due date
// ascending with undated tasks last.
func sortByPriority(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return lessByPriority(tasks[i], tasks[j])
	})
}

// sortMerged puts non-overdue tasks before overdue ones and then applies the
// priority ordering. Completion state is not a key.
func sortMerged(tasks []domain.Task, overdue map[uuid.UUID]bool) {
	sort.SliceStable(tasks, func(i, j int) bool {
		oi, oj := overdue[tasks[i].ID], overdue[tasks[j].ID]
		if oi != oj {
			return !oi
		}
		return lessByPriority(tasks[i], tasks[j])
	})
}

func lessByPriority(a, b domain.Task) bool {
	if sa, sb := a.Priority.Score(), b.Priority.Score(); sa != sb {
		return sa > sb
	}
	switch {
	case a.DueDate != nil && b.DueDate != nil:
		if !a.DueDate.Equal(*b.DueDate) {
			return a.DueDate.Before(*b.DueDate)
		}
	case a.DueDate != nil:
		return true
	case b.DueDate != nil:
		return false
	}
	if an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name); an != bn {
		return an < bn
	}
	return a.ID.String() < b.ID.String()
}
