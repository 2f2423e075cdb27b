package export

import (
	"time"

	"taskflow/internal/domain"
	"taskflow/internal/home"
	"taskflow/internal/section"
	"taskflow/internal/selection"
)

// NewHomeExport converts a snapshot; now decides which tasks are overdue.
func NewHomeExport(snap home.Snapshot, now time.Time) *HomeExport {
	out := &HomeExport{
		Version:      FormatVersion,
		GeneratedAt:  now,
		View:         string(snap.Filter.QuickView),
		Grouping:     string(snap.Filter.ProjectGroupingMode),
		Overdue:      convertSections(snap.Layout.OverdueGroups, now),
		Sections:     convertSections(snap.Layout.CustomSections, now),
		DoneTimeline: make([]TaskData, 0, len(snap.DoneTimeline)),
	}
	if snap.Filter.SelectedSavedViewID != nil {
		out.SavedView = snap.Filter.SelectedSavedViewID.String()
	}
	if snap.Layout.InboxSection != nil {
		inbox := convertSection(*snap.Layout.InboxSection, now)
		out.Inbox = &inbox
	}
	for _, t := range snap.DoneTimeline {
		out.DoneTimeline = append(out.DoneTimeline, convertTask(t, now))
	}
	return out
}

func convertSections(sections []section.ProjectSection, now time.Time) []SectionData {
	out := make([]SectionData, 0, len(sections))
	for _, s := range sections {
		out = append(out, convertSection(s, now))
	}
	return out
}

func convertSection(s section.ProjectSection, now time.Time) SectionData {
	sd := SectionData{
		ProjectID: s.Project.ID.String(),
		Project:   s.Project.Name,
		Icon:      s.Project.Icon,
		Tasks:     make([]TaskData, 0, len(s.Tasks)),
	}
	for _, t := range s.Tasks {
		sd.Tasks = append(sd.Tasks, convertTask(t, now))
	}
	return sd
}

func convertTask(t domain.Task, now time.Time) TaskData {
	td := TaskData{
		ID:         t.ID.String(),
		Name:       t.Name,
		Type:       string(t.Type),
		Priority:   string(t.Priority),
		Score:      t.Priority.Score(),
		Overdue:    selection.IsOverdue(t, now),
		IsComplete: t.IsComplete,
		Tags:       t.Tags,
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(time.RFC3339)
		td.DueDate = &due
	}
	if t.DateCompleted != nil {
		done := t.DateCompleted.Format(time.RFC3339)
		td.DateCompleted = &done
	}
	return td
}
