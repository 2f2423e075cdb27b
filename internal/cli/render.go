package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"taskflow/internal/display"
	"taskflow/internal/domain"
	"taskflow/internal/home"
	"taskflow/internal/section"
	"taskflow/internal/selection"
	"taskflow/internal/theme"
)

// renderHome prints a snapshot the way the TUI lays it out, with each task's
// short id so it can be passed to done, reschedule or delete.
func renderHome(w io.Writer, snap home.Snapshot, styles *theme.Styles, now time.Time) {
	title := fmt.Sprintf("%s · %s", titleCase(string(snap.Filter.QuickView)), snap.Filter.ProjectGroupingMode)
	fmt.Fprintln(w, styles.Title.Render(title))

	l := snap.Layout
	if l.IsEmpty() && len(snap.DoneTimeline) == 0 {
		fmt.Fprintln(w, styles.Muted.Render("Nothing here."))
		return
	}

	if l.InboxSection != nil {
		renderSection(w, styles.InboxHeader.Render(sectionTitle(*l.InboxSection, "")), l.InboxSection.Tasks, styles, now)
	}
	for _, g := range l.OverdueGroups {
		renderSection(w, styles.OverdueHeader.Render(sectionTitle(g, "Overdue · ")), g.Tasks, styles, now)
	}
	for _, s := range l.CustomSections {
		renderSection(w, styles.SectionHeader.Render(sectionTitle(s, "")), s.Tasks, styles, now)
	}
	if len(snap.DoneTimeline) > 0 {
		header := styles.DoneHeader.Render(fmt.Sprintf("Completed (%d)", len(snap.DoneTimeline)))
		renderSection(w, header, snap.DoneTimeline, styles, now)
	}
}

func sectionTitle(s section.ProjectSection, prefix string) string {
	return fmt.Sprintf("%s%s (%d)", prefix, s.Project.Name, len(s.Tasks))
}

func renderSection(w io.Writer, header string, tasks []domain.Task, styles *theme.Styles, now time.Time) {
	fmt.Fprintln(w, header)
	for _, t := range tasks {
		fmt.Fprintln(w, renderTaskLine(t, styles, now))
	}
}

func renderTaskLine(t domain.Task, styles *theme.Styles, now time.Time) string {
	nameStyle := styles.Task
	if t.IsComplete {
		nameStyle = styles.Completed
	}

	when := display.FormatDueDate(t.DueDate, now)
	whenStyle := styles.Muted
	if t.IsComplete {
		when = display.FormatCompleted(t.DateCompleted, now)
	} else if selection.IsOverdue(t, now) {
		whenStyle = styles.Overdue
	}

	line := fmt.Sprintf("  %s %s %s %s  %s  %s",
		styles.Muted.Render(display.ShortID(t.ID)),
		display.CheckboxIcon(t.IsComplete),
		styles.Priority(t.Priority).Render(display.PriorityIcon(t.Priority)),
		styles.Classification(t.Type).Render(display.TypeIcon(t.Type)),
		nameStyle.Render(t.Name),
		whenStyle.Render(when),
	)
	if len(t.Tags) > 0 {
		line += "  " + styles.Info.Render("#"+strings.Join(t.Tags, " #"))
	}
	return line
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
