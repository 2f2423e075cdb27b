package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskflow/internal/display"
	"taskflow/internal/domain"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	if !m.snap.Loaded && m.snap.Err == nil {
		b.WriteString(m.styles.Muted.Render("Loading…"))
		b.WriteString("\n")
	} else if len(m.rows) == 0 {
		b.WriteString(m.styles.Muted.Render("Nothing here."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderRows())
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	if m.confirmDelete != nil {
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Delete %q? (y/n)", m.confirmDelete.Name)))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(domain.QuickViews)+1)
	tabs = append(tabs, m.styles.Title.Render("taskflow"))
	for i, v := range domain.QuickViews {
		label := fmt.Sprintf("%d %s", i+1, v)
		if v == m.snap.Filter.QuickView {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderRows shows a window of rows around the cursor that fits the
// terminal height.
func (m Model) renderRows() string {
	budget := m.height - 6
	if budget < 3 {
		budget = 3
	}
	start := 0
	if m.cursor >= budget {
		start = m.cursor - budget + 1
	}
	end := min(start+budget, len(m.rows))

	var b strings.Builder
	for i := start; i < end; i++ {
		r := m.rows[i]
		if r.kind == headerRow {
			b.WriteString(m.headerStyle(r.header).Render(r.title))
		} else {
			b.WriteString(m.renderTask(r, i == m.cursor))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) headerStyle(h headerKind) lipgloss.Style {
	switch h {
	case inboxHeader:
		return m.styles.InboxHeader
	case overdueHeader:
		return m.styles.OverdueHeader
	case doneHeader:
		return m.styles.DoneHeader
	default:
		return m.styles.SectionHeader
	}
}

func (m Model) renderTask(r row, selected bool) string {
	now := m.now()
	t := r.task

	pointer := "  "
	nameStyle := m.styles.Task
	if t.IsComplete {
		nameStyle = m.styles.Completed
	}
	if selected {
		pointer = "> "
		nameStyle = nameStyle.Inherit(m.styles.Selected)
	}

	when := display.FormatDueDate(t.DueDate, now)
	if t.IsComplete {
		when = display.FormatCompleted(t.DateCompleted, now)
	}
	whenStyle := m.styles.Muted
	if r.overdue {
		whenStyle = m.styles.Overdue
	}

	return pointer +
		display.CheckboxIcon(t.IsComplete) + " " +
		m.styles.Priority(t.Priority).Render(display.PriorityIcon(t.Priority)) + " " +
		m.styles.Classification(t.Type).Render(display.TypeIcon(t.Type)) + " " +
		nameStyle.Render(t.Name) + "  " +
		whenStyle.Render(when)
}

func (m Model) renderStatus() string {
	parts := []string{string(m.snap.Filter.ProjectGroupingMode)}
	if n := len(m.snap.Filter.SelectedProjectIDs); n > 0 {
		parts = append(parts, fmt.Sprintf("%d project filter(s)", n))
	}
	if m.snap.Filter.ShowCompletedInline {
		parts = append(parts, "completed inline")
	}
	if m.snap.Reloading {
		parts = append(parts, "syncing…")
	}
	if m.snap.PendingWrites > 0 {
		parts = append(parts, fmt.Sprintf("%d pending", m.snap.PendingWrites))
	}

	status := m.styles.StatusBar.Render(strings.Join(parts, " · "))
	if m.snap.Err != nil {
		status += "  " + m.styles.Error.Render(m.snap.Err.Error())
	}
	return status
}
