package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"taskflow/internal/domain"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.setSnapshot(msg.snap)
		return m, m.feed.waitForSnapshot()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.confirmDelete != nil {
			return m.updateConfirm(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.engine.Delete(m.confirmDelete.ID)
		m.confirmDelete = nil
	case key.Matches(msg, m.keys.Cancel):
		m.confirmDelete = nil
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.feed.close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.moveToTask(m.cursor-1, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveToTask(m.cursor+1, 1)

	case key.Matches(msg, m.keys.Today):
		m.engine.SetQuickView(domain.ViewToday)
	case key.Matches(msg, m.keys.Upcoming):
		m.engine.SetQuickView(domain.ViewUpcoming)
	case key.Matches(msg, m.keys.Done):
		m.engine.SetQuickView(domain.ViewDone)
	case key.Matches(msg, m.keys.Morning):
		m.engine.SetQuickView(domain.ViewMorning)
	case key.Matches(msg, m.keys.Evening):
		m.engine.SetQuickView(domain.ViewEvening)

	case key.Matches(msg, m.keys.Grouping):
		next := domain.GroupByProjects
		if m.snap.Filter.ProjectGroupingMode == domain.GroupByProjects {
			next = domain.GroupPrioritizeOverdue
		}
		m.engine.SetProjectGroupingMode(next)
	case key.Matches(msg, m.keys.InlineDone):
		m.engine.SetShowCompletedInline(!m.snap.Filter.ShowCompletedInline)
	case key.Matches(msg, m.keys.ClearProjects):
		m.engine.ClearProjectFilters()

	case key.Matches(msg, m.keys.Refresh):
		m.engine.Reload()

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selectedTask(); ok {
			m.engine.ToggleCompletion(t.ID)
		}
	case key.Matches(msg, m.keys.Tomorrow):
		if t, ok := m.selectedTask(); ok {
			due := tomorrow(t.DueDate, m.now())
			m.engine.Reschedule(t.ID, &due)
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selectedTask(); ok {
			m.confirmDelete = &t
		}
	}
	return m, nil
}
