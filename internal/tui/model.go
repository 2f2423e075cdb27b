// Package tui is the live Home screen. It renders snapshots published by
// the reconciler and turns key presses into reconciler intents.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"taskflow/internal/domain"
	"taskflow/internal/home"
	"taskflow/internal/section"
	"taskflow/internal/selection"
	"taskflow/internal/theme"
)

// Engine is the part of home.Reconciler the screen drives.
type Engine interface {
	Current() home.Snapshot
	Subscribe(fn func(home.Snapshot)) (cancel func())

	ToggleCompletion(id uuid.UUID)
	Reschedule(id uuid.UUID, due *time.Time)
	Delete(id uuid.UUID)
	Reload()

	SetQuickView(v domain.QuickView)
	SetProjectGroupingMode(mode domain.GroupingMode)
	SetShowCompletedInline(show bool)
	ClearProjectFilters()
}

type rowKind int

const (
	headerRow rowKind = iota
	taskRow
)

type headerKind int

const (
	inboxHeader headerKind = iota
	sectionHeader
	overdueHeader
	doneHeader
)

type row struct {
	kind    rowKind
	title   string
	header  headerKind
	task    domain.Task
	overdue bool
}

type Model struct {
	engine Engine
	feed   *feed
	keys   keyMap
	help   help.Model
	styles *theme.Styles
	now    func() time.Time

	snap       home.Snapshot
	rows       []row
	cursor     int // index into rows, always a task row when any exist
	selectedID uuid.UUID

	confirmDelete *domain.Task

	width    int
	height   int
	quitting bool
}

type Option func(*Model)

func WithTheme(t *theme.Theme) Option {
	return func(m *Model) { m.styles = theme.NewStyles(t) }
}

func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// New subscribes to engine right away so no snapshot published between
// construction and Init is lost.
func New(engine Engine, opts ...Option) Model {
	m := Model{
		engine: engine,
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: theme.NewStyles(theme.DefaultTheme()),
		now:    time.Now,
		width:  80,
		height: 24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.feed = newFeed(engine)
	m.setSnapshot(engine.Current())
	return m
}

func (m Model) Init() tea.Cmd {
	return m.feed.waitForSnapshot()
}

// setSnapshot rebuilds rows and keeps the cursor on the same task when it
// is still visible.
func (m *Model) setSnapshot(snap home.Snapshot) {
	m.snap = snap
	m.rows = buildRows(snap, m.now())

	if m.selectedID != uuid.Nil {
		for i, r := range m.rows {
			if r.kind == taskRow && r.task.ID == m.selectedID {
				m.cursor = i
				return
			}
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if !m.moveToTask(m.cursor, 1) {
		m.moveToTask(m.cursor, -1)
	}
}

// moveToTask puts the cursor on the first task row at or after from in
// direction dir. It reports false, leaving the cursor alone, if there is
// none.
func (m *Model) moveToTask(from, dir int) bool {
	for i := from; i >= 0 && i < len(m.rows); i += dir {
		if m.rows[i].kind == taskRow {
			m.cursor = i
			m.selectedID = m.rows[i].task.ID
			return true
		}
	}
	return false
}

func (m Model) selectedTask() (domain.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) || m.rows[m.cursor].kind != taskRow {
		return domain.Task{}, false
	}
	return m.rows[m.cursor].task, true
}

func buildRows(snap home.Snapshot, now time.Time) []row {
	var rows []row
	addSection := func(title string, kind headerKind, s section.ProjectSection) {
		rows = append(rows, row{kind: headerRow, title: title, header: kind})
		for _, t := range s.Tasks {
			rows = append(rows, row{kind: taskRow, task: t, overdue: selection.IsOverdue(t, now)})
		}
	}

	layout := snap.Layout
	if layout.InboxSection != nil {
		addSection(layout.InboxSection.Project.Name, inboxHeader, *layout.InboxSection)
	}
	for _, s := range layout.OverdueGroups {
		addSection("Overdue · "+s.Project.Name, overdueHeader, s)
	}
	for _, s := range layout.CustomSections {
		addSection(s.Project.Name, sectionHeader, s)
	}

	if len(snap.DoneTimeline) > 0 {
		addSection("Completed", doneHeader, section.ProjectSection{Tasks: snap.DoneTimeline})
	}
	return rows
}

// tomorrow keeps the task's time of day, or uses 09:00 when it has none.
func tomorrow(due *time.Time, now time.Time) time.Time {
	hour, minute := 9, 0
	if due != nil {
		local := due.In(now.Location())
		hour, minute = local.Hour(), local.Minute()
	}
	next := now.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), hour, minute, 0, 0, now.Location())
}
