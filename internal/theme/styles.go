package theme

import (
	"github.com/charmbracelet/lipgloss"

	"taskflow/internal/domain"
)

type Styles struct {
	// cli
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style

	// home layout
	Title         lipgloss.Style
	ActiveTab     lipgloss.Style
	Tab           lipgloss.Style
	InboxHeader   lipgloss.Style
	SectionHeader lipgloss.Style
	OverdueHeader lipgloss.Style
	DoneHeader    lipgloss.Style

	// task rows
	Task      lipgloss.Style
	Selected  lipgloss.Style
	Completed lipgloss.Style
	Overdue   lipgloss.Style
	Morning   lipgloss.Style
	Evening   lipgloss.Style

	PriorityMax  lipgloss.Style
	PriorityHigh lipgloss.Style
	PriorityLow  lipgloss.Style
	PriorityNone lipgloss.Style

	// chrome
	StatusBar lipgloss.Style
	Help      lipgloss.Style
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// NewStyles builds every style from the palette.
func NewStyles(t *Theme) *Styles {
	header := func(c string) lipgloss.Style {
		return fg(c).Bold(true).MarginTop(1)
	}

	return &Styles{
		Success: fg(t.Success).Bold(true),
		Error:   fg(t.Error).Bold(true),
		Warning: fg(t.Warning),
		Info:    fg(t.Accent),
		Muted:   fg(t.TextMuted),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Text)).
			Background(lipgloss.Color(t.HeaderBg)).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Accent)).
			Underline(true).
			PaddingRight(2),
		Tab: fg(t.TextMuted).PaddingRight(2),

		InboxHeader:   header(t.InboxHeader),
		SectionHeader: header(t.SectionHeader),
		OverdueHeader: header(t.OverdueHeader),
		DoneHeader:    header(t.Completed),

		Task: fg(t.Text),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Selected)),
		Completed: fg(t.Completed).Strikethrough(true),
		Overdue:   fg(t.Overdue),
		Morning:   fg(t.Morning),
		Evening:   fg(t.Evening),

		PriorityMax:  fg(t.PriorityMax).Bold(true),
		PriorityHigh: fg(t.PriorityHigh),
		PriorityLow:  fg(t.PriorityLow),
		PriorityNone: fg(t.PriorityNone),

		StatusBar: fg(t.StatusBar).MarginTop(1),
		Help:      fg(t.HelpText),
	}
}

func (s *Styles) Priority(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityMax:
		return s.PriorityMax
	case domain.PriorityHigh:
		return s.PriorityHigh
	case domain.PriorityLow:
		return s.PriorityLow
	default:
		return s.PriorityNone
	}
}

// Classification colors a task by its morning/evening slot.
func (s *Styles) Classification(tt domain.TaskType) lipgloss.Style {
	switch tt {
	case domain.TypeMorning:
		return s.Morning
	case domain.TypeEvening:
		return s.Evening
	default:
		return s.Muted
	}
}
