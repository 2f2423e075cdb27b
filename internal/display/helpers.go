// Package display holds the small text conventions shared by the CLI and
// the TUI.
package display

import (
	"fmt"
	"time"

	"taskflow/internal/domain"
	"taskflow/internal/query"
)

func CheckboxIcon(complete bool) string {
	if complete {
		return "✓"
	}
	return "○"
}

func PriorityIcon(p domain.Priority) string {
	switch p {
	case domain.PriorityMax:
		return "🔥"
	case domain.PriorityHigh:
		return "⬆"
	case domain.PriorityLow:
		return "⬇"
	default:
		return " "
	}
}

func TypeIcon(tt domain.TaskType) string {
	switch tt {
	case domain.TypeMorning:
		return "☀"
	case domain.TypeEvening:
		return "☾"
	default:
		return " "
	}
}

// FormatDueDate renders a due date relative to now's calendar day.
func FormatDueDate(due *time.Time, now time.Time) string {
	if due == nil {
		return "-"
	}

	days := dayDiff(*due, now)
	switch {
	case days < 0:
		return fmt.Sprintf("%dd overdue", -days)
	case days == 0:
		return "today " + due.In(now.Location()).Format("15:04")
	case days == 1:
		return "tomorrow"
	case days <= 7:
		return fmt.Sprintf("in %dd", days)
	}
	return due.In(now.Location()).Format("2006-01-02")
}

// FormatCompleted renders a completion date for the done timeline.
func FormatCompleted(at *time.Time, now time.Time) string {
	if at == nil {
		return "done"
	}
	switch days := dayDiff(*at, now); days {
	case 0:
		return "done today"
	case -1:
		return "done yesterday"
	default:
		return "done " + at.In(now.Location()).Format("Jan 2")
	}
}

// ShortID is the id prefix the CLI prints and accepts.
func ShortID(id fmt.Stringer) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// dayDiff counts calendar days from now to t in now's location.
func dayDiff(t, now time.Time) int {
	loc := now.Location()
	a := civil(query.DayKey(t, loc))
	b := civil(query.DayKey(now, loc))
	return int(a.Sub(b).Hours()) / 24
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
