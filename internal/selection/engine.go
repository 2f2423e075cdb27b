// Package selection decides which tasks a home quick view shows.
//
// Everything here is a pure function of its arguments: the same task
// collection, filter state and reference instant always produce the same
// result, and inputs are never modified.
package selection

import (
	"sort"
	"time"

	"taskflow/internal/domain"
	"taskflow/internal/query"
)

const (
	// UpcomingWindowDays is the length of the upcoming window, which starts
	// at the beginning of tomorrow.
	UpcomingWindowDays = 14

	// DoneWindowDays bounds how far back the done view looks.
	DoneWindowDays = 30
)

type Result struct {
	OpenTasks         []domain.Task
	DoneTimelineTasks []domain.Task
}

// window holds the calendar boundaries derived from one reference instant.
type window struct {
	now         time.Time
	loc         *time.Location
	today       time.Time
	tomorrow    time.Time
	upcomingEnd time.Time
	doneStart   time.Time
}

func newWindow(now time.Time) window {
	today := query.StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	return window{
		now:         now,
		loc:         now.Location(),
		today:       today,
		tomorrow:    tomorrow,
		upcomingEnd: tomorrow.AddDate(0, 0, UpcomingWindowDays),
		doneStart:   now.AddDate(0, 0, -DoneWindowDays),
	}
}

// dueByEndOfToday reports whether the task is due today or earlier. Tasks
// without a due date count as due today.
func (w window) dueByEndOfToday(t domain.Task) bool {
	return t.DueDate == nil || t.DueDate.Before(w.tomorrow)
}

func (w window) dueInUpcoming(t domain.Task) bool {
	if t.DueDate == nil {
		return false
	}
	return !t.DueDate.Before(w.tomorrow) && t.DueDate.Before(w.upcomingEnd)
}

func (w window) completedInDoneWindow(t domain.Task) bool {
	if t.DateCompleted == nil {
		return false
	}
	return !t.DateCompleted.Before(w.doneStart)
}

// Select applies the quick-view window of state, then its project and
// advanced facets, and splits the survivors into open tasks and the
// completed-task timeline. Open tasks keep their input order.
func Select(tasks []domain.Task, state domain.FilterState, now time.Time) Result {
	w := newWindow(now)

	var open, done []domain.Task
	for _, t := range tasks {
		inOpen, inDone := w.place(t, state.QuickView)
		if !inOpen && !inDone {
			continue
		}
		if !matchesProjects(t, state) || !MatchesAdvanced(t, state.AdvancedFilter) {
			continue
		}
		if inOpen {
			open = append(open, t.Clone())
		} else {
			done = append(done, t.Clone())
		}
	}

	SortTimeline(done, w.loc)

	if state.ShowCompletedInline && state.QuickView != domain.ViewDone {
		open = append(open, done...)
		done = nil
	}

	return Result{
		OpenTasks:         nonNil(open),
		DoneTimelineTasks: nonNil(done),
	}
}

// place decides whether t is an open candidate or a done-timeline candidate
// for the given view. Unknown views place nothing.
func (w window) place(t domain.Task, view domain.QuickView) (open bool, done bool) {
	switch view {
	case domain.ViewToday:
		if t.IsComplete {
			return false, t.DueDate != nil && w.dueByEndOfToday(t)
		}
		return w.dueByEndOfToday(t), false

	case domain.ViewMorning, domain.ViewEvening:
		class, ok := Classify(t, w.loc)
		if !ok || class != domain.TaskType(view) {
			return false, false
		}
		if t.IsComplete {
			return false, t.DueDate != nil && w.dueByEndOfToday(t)
		}
		return w.dueByEndOfToday(t), false

	case domain.ViewUpcoming:
		if !w.dueInUpcoming(t) {
			return false, false
		}
		return !t.IsComplete, t.IsComplete

	case domain.ViewDone:
		return false, t.IsComplete && w.completedInDoneWindow(t)

	default:
		return false, false
	}
}

// Classify returns the morning/evening bucket of t. Explicit morning or
// evening types win; other types are inferred from the local hour of the
// due date, before noon being morning. Unclassified tasks without a due
// date have no bucket.
func Classify(t domain.Task, loc *time.Location) (domain.TaskType, bool) {
	switch t.Type {
	case domain.TypeMorning, domain.TypeEvening:
		return t.Type, true
	}
	if t.DueDate == nil {
		return "", false
	}
	if t.DueDate.In(loc).Hour() < 12 {
		return domain.TypeMorning, true
	}
	return domain.TypeEvening, true
}

// IsOverdue reports whether t is incomplete and due before the start of
// now's day.
func IsOverdue(t domain.Task, now time.Time) bool {
	if t.IsComplete || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(query.StartOfDay(now))
}

// Split partitions tasks into non-overdue and overdue sets, preserving
// order within each.
func Split(tasks []domain.Task, now time.Time) (current []domain.Task, overdue []domain.Task) {
	current = []domain.Task{}
	overdue = []domain.Task{}
	for _, t := range tasks {
		if IsOverdue(t, now) {
			overdue = append(overdue, t)
		} else {
			current = append(current, t)
		}
	}
	return current, overdue
}

// SortTimeline orders completed tasks by completion day, most recent first,
// then by priority score. The sort is stable so remaining ties keep their
// relative order. Tasks with no completion date go last.
func SortTimeline(tasks []domain.Task, loc *time.Location) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if (a.DateCompleted == nil) != (b.DateCompleted == nil) {
			return b.DateCompleted == nil
		}
		if a.DateCompleted != nil {
			da := query.DayKey(*a.DateCompleted, loc)
			db := query.DayKey(*b.DateCompleted, loc)
			if !da.Equal(db) {
				return da.After(db)
			}
		}
		return a.Priority.Score() > b.Priority.Score()
	})
}

func matchesProjects(t domain.Task, state domain.FilterState) bool {
	if !state.HasProjectFilter() {
		return true
	}
	return state.IsProjectSelected(t.ProjectID)
}

func nonNil(tasks []domain.Task) []domain.Task {
	if tasks == nil {
		return []domain.Task{}
	}
	return tasks
}
