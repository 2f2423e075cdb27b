package home

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/domain"
)

type mutationKind string

const (
	mutCreate     mutationKind = "create"
	mutUpdate     mutationKind = "update"
	mutComplete   mutationKind = "complete"
	mutUncomplete mutationKind = "uncomplete"
	mutReschedule mutationKind = "reschedule"
	mutDelete     mutationKind = "delete"
)

// mutation is one optimistic change. seq orders it against reload starts;
// confirmed is the clock value at which the store acknowledged it, zero
// while the write is outstanding.
type mutation struct {
	seq       uint64
	confirmed uint64
	kind      mutationKind
	taskID    uuid.UUID
	task      domain.Task
	at        time.Time
	due       *time.Time
}

// apply returns tasks with the mutation applied. Every kind sets state
// rather than toggling it, so applying twice is the same as once.
func (m *mutation) apply(tasks []domain.Task) []domain.Task {
	switch m.kind {
	case mutDelete:
		out := tasks[:0]
		for _, t := range tasks {
			if t.ID != m.taskID {
				out = append(out, t)
			}
		}
		return out

	case mutCreate:
		for i := range tasks {
			if tasks[i].ID == m.taskID {
				tasks[i] = m.task.Clone()
				return tasks
			}
		}
		return append(tasks, m.task.Clone())
	}

	for i := range tasks {
		if tasks[i].ID != m.taskID {
			continue
		}
		switch m.kind {
		case mutUpdate:
			tasks[i] = m.task.Clone()
		case mutComplete:
			tasks[i].Complete(m.at)
		case mutUncomplete:
			tasks[i].Uncomplete()
		case mutReschedule:
			if m.due == nil {
				tasks[i].DueDate = nil
			} else {
				d := *m.due
				tasks[i].DueDate = &d
			}
		}
		break
	}
	return tasks
}

func (m *mutation) write(ctx context.Context, store Store) error {
	var err error
	switch m.kind {
	case mutCreate:
		_, err = store.CreateTask(ctx, m.task)
	case mutUpdate:
		_, err = store.UpdateTask(ctx, m.task)
	case mutComplete:
		_, err = store.CompleteTask(ctx, m.taskID, m.at)
	case mutUncomplete:
		_, err = store.UncompleteTask(ctx, m.taskID)
	case mutReschedule:
		_, err = store.RescheduleTask(ctx, m.taskID, m.due)
	case mutDelete:
		err = store.DeleteTask(ctx, m.taskID)
	}
	return err
}

// journal holds mutations the last applied reload may not reflect yet.
type journal []*mutation

// replay applies every entry in order on a copy of base.
func (j journal) replay(base []domain.Task) []domain.Task {
	tasks := make([]domain.Task, len(base))
	for i, t := range base {
		tasks[i] = t.Clone()
	}
	for _, m := range j {
		tasks = m.apply(tasks)
	}
	return tasks
}

func (j journal) without(m *mutation) journal {
	out := make(journal, 0, len(j))
	for _, e := range j {
		if e != m {
			out = append(out, e)
		}
	}
	return out
}

// settled drops entries whose write was confirmed before the reload that
// started at start; that reload's data already contains them.
func (j journal) settled(start uint64) journal {
	out := make(journal, 0, len(j))
	for _, e := range j {
		if e.confirmed == 0 || e.confirmed > start {
			out = append(out, e)
		}
	}
	return out
}

func (j journal) pending() int {
	n := 0
	for _, e := range j {
		if e.confirmed == 0 {
			n++
		}
	}
	return n
}
