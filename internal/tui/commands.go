package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"taskflow/internal/home"
)

// snapshotMsg carries a newly published Home snapshot.
type snapshotMsg struct {
	snap home.Snapshot
}

// feed hands snapshots from the reconciler loop to the bubbletea loop.
// It keeps only the latest one, so a slow UI never blocks the reconciler.
type feed struct {
	ch     chan home.Snapshot
	cancel func()
}

func newFeed(engine Engine) *feed {
	f := &feed{ch: make(chan home.Snapshot, 1)}
	f.cancel = engine.Subscribe(func(s home.Snapshot) {
		select {
		case <-f.ch:
		default:
		}
		f.ch <- s
	})
	return f
}

// waitForSnapshot blocks until the next snapshot is published.
func (f *feed) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-f.ch
		if !ok {
			return nil
		}
		return snapshotMsg{snap: snap}
	}
}

func (f *feed) close() {
	f.cancel()
}
