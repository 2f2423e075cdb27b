package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/config"
	"taskflow/internal/domain"
	"taskflow/internal/home"
	"taskflow/internal/logging"
)

var testNow = time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)

func setupTestApp(t *testing.T) *app {
	t.Helper()
	return openTestApp(t, filepath.Join(t.TempDir(), "tasks.db"))
}

func openTestApp(t *testing.T, dbPath string) *app {
	t.Helper()
	cfg := &config.Config{
		DBPath:   dbPath,
		LogFile:  logging.Discard,
		LogLevel: "debug",
	}
	a, err := newApp(context.Background(), cfg)
	require.NoError(t, err)
	a.now = func() time.Time { return testNow }
	t.Cleanup(func() { a.Close() })
	return a
}

func addTask(t *testing.T, a *app, opts addOptions) *domain.Task {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, executeAdd(context.Background(), a, opts, &out))

	task, err := lookupTask(context.Background(), a.tasks, opts.name)
	require.NoError(t, err)
	return task
}

func addProject(t *testing.T, a *app, name string) *domain.Project {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, executeProjectAdd(context.Background(), a, name, domain.FolderIcon, &out))

	p, err := a.projects.GetByName(context.Background(), name)
	require.NoError(t, err)
	return p
}

func savedFilter(t *testing.T, a *app) domain.FilterState {
	t.Helper()
	state, err := home.NewStateFilterStore(a.state).LoadFilterState(context.Background())
	require.NoError(t, err)
	return state
}

func TestNewApp(t *testing.T) {
	a := setupTestApp(t)

	assert.Equal(t, domain.InboxProjectID, a.inbox.ID)
	assert.NotNil(t, a.styles)

	t.Run("unknown theme falls back to default", func(t *testing.T) {
		cfg := &config.Config{
			DBPath:    filepath.Join(t.TempDir(), "tasks.db"),
			LogFile:   logging.Discard,
			ThemeName: "no-such-theme",
		}
		b, err := newApp(context.Background(), cfg)
		require.NoError(t, err)
		defer b.Close()
		assert.NotNil(t, b.theme)
	})

	t.Run("invalid log level", func(t *testing.T) {
		cfg := &config.Config{
			DBPath:   filepath.Join(t.TempDir(), "tasks.db"),
			LogFile:  logging.Discard,
			LogLevel: "loud",
		}
		_, err := newApp(context.Background(), cfg)
		assert.ErrorContains(t, err, "invalid log level")
	})
}

func TestWithReconcilerReportsIntentErrors(t *testing.T) {
	a := setupTestApp(t)

	_, err := a.withReconciler(context.Background(), false, func(r *home.Reconciler) {
		r.ToggleCompletion(domain.InboxProjectID) // not a task id
	})
	assert.ErrorIs(t, err, home.ErrTaskNotFound)
}

func TestWithReconcilerPersistence(t *testing.T) {
	a := setupTestApp(t)
	ctx := context.Background()

	snap, err := a.withReconciler(ctx, false, func(r *home.Reconciler) {
		r.SetQuickView(domain.ViewEvening)
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ViewEvening, snap.Filter.QuickView)
	assert.Equal(t, domain.ViewToday, savedFilter(t, a).QuickView, "transient run keeps the stored filter")

	_, err = a.withReconciler(ctx, true, func(r *home.Reconciler) {
		r.SetQuickView(domain.ViewEvening)
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ViewEvening, savedFilter(t, a).QuickView)

	snap, err = a.withReconciler(ctx, false, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewEvening, snap.Filter.QuickView, "stored filter is loaded")
}
