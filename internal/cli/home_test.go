package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"taskflow/internal/domain"
	"taskflow/internal/export"
)

// seedHome adds an inbox task due today, a Work task due today and an
// overdue Work task.
func seedHome(t *testing.T, a *app) (inbox, work, overdue *domain.Task) {
	t.Helper()
	addProject(t, a, "Work")
	inbox = addTask(t, a, addOptions{name: "File taxes", priority: "high", due: "today"})
	work = addTask(t, a, addOptions{name: "Write report", project: "Work", priority: "low", due: "today", tags: []string{"deep"}})
	overdue = addTask(t, a, addOptions{name: "Send invoice", project: "work", priority: "max", due: "yesterday"})
	return inbox, work, overdue
}

func TestExecuteHome_Text(t *testing.T) {
	a := setupTestApp(t)
	seedHome(t, a)

	var out bytes.Buffer
	require.NoError(t, executeHome(context.Background(), a, homeOptions{output: "text"}, &out))

	got := out.String()
	assert.Contains(t, got, "Today · prioritizeOverdue")
	assert.Contains(t, got, "Inbox (1)")
	assert.Contains(t, got, "Overdue · Work (1)")
	assert.Contains(t, got, "Work (1)")
	assert.Contains(t, got, "#deep")

	inboxAt := strings.Index(got, "Inbox (1)")
	overdueAt := strings.Index(got, "Overdue · Work")
	taxesAt := strings.Index(got, "File taxes")
	invoiceAt := strings.Index(got, "Send invoice")
	assert.Less(t, inboxAt, taxesAt)
	assert.Less(t, taxesAt, overdueAt)
	assert.Less(t, overdueAt, invoiceAt)
}

func TestExecuteHome_Empty(t *testing.T) {
	a := setupTestApp(t)

	var out bytes.Buffer
	require.NoError(t, executeHome(context.Background(), a, homeOptions{}, &out))
	assert.Contains(t, out.String(), "Nothing here.")
}

func TestExecuteHome_Formats(t *testing.T) {
	a := setupTestApp(t)
	_, work, overdue := seedHome(t, a)
	ctx := context.Background()

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, executeHome(ctx, a, homeOptions{output: "json", group: "projects"}, &out))

		var data export.HomeExport
		require.NoError(t, json.Unmarshal(out.Bytes(), &data))
		assert.Equal(t, "today", data.View)
		assert.Equal(t, string(domain.GroupByProjects), data.Grouping)
		require.NotNil(t, data.Inbox)
		assert.Empty(t, data.Overdue, "grouping by projects merges overdue work")
		require.Len(t, data.Sections, 1)
		require.Len(t, data.Sections[0].Tasks, 2)
		assert.Equal(t, work.ID.String(), data.Sections[0].Tasks[0].ID)
		assert.Equal(t, overdue.ID.String(), data.Sections[0].Tasks[1].ID, "overdue work goes last")
		assert.True(t, data.Sections[0].Tasks[1].Overdue)
	})

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, executeHome(ctx, a, homeOptions{output: "yaml"}, &out))

		var data export.HomeExport
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &data))
		require.Len(t, data.Overdue, 1)
		assert.Equal(t, "Work", data.Overdue[0].Project)
	})

	t.Run("markdown", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, executeHome(ctx, a, homeOptions{output: "md"}, &out))
		assert.Contains(t, out.String(), "# Today")
		assert.Contains(t, out.String(), "## Overdue")
	})

	t.Run("unknown", func(t *testing.T) {
		var out bytes.Buffer
		err := executeHome(ctx, a, homeOptions{output: "xml"}, &out)
		assert.ErrorContains(t, err, "unknown output format")
	})
}

func TestExecuteHome_Filters(t *testing.T) {
	a := setupTestApp(t)
	inbox, work, overdue := seedHome(t, a)
	ctx := context.Background()

	ids := func(opts homeOptions) []string {
		t.Helper()
		opts.output = "json"
		var out bytes.Buffer
		require.NoError(t, executeHome(ctx, a, opts, &out))
		var data export.HomeExport
		require.NoError(t, json.Unmarshal(out.Bytes(), &data))

		var got []string
		if data.Inbox != nil {
			for _, task := range data.Inbox.Tasks {
				got = append(got, task.Name)
			}
		}
		for _, groups := range [][]export.SectionData{data.Overdue, data.Sections} {
			for _, s := range groups {
				for _, task := range s.Tasks {
					got = append(got, task.Name)
				}
			}
		}
		return got
	}

	t.Run("priority", func(t *testing.T) {
		got := ids(homeOptions{priorities: []string{"high", "max"}})
		assert.ElementsMatch(t, []string{inbox.Name, overdue.Name}, got)
	})

	t.Run("tag", func(t *testing.T) {
		got := ids(homeOptions{tags: []string{"DEEP"}})
		assert.Equal(t, []string{work.Name}, got)
	})

	t.Run("project", func(t *testing.T) {
		got := ids(homeOptions{projects: []string{"work"}})
		assert.ElementsMatch(t, []string{work.Name, overdue.Name}, got)
	})

	t.Run("due range", func(t *testing.T) {
		got := ids(homeOptions{dueFrom: "today"})
		assert.ElementsMatch(t, []string{inbox.Name, work.Name}, got)
	})

	t.Run("query", func(t *testing.T) {
		got := ids(homeOptions{query: "priority:max @work"})
		assert.Equal(t, []string{overdue.Name}, got)

		got = ids(homeOptions{query: "@~wor tag:deep"})
		assert.Equal(t, []string{work.Name}, got)

		got = ids(homeOptions{tags: []string{"deep"}, query: "priority:high"})
		assert.Empty(t, got, "query terms narrow the flag filter")
	})

	t.Run("unknown project", func(t *testing.T) {
		err := executeHome(ctx, a, homeOptions{projects: []string{"zzz"}}, &bytes.Buffer{})
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("bad values", func(t *testing.T) {
		for _, opts := range []homeOptions{
			{view: "tomorrow"},
			{group: "alphabetical"},
			{tagMode: "some"},
			{energy: []string{"infinite"}},
			{priorities: []string{"urgentest"}},
			{dueFrom: "someday"},
			{query: "status:open"},
			{query: "@nowhere"},
		} {
			assert.Error(t, executeHome(ctx, a, opts, &bytes.Buffer{}), "%+v", opts)
		}
	})
}

func TestExecuteHome_ShowCompletedInline(t *testing.T) {
	a := setupTestApp(t)
	inbox, _, _ := seedHome(t, a)
	ctx := context.Background()
	require.NoError(t, executeDone(ctx, a, inbox.ID.String(), &bytes.Buffer{}))

	var out bytes.Buffer
	require.NoError(t, executeHome(ctx, a, homeOptions{output: "json"}, &out))
	var data export.HomeExport
	require.NoError(t, json.Unmarshal(out.Bytes(), &data))
	assert.Nil(t, data.Inbox)
	require.Len(t, data.DoneTimeline, 1)

	show := true
	out.Reset()
	require.NoError(t, executeHome(ctx, a, homeOptions{output: "json", showCompleted: &show}, &out))
	data = export.HomeExport{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &data))
	assert.Empty(t, data.DoneTimeline)
	require.NotNil(t, data.Inbox)
	assert.True(t, data.Inbox.Tasks[0].IsComplete)
}

func TestExecuteHome_Save(t *testing.T) {
	a := setupTestApp(t)
	ctx := context.Background()

	require.NoError(t, executeHome(ctx, a, homeOptions{view: "upcoming"}, &bytes.Buffer{}))
	assert.Equal(t, domain.ViewToday, savedFilter(t, a).QuickView)

	require.NoError(t, executeHome(ctx, a, homeOptions{view: "upcoming", group: "projects", save: true}, &bytes.Buffer{}))
	state := savedFilter(t, a)
	assert.Equal(t, domain.ViewUpcoming, state.QuickView)
	assert.Equal(t, domain.GroupByProjects, state.ProjectGroupingMode)

	// later runs start from the saved filter
	var out bytes.Buffer
	require.NoError(t, executeHome(ctx, a, homeOptions{}, &out))
	assert.Contains(t, out.String(), "Upcoming · groupByProjects")

	require.NoError(t, executeHome(ctx, a, homeOptions{projects: []string{"inbox"}, save: true}, &bytes.Buffer{}))
	assert.True(t, savedFilter(t, a).HasProjectFilter())
	require.NoError(t, executeHome(ctx, a, homeOptions{clear: true, save: true}, &bytes.Buffer{}))
	assert.False(t, savedFilter(t, a).HasProjectFilter())
}

func TestBuildAdvancedFilter(t *testing.T) {
	a := setupTestApp(t)

	f, err := buildAdvancedFilter(homeOptions{tagMode: "any"}, a)
	require.NoError(t, err)
	assert.Nil(t, f, "no advanced flags")

	yes := true
	f, err = buildAdvancedFilter(homeOptions{
		tags:        []string{"deep", "focus"},
		tagMode:     "all",
		energy:      []string{"High"},
		hasEstimate: &yes,
		dueTo:       "+2d",
	}, a)
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, domain.TagMatchAll, f.TagMatchMode)
	assert.Equal(t, []domain.EnergyLevel{domain.EnergyHigh}, f.EnergyLevels)
	assert.Equal(t, &yes, f.HasEstimate)
	require.NotNil(t, f.DateRange)
	assert.Nil(t, f.DateRange.Start)
	require.NotNil(t, f.DateRange.End)
	assert.True(t, f.DateRange.End.After(testNow))
}
