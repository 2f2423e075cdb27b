package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFilterState(t *testing.T) {
	s := DefaultFilterState()
	assert.Equal(t, ViewToday, s.QuickView)
	assert.Equal(t, GroupPrioritizeOverdue, s.ProjectGroupingMode)
	assert.NotNil(t, s.CustomProjectOrderIDs)
	assert.Empty(t, s.CustomProjectOrderIDs)
	assert.True(t, s.AdvancedFilter.IsEmpty())
}

func TestParseQuickView(t *testing.T) {
	for _, v := range QuickViews {
		got, ok := ParseQuickView(string(v))
		assert.True(t, ok)
		assert.Equal(t, v, got)
	}
	got, ok := ParseQuickView(" Upcoming ")
	assert.True(t, ok)
	assert.Equal(t, ViewUpcoming, got)

	_, ok = ParseQuickView("someday")
	assert.False(t, ok)
}

func TestParseGroupingMode(t *testing.T) {
	m, ok := ParseGroupingMode("projects")
	assert.True(t, ok)
	assert.Equal(t, GroupByProjects, m)

	m, ok = ParseGroupingMode("prioritizeOverdue")
	assert.True(t, ok)
	assert.Equal(t, GroupPrioritizeOverdue, m)

	_, ok = ParseGroupingMode("date")
	assert.False(t, ok)
}

func TestAdvancedFilterIsEmpty(t *testing.T) {
	var nilFilter *AdvancedFilter
	yes := true

	assert.True(t, nilFilter.IsEmpty())
	assert.True(t, (&AdvancedFilter{}).IsEmpty())
	assert.True(t, (&AdvancedFilter{TagMatchMode: TagMatchAll}).IsEmpty(), "mode alone constrains nothing")
	assert.True(t, (&AdvancedFilter{DateRange: &DateRange{}}).IsEmpty())
	assert.False(t, (&AdvancedFilter{Tags: []string{"x"}}).IsEmpty())
	assert.False(t, (&AdvancedFilter{HasEstimate: &yes}).IsEmpty())
}

func TestFilterStateCloneIsIndependent(t *testing.T) {
	s := DefaultFilterState()
	id := uuid.New()
	s.SelectedProjectIDs = []uuid.UUID{id}
	s.AdvancedFilter = &AdvancedFilter{Tags: []string{"a"}}

	c := s.Clone()
	c.SelectedProjectIDs[0] = uuid.New()
	c.AdvancedFilter.Tags[0] = "b"

	assert.Equal(t, id, s.SelectedProjectIDs[0])
	assert.Equal(t, "a", s.AdvancedFilter.Tags[0])
}

func TestFilterStateEqual(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	base := DefaultFilterState()
	base.SelectedProjectIDs = []uuid.UUID{a, b}
	base.CustomProjectOrderIDs = []uuid.UUID{a, b}

	same := base.Clone()
	same.SelectedProjectIDs = []uuid.UUID{b, a}
	assert.True(t, base.Equal(same), "selected ids compare as a set")

	reordered := base.Clone()
	reordered.CustomProjectOrderIDs = []uuid.UUID{b, a}
	assert.False(t, base.Equal(reordered), "custom order compares as a sequence")

	view := base.Clone()
	view.QuickView = ViewDone
	assert.False(t, base.Equal(view))

	emptyAdvanced := base.Clone()
	emptyAdvanced.AdvancedFilter = &AdvancedFilter{}
	assert.True(t, base.Equal(emptyAdvanced))
}

func TestFilterStateRoundTrip(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()
	viewID := uuid.New()
	yes := true
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	s := FilterState{
		QuickView:             ViewEvening,
		SelectedProjectIDs:    []uuid.UUID{p1},
		PinnedProjectIDs:      []uuid.UUID{p2},
		ShowCompletedInline:   true,
		SelectedSavedViewID:   &viewID,
		ProjectGroupingMode:   GroupByProjects,
		CustomProjectOrderIDs: []uuid.UUID{p2, p1},
		AdvancedFilter: &AdvancedFilter{
			Priorities:     []Priority{PriorityHigh},
			Tags:           []string{"deep"},
			TagMatchMode:   TagMatchAll,
			RequireDueDate: &yes,
			DateRange:      &DateRange{Start: &start},
		},
	}

	data, err := EncodeFilterState(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":2`)

	got, err := DecodeFilterState(data)
	require.NoError(t, err)
	assert.True(t, s.Equal(got))
}

func TestDecodeFilterStateLegacyPayload(t *testing.T) {
	p := uuid.New()
	legacy := `{"version":1,"quick_view":"upcoming","selected_project_ids":["` + p.String() + `"],"show_completed_inline":false}`

	got, err := DecodeFilterState([]byte(legacy))
	require.NoError(t, err)
	assert.Equal(t, ViewUpcoming, got.QuickView)
	assert.Equal(t, []uuid.UUID{p}, got.SelectedProjectIDs)
	assert.Equal(t, GroupPrioritizeOverdue, got.ProjectGroupingMode)
	assert.NotNil(t, got.CustomProjectOrderIDs)
	assert.Empty(t, got.CustomProjectOrderIDs)

	// re-encoding upgrades the payload
	data, err := EncodeFilterState(got)
	require.NoError(t, err)
	again, err := DecodeFilterState(data)
	require.NoError(t, err)
	assert.Equal(t, GroupPrioritizeOverdue, again.ProjectGroupingMode)
	assert.Empty(t, again.CustomProjectOrderIDs)
}

func TestDecodeFilterStateUnversioned(t *testing.T) {
	got, err := DecodeFilterState([]byte(`{"quick_view":"done"}`))
	require.NoError(t, err)
	assert.Equal(t, ViewDone, got.QuickView)
	assert.Equal(t, GroupPrioritizeOverdue, got.ProjectGroupingMode)
}

func TestDecodeFilterStateUnknownValues(t *testing.T) {
	got, err := DecodeFilterState([]byte(`{"version":2,"quick_view":"someday","project_grouping_mode":"byColor"}`))
	require.NoError(t, err)
	assert.Equal(t, ViewToday, got.QuickView)
	assert.Equal(t, GroupPrioritizeOverdue, got.ProjectGroupingMode)
}

func TestDecodeFilterStateMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{quick_view`},
		{"wrong type", `{"quick_view": 5}`},
		{"future version", `{"version": 99}`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeFilterState([]byte(tt.data))
			assert.Error(t, err)
			assert.True(t, DefaultFilterState().Equal(got))
		})
	}
}
