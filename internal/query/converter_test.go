package query

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/domain"
)

func testConverter(projects map[string]uuid.UUID) Converter {
	return Converter{
		Now: refNow,
		Resolve: func(name string, fuzzy bool) (uuid.UUID, error) {
			for n, id := range projects {
				if strings.EqualFold(n, name) || (fuzzy && strings.HasPrefix(strings.ToLower(n), strings.ToLower(name))) {
					return id, nil
				}
			}
			return uuid.Nil, fmt.Errorf("project %q not found", name)
		},
	}
}

func apply(t *testing.T, c Converter, input string) (*domain.AdvancedFilter, []uuid.UUID, error) {
	t.Helper()
	parsed, err := ParseQuery(input)
	require.NoError(t, err)
	f := &domain.AdvancedFilter{}
	ids, err := c.Apply(f, parsed)
	return f, ids, err
}

func TestConverter_Apply(t *testing.T) {
	work, home := uuid.New(), uuid.New()
	c := testConverter(map[string]uuid.UUID{"Work": work, "Home Renovation": home})

	f, ids, err := apply(t, c, "priority:high,max priority:high tag:deep,Focus tag:focus match:all energy:LOW category:book context:@desk")
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, []domain.Priority{domain.PriorityHigh, domain.PriorityMax}, f.Priorities)
	assert.Equal(t, []string{"deep", "Focus"}, f.Tags, "tags are kept once ignoring case")
	assert.Equal(t, domain.TagMatchAll, f.TagMatchMode)
	assert.Equal(t, []domain.EnergyLevel{domain.EnergyLow}, f.EnergyLevels)
	assert.Equal(t, []string{"book"}, f.Categories)
	assert.Equal(t, []string{"@desk"}, f.Contexts)

	t.Run("flags", func(t *testing.T) {
		f, _, err := apply(t, c, "has:due -has:estimate is:blocked")
		require.NoError(t, err)
		require.NotNil(t, f.RequireDueDate)
		assert.True(t, *f.RequireDueDate)
		require.NotNil(t, f.HasEstimate)
		assert.False(t, *f.HasEstimate)
		require.NotNil(t, f.HasDependencies)
		assert.True(t, *f.HasDependencies)
	})

	t.Run("due range", func(t *testing.T) {
		f, _, err := apply(t, c, "due:today..+7d")
		require.NoError(t, err)
		require.NotNil(t, f.DateRange)
		assert.Equal(t, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), *f.DateRange.Start)
		assert.Equal(t, EndOfDay(time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)), *f.DateRange.End)

		f, _, err = apply(t, c, "due:>=tomorrow due:<+3d")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC), *f.DateRange.Start)
		assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), *f.DateRange.End)

		f, _, err = apply(t, c, "due:none")
		require.NoError(t, err)
		assert.Nil(t, f.DateRange)
		require.NotNil(t, f.RequireDueDate)
		assert.False(t, *f.RequireDueDate)
	})

	t.Run("projects", func(t *testing.T) {
		f, ids, err := apply(t, c, `@work @~home project:Work`)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{work, home}, ids)
		assert.True(t, f.IsEmpty())
	})

	t.Run("errors are joined", func(t *testing.T) {
		_, _, err := apply(t, c, "priority:medium -tag:x energy:extreme @nowhere tag:<x has:wings")
		require.Error(t, err)
		for _, want := range []string{"medium", "negation", "extreme", "nowhere", "comparisons", "has:wings"} {
			assert.ErrorContains(t, err, want)
		}
	})

	t.Run("no resolver", func(t *testing.T) {
		_, _, err := apply(t, Converter{Now: refNow}, "@work")
		assert.ErrorContains(t, err, "not available")
	})
}
