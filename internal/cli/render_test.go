package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/display"
	"taskflow/internal/domain"
	"taskflow/internal/theme"
)

func TestRenderTaskLine(t *testing.T) {
	styles := theme.NewStyles(theme.DefaultTheme())

	due := testNow.AddDate(0, 0, -2)
	task := domain.NewTask("Pay rent")
	task.DueDate = &due
	task.Tags = []string{"home", "money"}

	line := renderTaskLine(*task, styles, testNow)
	assert.Contains(t, line, display.ShortID(task.ID))
	assert.Contains(t, line, "Pay rent")
	assert.Contains(t, line, "2d overdue")
	assert.Contains(t, line, "#home #money")

	done := testNow.Add(-time.Hour)
	task.IsComplete = true
	task.DateCompleted = &done
	line = renderTaskLine(*task, styles, testNow)
	assert.NotContains(t, line, "overdue")
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Today", titleCase("today"))
	assert.Equal(t, "", titleCase(""))
}

func TestExecuteThemeList(t *testing.T) {
	var out bytes.Buffer
	executeThemeList("", &out)
	assert.Contains(t, out.String(), "* ")
	assert.Contains(t, out.String(), "dracula")

	out.Reset()
	executeThemeList("nord", &out)
	for _, line := range bytes.Split(out.Bytes(), []byte("\n")) {
		if bytes.HasPrefix(line, []byte("*")) {
			assert.Contains(t, string(line), "nord")
		}
	}
}

func TestExecuteThemeSet_Unknown(t *testing.T) {
	err := executeThemeSet("neon", &bytes.Buffer{})
	require.Error(t, err)
}
