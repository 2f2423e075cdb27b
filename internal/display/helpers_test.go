package display

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"taskflow/internal/domain"
)

func TestFormatDueDate(t *testing.T) {
	now := time.Date(2025, 6, 11, 15, 30, 0, 0, time.UTC)
	at := func(day, hour int) *time.Time {
		d := time.Date(2025, 6, day, hour, 0, 0, 0, time.UTC)
		return &d
	}

	tests := []struct {
		name string
		due  *time.Time
		want string
	}{
		{"none", nil, "-"},
		{"overdue", at(9, 23), "2d overdue"},
		{"earlier today", at(11, 8), "today 08:00"},
		{"tomorrow", at(12, 0), "tomorrow"},
		{"this week", at(16, 10), "in 5d"},
		{"far", at(30, 10), "2025-06-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDueDate(tt.due, now))
		})
	}
}

func TestFormatDueDateAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	now := time.Date(2025, 3, 8, 12, 0, 0, 0, loc)
	due := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	assert.Equal(t, "in 2d", FormatDueDate(&due, now))
}

func TestFormatCompleted(t *testing.T) {
	now := time.Date(2025, 6, 11, 15, 30, 0, 0, time.UTC)
	today := time.Date(2025, 6, 11, 1, 0, 0, 0, time.UTC)
	yesterday := time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC)
	older := time.Date(2025, 5, 28, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "done", FormatCompleted(nil, now))
	assert.Equal(t, "done today", FormatCompleted(&today, now))
	assert.Equal(t, "done yesterday", FormatCompleted(&yesterday, now))
	assert.Equal(t, "done May 28", FormatCompleted(&older, now))
}

func TestIcons(t *testing.T) {
	assert.Equal(t, "✓", CheckboxIcon(true))
	assert.Equal(t, "○", CheckboxIcon(false))
	assert.Equal(t, "🔥", PriorityIcon(domain.PriorityMax))
	assert.Equal(t, " ", PriorityIcon(domain.PriorityNone))
	assert.Equal(t, "☾", TypeIcon(domain.TypeEvening))

	id := uuid.MustParse("0f9d0c55-1d7e-4a57-a4f4-b0a1b5a6e001")
	assert.Equal(t, "0f9d0c55", ShortID(id))
}
