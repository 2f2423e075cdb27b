package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		want    func(t *testing.T, score int)
	}{
		{"exact ignores case", "Inbox", "inbox", func(t *testing.T, s int) { assert.Equal(t, 100, s) }},
		{"prefix", "work", "Work Stuff", func(t *testing.T, s int) { assert.Equal(t, 84, s) }},
		{"not a subsequence", "xyz", "Errands", func(t *testing.T, s int) { assert.Zero(t, s) }},
		{"longer than text", "errands-and-more", "Errands", func(t *testing.T, s int) { assert.Zero(t, s) }},
		{"empty pattern", "", "Errands", func(t *testing.T, s int) { assert.Zero(t, s) }},
		{"scattered", "hme", "home renovation", func(t *testing.T, s int) {
			assert.Greater(t, s, 0)
			assert.Less(t, s, 90)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want(t, Score(tt.pattern, tt.text))
		})
	}
}

func TestScoreOrdering(t *testing.T) {
	assert.Greater(t, Score("err", "Errands"), Score("err", "Paperwork errata"))
	assert.Greater(t, Score("hr", "home renovation"), Score("hr", "chores"))
	assert.Greater(t, Score("side", "Side Project"), Score("side", "Inside jokes"))
}

func TestRank(t *testing.T) {
	candidates := []string{"Paperwork", "Work", "Workshop", "Errands"}

	got := Rank("work", candidates, 1)
	if assert.Len(t, got, 3) {
		assert.Equal(t, "Work", got[0].Text)
		assert.Equal(t, "Workshop", got[1].Text)
		assert.Equal(t, "Paperwork", got[2].Text)
		assert.Equal(t, 1, got[0].Index)
	}

	assert.Empty(t, Rank("zzz", candidates, 1))
}

func TestBest(t *testing.T) {
	idx, ok := Best("errnd", []string{"Work", "Errands", "Inbox"})
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = Best("q", []string{"Work", "Errands"})
	assert.False(t, ok)

	_, ok = Best("proj", []string{"Project A", "Project B"})
	assert.False(t, ok, "tie is ambiguous")
}
