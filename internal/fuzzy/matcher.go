// Package fuzzy ranks short names, such as project names, against a typed
// pattern.
package fuzzy

import (
	"sort"
	"strings"
	"unicode"
)

// Threshold is the lowest score Best accepts.
const Threshold = 40

type Result struct {
	Text  string
	Score int
	Index int
}

// Score rates how well pattern matches text, 0 to 100, ignoring case.
// Every pattern rune must appear in text in order; otherwise the score is 0.
func Score(pattern, text string) int {
	p := []rune(strings.ToLower(strings.TrimSpace(pattern)))
	t := []rune(strings.ToLower(strings.TrimSpace(text)))
	if len(p) == 0 || len(t) == 0 || len(p) > len(t) {
		return 0
	}
	if string(p) == string(t) {
		return 100
	}
	if strings.HasPrefix(string(t), string(p)) {
		return 90 - min(len(t)-len(p), 20)
	}

	positions := subsequence(p, t)
	if positions == nil {
		return 0
	}

	score := 30
	if positions[0] == 0 {
		score += 10
	}
	run, longest := 1, 1
	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			run++
			longest = max(longest, run)
		} else {
			run = 1
		}
		if isBoundary(t, positions[i]) {
			score += 4
		}
	}
	score += 30 * longest / len(p)
	score -= min(len(t)-len(p), 20) / 2

	return max(0, min(score, 89))
}

func subsequence(p, t []rune) []int {
	positions := make([]int, 0, len(p))
	j := 0
	for i := 0; i < len(t) && j < len(p); i++ {
		if t[i] == p[j] {
			positions = append(positions, i)
			j++
		}
	}
	if j < len(p) {
		return nil
	}
	return positions
}

func isBoundary(t []rune, i int) bool {
	if i == 0 {
		return true
	}
	prev := t[i-1]
	return unicode.IsSpace(prev) || prev == '-' || prev == '_' || prev == '/'
}

// Rank scores every candidate and returns those at or above threshold,
// best first. Equal scores keep candidate order.
func Rank(pattern string, candidates []string, threshold int) []Result {
	results := make([]Result, 0, len(candidates))
	for i, c := range candidates {
		if s := Score(pattern, c); s >= threshold && s > 0 {
			results = append(results, Result{Text: c, Score: s, Index: i})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Best returns the index of the single best candidate. It reports false
// when nothing reaches Threshold or when the top two candidates tie.
func Best(pattern string, candidates []string) (int, bool) {
	ranked := Rank(pattern, candidates, Threshold)
	if len(ranked) == 0 {
		return -1, false
	}
	if len(ranked) > 1 && ranked[0].Score == ranked[1].Score {
		return -1, false
	}
	return ranked[0].Index, true
}
