package selection

import (
	"slices"
	"strings"

	"taskflow/internal/domain"
)

// MatchesAdvanced reports whether t satisfies every populated field of f.
// A nil or empty filter matches everything.
func MatchesAdvanced(t domain.Task, f *domain.AdvancedFilter) bool {
	if f.IsEmpty() {
		return true
	}

	if len(f.Priorities) > 0 && !slices.Contains(f.Priorities, t.Priority) {
		return false
	}
	if len(f.Categories) > 0 && !containsFold(f.Categories, t.Category) {
		return false
	}
	if len(f.Contexts) > 0 && !containsFold(f.Contexts, t.Context) {
		return false
	}
	if len(f.EnergyLevels) > 0 && !slices.Contains(f.EnergyLevels, t.Energy) {
		return false
	}
	if len(f.Tags) > 0 && !matchesTags(t.Tags, f.Tags, f.TagMatchMode) {
		return false
	}
	if f.RequireDueDate != nil && *f.RequireDueDate != (t.DueDate != nil) {
		return false
	}
	if f.HasEstimate != nil && *f.HasEstimate != (t.EstimateMinutes != nil && *t.EstimateMinutes > 0) {
		return false
	}
	if f.HasDependencies != nil && *f.HasDependencies != (len(t.DependencyIDs) > 0) {
		return false
	}
	if r := f.DateRange; r != nil && (r.Start != nil || r.End != nil) {
		if t.DueDate == nil {
			return false
		}
		if r.Start != nil && t.DueDate.Before(*r.Start) {
			return false
		}
		if r.End != nil && t.DueDate.After(*r.End) {
			return false
		}
	}

	return true
}

// matchesTags compares case-insensitively. Any mode is the default.
func matchesTags(have, want []string, mode domain.TagMatchMode) bool {
	if mode == domain.TagMatchAll {
		for _, w := range want {
			if !containsFold(have, w) {
				return false
			}
		}
		return true
	}
	for _, w := range want {
		if containsFold(have, w) {
			return true
		}
	}
	return false
}

func containsFold(values []string, s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), s) {
			return true
		}
	}
	return false
}
