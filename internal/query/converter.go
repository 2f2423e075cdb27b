package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/domain"
)

// ProjectResolver maps a project reference from a query to its id.
type ProjectResolver func(name string, fuzzy bool) (uuid.UUID, error)

type Converter struct {
	Now     time.Time
	Resolve ProjectResolver
}

// Apply adds the terms of parsed to f and returns the projects the query
// mentions. Every term is checked; the errors are joined.
func (c Converter) Apply(f *domain.AdvancedFilter, parsed *ParsedQuery) ([]uuid.UUID, error) {
	var projects []uuid.UUID
	var errs []error

	for _, term := range parsed.Terms {
		if term.Field == "project" {
			id, err := c.applyProjectTerm(term)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if !slices.Contains(projects, id) {
				projects = append(projects, id)
			}
			continue
		}
		if err := c.applyTerm(f, term); err != nil {
			errs = append(errs, err)
		}
	}

	return projects, errors.Join(errs...)
}

func (c Converter) applyTerm(f *domain.AdvancedFilter, term Term) error {
	if term.IsNot && term.Field != "has" && term.Field != "is" {
		return fmt.Errorf("%s: negation is only supported for has: and is:", term)
	}
	if term.Operator != ":" && term.Field != "due" {
		return fmt.Errorf("%s: only due supports comparisons", term)
	}

	switch term.Field {
	case "priority":
		for _, v := range splitValues(term.Value) {
			p, err := domain.ParsePriority(v)
			if err != nil {
				return fmt.Errorf("%s: %w", term, err)
			}
			if !slices.Contains(f.Priorities, p) {
				f.Priorities = append(f.Priorities, p)
			}
		}
	case "energy":
		for _, v := range splitValues(term.Value) {
			e := domain.EnergyLevel(strings.ToLower(v))
			switch e {
			case domain.EnergyLow, domain.EnergyMedium, domain.EnergyHigh:
				if !slices.Contains(f.EnergyLevels, e) {
					f.EnergyLevels = append(f.EnergyLevels, e)
				}
			default:
				return fmt.Errorf("%s: unknown energy level %q", term, v)
			}
		}
	case "tag":
		f.Tags = appendUnique(f.Tags, splitValues(term.Value))
	case "category":
		f.Categories = appendUnique(f.Categories, splitValues(term.Value))
	case "context":
		f.Contexts = appendUnique(f.Contexts, splitValues(term.Value))
	case "match":
		switch strings.ToLower(term.Value) {
		case "any":
			f.TagMatchMode = domain.TagMatchAny
		case "all":
			f.TagMatchMode = domain.TagMatchAll
		default:
			return fmt.Errorf("%s: use match:any or match:all", term)
		}
	case "has":
		set := !term.IsNot
		switch strings.ToLower(term.Value) {
		case "due":
			f.RequireDueDate = &set
		case "estimate":
			f.HasEstimate = &set
		case "deps", "dependencies":
			f.HasDependencies = &set
		default:
			return fmt.Errorf("%s: use has:due, has:estimate or has:deps", term)
		}
	case "is":
		set := !term.IsNot
		switch strings.ToLower(term.Value) {
		case "blocked":
			f.HasDependencies = &set
		case "scheduled":
			f.RequireDueDate = &set
		default:
			return fmt.Errorf("%s: use is:blocked or is:scheduled", term)
		}
	case "due":
		start, end, err := ParseDateRange(term.Value, term.Operator, c.Now)
		if err != nil {
			return fmt.Errorf("%s: %w", term, err)
		}
		if start == nil && end == nil {
			// due:none
			no := false
			f.RequireDueDate = &no
			return nil
		}
		if f.DateRange == nil {
			f.DateRange = &domain.DateRange{}
		}
		if start != nil {
			f.DateRange.Start = start
		}
		if end != nil {
			f.DateRange.End = end
		}
	default:
		return fmt.Errorf("unknown filter field: %s", term.Field)
	}
	return nil
}

func (c Converter) applyProjectTerm(term Term) (uuid.UUID, error) {
	if term.IsNot || term.Operator != ":" {
		return uuid.Nil, fmt.Errorf("%s: projects can only be selected", term)
	}
	if c.Resolve == nil {
		return uuid.Nil, fmt.Errorf("%s: project lookup is not available", term)
	}
	id, err := c.Resolve(term.Value, term.IsFuzzy)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", term, err)
	}
	return id, nil
}

func splitValues(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func appendUnique(dst, values []string) []string {
	for _, v := range values {
		if !slices.ContainsFunc(dst, func(s string) bool { return strings.EqualFold(s, v) }) {
			dst = append(dst, v)
		}
	}
	return dst
}
