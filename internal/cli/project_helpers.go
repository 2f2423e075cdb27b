package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"taskflow/internal/domain"
	"taskflow/internal/fuzzy"
	"taskflow/internal/repository"
)

// lookupProject resolves a project by id, exact name (ignoring case), id
// prefix, then fuzzy name match.
func lookupProject(ctx context.Context, repo repository.ProjectRepository, ref string) (*domain.Project, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("project reference cannot be empty")
	}

	if id, err := uuid.Parse(ref); err == nil {
		project, err := repo.GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("project %s not found", ref)
		}
		return project, err
	}

	project, err := repo.GetByName(ctx, ref)
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	projects, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	prefix := strings.ToLower(ref)
	var byID []*domain.Project
	for _, p := range projects {
		if strings.HasPrefix(p.ID.String(), prefix) {
			byID = append(byID, p)
		}
	}
	if len(byID) == 1 {
		return byID[0], nil
	}

	return lookupProjectByFuzzyName(ref, projects)
}

func lookupProjectByFuzzyName(ref string, projects []*domain.Project) (*domain.Project, error) {
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}

	if i, ok := fuzzy.Best(ref, names); ok {
		return projects[i], nil
	}

	ranked := fuzzy.Rank(ref, names, fuzzy.Threshold)
	if len(ranked) == 0 {
		return nil, fmt.Errorf("project %q not found", ref)
	}
	suggestions := make([]string, 0, 3)
	for _, r := range ranked[:min(3, len(ranked))] {
		suggestions = append(suggestions, r.Text)
	}
	return nil, fmt.Errorf("project %q is ambiguous, did you mean: %s", ref, strings.Join(suggestions, ", "))
}

// lookupProjectIDs resolves every reference, failing on the first miss.
func lookupProjectIDs(ctx context.Context, repo repository.ProjectRepository, refs []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		p, err := lookupProject(ctx, repo, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}
