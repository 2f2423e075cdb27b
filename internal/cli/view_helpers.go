package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"taskflow/internal/domain"
	"taskflow/internal/repository"
)

// lookupView resolves a saved view by id or name.
func lookupView(ctx context.Context, repo repository.ViewRepository, ref string) (*domain.SavedView, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("view reference cannot be empty")
	}

	var (
		view *domain.SavedView
		err  error
	)
	if id, perr := uuid.Parse(ref); perr == nil {
		view, err = repo.GetByID(ctx, id)
	} else {
		view, err = repo.GetByName(ctx, ref)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("view %q not found", ref)
	}
	return view, err
}
