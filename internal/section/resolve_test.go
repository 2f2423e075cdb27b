package section

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"taskflow/internal/domain"
)

func TestResolve(t *testing.T) {
	stale := uuid.New()
	named := domain.Project{ID: uuid.New(), Name: "Inbox"}

	tests := []struct {
		name     string
		tasks    []domain.Task
		projects []domain.Project
		wantID   uuid.UUID
		wantName string
		wantIcon string
	}{
		{
			name:     "exact id",
			tasks:    []domain.Task{{ProjectID: work.ID, LegacyProjectName: "Zeta"}},
			projects: allProjects,
			wantID:   work.ID,
			wantName: "Work",
			wantIcon: "briefcase",
		},
		{
			name:     "legacy name ignoring case",
			tasks:    []domain.Task{{ProjectID: stale, LegacyProjectName: "  zeta "}},
			projects: allProjects,
			wantID:   zeta.ID,
			wantName: "Zeta",
		},
		{
			name:     "first non-empty legacy name in the group",
			tasks:    []domain.Task{{ProjectID: stale}, {ProjectID: stale, LegacyProjectName: "errands"}, {ProjectID: stale, LegacyProjectName: "Work"}},
			projects: allProjects,
			wantID:   errands.ID,
			wantName: "Errands",
		},
		{
			name:     "any legacy name in the group can match",
			tasks:    []domain.Task{{ProjectID: stale, LegacyProjectName: "Old"}, {ProjectID: stale, LegacyProjectName: "work"}},
			projects: allProjects,
			wantID:   work.ID,
			wantName: "Work",
		},
		{
			name:     "later legacy inbox name beats synthesizing",
			tasks:    []domain.Task{{ProjectID: stale, LegacyProjectName: "Garden"}, {ProjectID: stale, LegacyProjectName: "Inbox"}},
			projects: allProjects,
			wantID:   inbox.ID,
			wantName: "Capture",
		},
		{
			name:     "legacy inbox resolves to the active inbox",
			tasks:    []domain.Task{{LegacyProjectName: "INBOX"}},
			projects: allProjects,
			wantID:   inbox.ID,
			wantName: "Capture",
		},
		{
			name:     "legacy inbox matches a project named inbox by name first",
			tasks:    []domain.Task{{LegacyProjectName: "inbox"}},
			projects: []domain.Project{inbox, named},
			wantID:   named.ID,
			wantName: "Inbox",
		},
		{
			name:     "legacy inbox without any inbox synthesizes the canonical one",
			tasks:    []domain.Task{{LegacyProjectName: "Inbox"}},
			projects: []domain.Project{work},
			wantID:   domain.InboxProjectID,
			wantName: "Inbox",
			wantIcon: domain.InboxIcon,
		},
		{
			name:     "unknown legacy name keeps the stale id",
			tasks:    []domain.Task{{ProjectID: stale, LegacyProjectName: "Garden"}},
			projects: allProjects,
			wantID:   stale,
			wantName: "Garden",
			wantIcon: domain.FolderIcon,
		},
		{
			name:     "nothing to go on",
			tasks:    []domain.Task{{}},
			projects: allProjects,
			wantName: "Uncategorized",
			wantIcon: domain.FolderIcon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.tasks, tt.projects)
			if tt.wantID != uuid.Nil {
				assert.Equal(t, tt.wantID, got.ID)
			} else {
				assert.NotEqual(t, uuid.Nil, got.ID)
			}
			assert.Equal(t, tt.wantName, got.Name)
			if tt.wantIcon != "" {
				assert.Equal(t, tt.wantIcon, got.Icon)
			}
		})
	}
}

func TestResolveSynthesizedIDsAreStable(t *testing.T) {
	a := Resolve([]domain.Task{{LegacyProjectName: "Garden"}}, nil)
	b := Resolve([]domain.Task{{LegacyProjectName: "garden"}}, nil)
	c := Resolve([]domain.Task{{LegacyProjectName: "Shed"}}, nil)

	assert.Equal(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)
}
