package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	InboxProjectName = "Inbox"
	InboxIcon        = "tray"
	FolderIcon       = "folder"

	UncategorizedProjectName = "Uncategorized"
)

// InboxProjectID is the well-known id of the Inbox project.
var InboxProjectID = uuid.MustParse("6e1b0c3a-0000-4000-8000-000000000001")

type Project struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	IsInbox   bool      `json:"is_inbox"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("project name cannot be empty")
	}

	if len(p.Name) > 100 {
		return errors.New("project name cannot exceed 100 characters")
	}

	return nil
}

func NewProject(name string) *Project {
	now := time.Now()
	return &Project{
		ID:        uuid.New(),
		Name:      name,
		Icon:      FolderIcon,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// InboxProject returns the canonical Inbox project.
func InboxProject() Project {
	return Project{
		ID:      InboxProjectID,
		Name:    InboxProjectName,
		Icon:    InboxIcon,
		IsInbox: true,
	}
}

// IsInboxName reports whether name refers to the Inbox, ignoring case and
// surrounding whitespace.
func IsInboxName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), InboxProjectName)
}

// FindInbox picks the Inbox out of projects: the first project flagged
// IsInbox, else the one with the well-known id, else the first whose name is
// "Inbox" in any case. The order matters because older records may only
// carry one of the three signals.
func FindInbox(projects []Project) (Project, bool) {
	for _, p := range projects {
		if p.IsInbox {
			return p, true
		}
	}
	for _, p := range projects {
		if p.ID == InboxProjectID {
			return p, true
		}
	}
	for _, p := range projects {
		if IsInboxName(p.Name) {
			return p, true
		}
	}
	return Project{}, false
}

// IsInboxProject reports whether p is the Inbox within the active set.
func IsInboxProject(p Project, projects []Project) bool {
	inbox, ok := FindInbox(projects)
	if !ok {
		return p.IsInbox || p.ID == InboxProjectID || IsInboxName(p.Name)
	}
	return inbox.ID == p.ID
}
