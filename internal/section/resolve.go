package section

import (
	"strings"

	"github.com/google/uuid"

	"taskflow/internal/domain"
)

// synthesized projects get stable ids derived from their name
var legacyNamespace = uuid.MustParse("5b3c1f0e-7a8d-4e52-9b61-2f0d4c7a9e13")

// Resolve finds the project for a group of tasks that share a project id:
//
//  1. a project with that exact id
//  2. a project whose name matches any task's legacy project name, ignoring case
//  3. the Inbox, when the legacy name is "Inbox"
//  4. a synthesized project named after the legacy name, or "Uncategorized"
func Resolve(tasks []domain.Task, projects []domain.Project) domain.Project {
	var id uuid.UUID
	if len(tasks) > 0 {
		id = tasks[0].ProjectID
	}

	if id != uuid.Nil {
		for _, p := range projects {
			if p.ID == id {
				return p
			}
		}
	}

	names := legacyNames(tasks)
	for _, legacy := range names {
		for _, p := range projects {
			if strings.EqualFold(strings.TrimSpace(p.Name), legacy) {
				return p
			}
		}
	}
	for _, legacy := range names {
		if domain.IsInboxName(legacy) {
			if inbox, ok := domain.FindInbox(projects); ok {
				return inbox
			}
			return domain.InboxProject()
		}
	}

	name := domain.UncategorizedProjectName
	if len(names) > 0 {
		name = names[0]
	}
	if id == uuid.Nil {
		id = uuid.NewSHA1(legacyNamespace, []byte(strings.ToLower(name)))
	}
	return domain.Project{ID: id, Name: name, Icon: domain.FolderIcon}
}

// legacyNames returns the distinct legacy project names of tasks in order,
// compared ignoring case.
func legacyNames(tasks []domain.Task) []string {
	var names []string
	for _, t := range tasks {
		n := strings.TrimSpace(t.LegacyProjectName)
		if n == "" {
			continue
		}
		dup := false
		for _, seen := range names {
			if strings.EqualFold(seen, n) {
				dup = true
				break
			}
		}
		if !dup {
			names = append(names, n)
		}
	}
	return names
}
