package export

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// WriteMarkdown renders a Home export as a checklist document.
func WriteMarkdown(w io.Writer, data *HomeExport) error {
	bw := &errWriter{w: w}

	bw.printf("# %s\n\n", titleCase(data.View))
	bw.printf("_Grouping: %s. Generated %s._\n\n", data.Grouping, data.GeneratedAt.Format("2006-01-02 15:04"))

	empty := true
	if data.Inbox != nil {
		writeSection(bw, *data.Inbox, "")
		empty = false
	}
	if len(data.Overdue) > 0 {
		bw.printf("## Overdue\n\n")
		for _, s := range data.Overdue {
			writeSection(bw, s, "#")
		}
		empty = false
	}
	for _, s := range data.Sections {
		writeSection(bw, s, "")
		empty = false
	}

	if len(data.DoneTimeline) > 0 {
		bw.printf("## Completed (%d)\n\n", len(data.DoneTimeline))
		for _, t := range data.DoneTimeline {
			writeTask(bw, t)
		}
		bw.printf("\n")
		empty = false
	}

	if empty {
		bw.printf("Nothing here.\n")
	}
	return bw.err
}

func writeSection(w *errWriter, s SectionData, extraLevel string) {
	w.printf("##%s %s (%d)\n\n", extraLevel, s.Project, len(s.Tasks))
	for _, t := range s.Tasks {
		writeTask(w, t)
	}
	w.printf("\n")
}

func writeTask(w *errWriter, t TaskData) {
	checkbox := "[ ]"
	if t.IsComplete {
		checkbox = "[x]"
	}

	priority := ""
	switch t.Priority {
	case "max":
		priority = "🔴 "
	case "high":
		priority = "🟠 "
	case "low":
		priority = "🟢 "
	}

	w.printf("- %s %s**%s**", checkbox, priority, t.Name)

	metadata := []string{}
	if t.DueDate != nil {
		due := *t.DueDate
		if parsed, err := time.Parse(time.RFC3339, due); err == nil {
			due = parsed.Format("2006-01-02 15:04")
		}
		if t.Overdue {
			metadata = append(metadata, "⚠️ overdue "+due)
		} else {
			metadata = append(metadata, "📅 "+due)
		}
	}
	if len(t.Tags) > 0 {
		tags := make([]string, len(t.Tags))
		for i, tag := range t.Tags {
			tags[i] = fmt.Sprintf("`%s`", tag)
		}
		metadata = append(metadata, strings.Join(tags, " "))
	}
	if len(metadata) > 0 {
		w.printf(" (%s)", strings.Join(metadata, ", "))
	}
	w.printf("\n")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// errWriter keeps the first write error so rendering code can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
