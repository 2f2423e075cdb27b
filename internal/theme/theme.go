package theme

// Theme is a palette of hex colors for the Home screen and CLI output.
type Theme struct {
	Name string

	// semantic
	Accent  string
	Success string
	Error   string
	Warning string

	// text
	Text      string
	TextMuted string

	// sections
	InboxHeader   string
	SectionHeader string
	OverdueHeader string
	HeaderBg      string

	// priority
	PriorityMax  string
	PriorityHigh string
	PriorityLow  string
	PriorityNone string

	// task state
	Completed string
	Overdue   string
	Morning   string
	Evening   string

	// chrome
	Selected  string
	StatusBar string
	HelpText  string
}
