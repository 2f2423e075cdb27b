package theme

func GetPredefinedThemes() map[string]*Theme {
	themes := make(map[string]*Theme)
	for _, t := range []*Theme{DefaultTheme(), LightTheme(), DraculaTheme(), NordTheme()} {
		themes[t.Name] = t
	}
	return themes
}

func DefaultTheme() *Theme {
	return &Theme{
		Name: "default",

		Accent:  "#7D56F4",
		Success: "#04B575",
		Error:   "#FF4D4D",
		Warning: "#FF8800",

		Text:      "#FAFAFA",
		TextMuted: "#6C6C6C",

		InboxHeader:   "#8AA4EB",
		SectionHeader: "#7D56F4",
		OverdueHeader: "#FF4D4D",
		HeaderBg:      "#2A2A3A",

		PriorityMax:  "#FF4D4D",
		PriorityHigh: "#FF8800",
		PriorityLow:  "#0088FF",
		PriorityNone: "#888888",

		Completed: "#04B575",
		Overdue:   "#FF4D4D",
		Morning:   "#FFD166",
		Evening:   "#9B8CFF",

		Selected:  "#7D56F4",
		StatusBar: "#888888",
		HelpText:  "#626262",
	}
}

func LightTheme() *Theme {
	return &Theme{
		Name: "light",

		Accent:  "#5A3FC0",
		Success: "#1E8E3E",
		Error:   "#C5221F",
		Warning: "#B06000",

		Text:      "#202124",
		TextMuted: "#80868B",

		InboxHeader:   "#1A73E8",
		SectionHeader: "#5A3FC0",
		OverdueHeader: "#C5221F",
		HeaderBg:      "#E8EAED",

		PriorityMax:  "#C5221F",
		PriorityHigh: "#B06000",
		PriorityLow:  "#1A73E8",
		PriorityNone: "#80868B",

		Completed: "#1E8E3E",
		Overdue:   "#C5221F",
		Morning:   "#B08800",
		Evening:   "#5A3FC0",

		Selected:  "#5A3FC0",
		StatusBar: "#5F6368",
		HelpText:  "#9AA0A6",
	}
}

func DraculaTheme() *Theme {
	return &Theme{
		Name: "dracula",

		Accent:  "#BD93F9",
		Success: "#50FA7B",
		Error:   "#FF5555",
		Warning: "#FFB86C",

		Text:      "#F8F8F2",
		TextMuted: "#6272A4",

		InboxHeader:   "#8BE9FD",
		SectionHeader: "#BD93F9",
		OverdueHeader: "#FF5555",
		HeaderBg:      "#44475A",

		PriorityMax:  "#FF5555",
		PriorityHigh: "#FFB86C",
		PriorityLow:  "#8BE9FD",
		PriorityNone: "#6272A4",

		Completed: "#50FA7B",
		Overdue:   "#FF5555",
		Morning:   "#F1FA8C",
		Evening:   "#FF79C6",

		Selected:  "#BD93F9",
		StatusBar: "#6272A4",
		HelpText:  "#6272A4",
	}
}

func NordTheme() *Theme {
	return &Theme{
		Name: "nord",

		Accent:  "#88C0D0",
		Success: "#A3BE8C",
		Error:   "#BF616A",
		Warning: "#D08770",

		Text:      "#ECEFF4",
		TextMuted: "#4C566A",

		InboxHeader:   "#81A1C1",
		SectionHeader: "#88C0D0",
		OverdueHeader: "#BF616A",
		HeaderBg:      "#3B4252",

		PriorityMax:  "#BF616A",
		PriorityHigh: "#D08770",
		PriorityLow:  "#5E81AC",
		PriorityNone: "#4C566A",

		Completed: "#A3BE8C",
		Overdue:   "#BF616A",
		Morning:   "#EBCB8B",
		Evening:   "#B48EAD",

		Selected:  "#88C0D0",
		StatusBar: "#4C566A",
		HelpText:  "#4C566A",
	}
}
