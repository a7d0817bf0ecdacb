package wander

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	UserMsg int // User turn accent
	Place   int // Place card accent
	Error   int // Error notices
	Success int // Confirmation notices
	Muted   int // Status bar, placeholders, addresses
	Accent  int // Session names, headings, links
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg: 4,
		Place:   2,
		Error:   1,
		Success: 2,
		Muted:   8,
		Accent:  5,
	}
}
