// Package ui provides the Bubble Tea pages and visual styling for the
// Yago Market terminal storefront.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Brand palette.
var (
	// Light mode
	LightForeground = lipgloss.Color("#1b2a41")
	LightPrimary    = lipgloss.Color("#1b2a41")
	LightAccent     = lipgloss.Color("#ff7a00") // storefront orange
	LightMuted      = lipgloss.Color("#8a93a2")
	LightBorder     = lipgloss.Color("#d8dde4")

	// Dark mode
	DarkForeground = lipgloss.Color("#e8eaed")
	DarkPrimary    = lipgloss.Color("#ffb85c")
	DarkAccent     = lipgloss.Color("#ff7a00")
	DarkMuted      = lipgloss.Color("#6b7684")
	DarkBorder     = lipgloss.Color("#3a4556")

	// Semantic colors, same in both modes
	Success     = lipgloss.Color("#4caf50")
	Destructive = lipgloss.Color("#e53935")
	Warning     = lipgloss.Color("#ffc107")
)

// Theme holds the active color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		IsDark:     false,
	}
}

func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// Styles is the set of lipgloss styles the pages share.
type Styles struct {
	Theme Theme

	Header   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Price    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Help     lipgloss.Style
	Badge    lipgloss.Style
	Box      lipgloss.Style
	NavBar   lipgloss.Style
	Spinner  lipgloss.Style
	Input    lipgloss.Style
	Label    lipgloss.Style
}

// NewStyles derives the shared styles from a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground),
		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Primary),
		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Price: lipgloss.NewStyle().
			Bold(true).
			Foreground(Success),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent).
			Reverse(true),
		Error: lipgloss.NewStyle().
			Foreground(Destructive),
		Success: lipgloss.NewStyle().
			Foreground(Success),
		Warning: lipgloss.NewStyle().
			Foreground(Warning),
		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Badge: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		NavBar: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(theme.Border),
		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),
		Input: lipgloss.NewStyle().
			Foreground(theme.Foreground),
		Label: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns the dark theme styles.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}
