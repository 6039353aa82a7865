package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the player chrome. Frame colours come from
// the session colormap and are not themed.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Border  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

var (
	ThemePolar = Theme{
		Name:    "polar",
		Primary: lipgloss.Color("#9ad7ff"),
		Accent:  lipgloss.Color("#ffffff"),
		Border:  lipgloss.Color("#3a4a5c"),
		Text:    lipgloss.Color("#e6f2ff"),
		Muted:   lipgloss.Color("#6b7f99"),
		Success: lipgloss.Color("#7fe0c0"),
		Warning: lipgloss.Color("#ffc857"),
		Error:   lipgloss.Color("#ff5d5d"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Primary: lipgloss.Color("#0077be"),
		Accent:  lipgloss.Color("#ffd700"),
		Border:  lipgloss.Color("#1d3b57"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Success: lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffcc00"),
		Error:   lipgloss.Color("#ff4444"),
	}

	ThemeTundra = Theme{
		Name:    "tundra",
		Primary: lipgloss.Color("#a3be8c"),
		Accent:  lipgloss.Color("#ebcb8b"),
		Border:  lipgloss.Color("#4c566a"),
		Text:    lipgloss.Color("#eceff4"),
		Muted:   lipgloss.Color("#81a1c1"),
		Success: lipgloss.Color("#a3be8c"),
		Warning: lipgloss.Color("#d08770"),
		Error:   lipgloss.Color("#bf616a"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Border:  lipgloss.Color("#444444"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Success: lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ffaa00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	CurrentTheme = ThemePolar

	Themes = []Theme{
		ThemePolar,
		ThemeOcean,
		ThemeTundra,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to the polar theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemePolar
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemePolar
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
