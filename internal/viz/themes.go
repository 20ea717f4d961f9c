package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the TUI. Bodies are drawn in Primary.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
}

var (
	ThemeJelly = Theme{
		Name:    "jelly",
		Primary: lipgloss.Color("#ff77ff"),
		Accent:  lipgloss.Color("#00ffff"),
		Muted:   lipgloss.Color("#666688"),
	}

	ThemeLime = Theme{
		Name:    "lime",
		Primary: lipgloss.Color("#88ff44"),
		Accent:  lipgloss.Color("#ffff00"),
		Muted:   lipgloss.Color("#447733"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Muted:   lipgloss.Color("#888888"),
	}

	CurrentTheme = ThemeJelly

	Themes = []Theme{ThemeJelly, ThemeLime, ThemeMinimal}
)

// GetTheme returns a theme by name, or the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeJelly
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
