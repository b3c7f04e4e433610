package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the sidebar and header. The well itself always uses the
// world palette.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeHorizon = Theme{
		Name:    "horizon",
		Primary: lipgloss.Color("#64ffda"),
		Accent:  lipgloss.Color("#bd34fe"),
		Text:    lipgloss.Color("#e6f1ff"),
		Muted:   lipgloss.Color("#8892b0"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemeEmber = Theme{
		Name:    "ember",
		Primary: lipgloss.Color("#ff9f43"),
		Accent:  lipgloss.Color("#ee5253"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b6c"),
		Warning: lipgloss.Color("#feca57"),
	}

	ThemeMono = Theme{
		Name:    "mono",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#b4b4b4"),
		Text:    lipgloss.Color("#dddddd"),
		Muted:   lipgloss.Color("#666666"),
		Warning: lipgloss.Color("#ffffff"),
	}

	Themes = []Theme{ThemeHorizon, ThemeEmber, ThemeMono}
)

// GetTheme returns a theme by name, falling back to horizon.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeHorizon
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// next returns the theme after t in Themes.
func (t Theme) next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeHorizon
}

type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	panel   lipgloss.Style
	graph   lipgloss.Style
}

func (t Theme) styles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		muted:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		running: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 1).
			Width(sidebarWidth - 1),
		graph: lipgloss.NewStyle().Foreground(t.Accent),
	}
}
