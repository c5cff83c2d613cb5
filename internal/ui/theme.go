package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette. Colors are hex strings.
type Theme struct {
	Name string

	Background string
	Surface    string // header, search and status bars
	SurfaceAlt string // card face
	FocusBg    string // search box while editing

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Warning string
	Danger  string

	// StateColors are keyed by listing.State names.
	StateColors map[string]string
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Logo     lipgloss.Style
	Selected lipgloss.Style
	Pane     lipgloss.Style // list pane frame
	Card     lipgloss.Style // detail card frame

	stateColors map[string]string
	background  string
	muted       string
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	frame := func(border string) lipgloss.Style {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border))
	}

	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),

		Logo:     fg(t.Accent).Bold(true),
		Selected: fg(t.SelectionText).Background(lipgloss.Color(t.SelectionBg)),
		Pane:     frame(t.Border),
		Card: frame(t.BorderFocus).
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Text)),

		stateColors: t.StateColors,
		background:  t.Background,
		muted:       t.Muted,
	}
}

func chip(fgColor, bgColor string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fgColor)).
		Background(lipgloss.Color(bgColor)).
		Padding(0, 1)
}

// StateStyle returns a badge style for a listing state name.
func (s Styles) StateStyle(state string) lipgloss.Style {
	color := s.stateColors[state]
	if color == "" {
		color = s.muted
	}
	return chip(s.background, color)
}

// TypeStyle returns the chip style for a creature type such as "fire".
func (s Styles) TypeStyle(kind string) lipgloss.Style {
	color, ok := typeColors[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		color = s.muted
	}
	return chip("#101010", color)
}

// typeColors are shared by every theme so a type reads the same everywhere.
var typeColors = map[string]string{
	"normal":   "#a8a77a",
	"fire":     "#ee8130",
	"water":    "#6390f0",
	"electric": "#f7d02c",
	"grass":    "#7ac74c",
	"ice":      "#96d9d6",
	"fighting": "#c22e28",
	"poison":   "#a33ea1",
	"ground":   "#e2bf65",
	"flying":   "#a98ff3",
	"psychic":  "#f95587",
	"bug":      "#a6b91a",
	"rock":     "#b6a136",
	"ghost":    "#735797",
	"dragon":   "#6f35fc",
	"dark":     "#705746",
	"steel":    "#b7b7ce",
	"fairy":    "#d685ad",
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Pokedex":  pokedexTheme(),
	"Gruvbox":  gruvboxTheme(),
}

var themeOrder = []string{"Nightfox", "Pokedex", "Gruvbox"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2
		FocusBg:    "#29394f", // bg3

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red

		StateColors: map[string]string{
			"idle":         "#738091", // comment
			"loading":      "#63cdcf", // cyan
			"ready":        "#81b29a", // green
			"loading more": "#719cd6", // blue
			"exhausted":    "#9d79d6", // magenta
			"error":        "#c94f6d", // red
		},
	}
}

func pokedexTheme() Theme {
	// Handheld Pokedex: red shell, dark screen, lime LCD text.
	return Theme{
		Name: "Pokedex",

		Background: "#1a0b0d",
		Surface:    "#241214",
		SurfaceAlt: "#2f1a1c",
		FocusBg:    "#3b2023",

		SelectionBg:   "#b3202a",
		SelectionText: "#fff6e5",

		Border:      "#5c2a2f",
		BorderFocus: "#e3350d",

		Text:    "#f2e8d5",
		Muted:   "#b8a88f",
		Faint:   "#7d6b62",
		Accent:  "#e3350d",
		Warning: "#ffcb05",
		Danger:  "#ff5964",

		StateColors: map[string]string{
			"idle":         "#7d6b62",
			"loading":      "#3d7dca",
			"ready":        "#9bd14b",
			"loading more": "#5aa9e6",
			"exhausted":    "#ffcb05",
			"error":        "#ff5964",
		},
	}
}

func gruvboxTheme() Theme {
	// Gruvbox dark palette: https://github.com/morhetz/gruvbox
	return Theme{
		Name: "Gruvbox",

		Background: "#1d2021", // bg0_h
		Surface:    "#282828", // bg0
		SurfaceAlt: "#32302f", // bg0_s
		FocusBg:    "#3c3836", // bg1

		SelectionBg:   "#504945", // bg2
		SelectionText: "#fbf1c7", // fg0

		Border:      "#665c54", // bg3
		BorderFocus: "#fabd2f", // yellow

		Text:    "#ebdbb2", // fg1
		Muted:   "#bdae93", // fg3
		Faint:   "#928374", // gray
		Accent:  "#83a598", // blue
		Warning: "#fabd2f", // yellow
		Danger:  "#fb4934", // red

		StateColors: map[string]string{
			"idle":         "#928374", // gray
			"loading":      "#8ec07c", // aqua
			"ready":        "#b8bb26", // green
			"loading more": "#83a598", // blue
			"exhausted":    "#d3869b", // purple
			"error":        "#fb4934", // red
		},
	}
}
