package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Pokedex" || names[2] != "Gruvbox" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Pokedex Gruvbox]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Pokedex" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Pokedex", got)
	}
	if got := NextTheme("Gruvbox"); got != "Nightfox" {
		t.Fatalf("NextTheme(Gruvbox) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme_FallsBackToNightfox(t *testing.T) {
	if got := GetTheme("Pokedex").Name; got != "Pokedex" {
		t.Fatalf("GetTheme(Pokedex).Name = %q", got)
	}
	if got := GetTheme("Solarized").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Solarized).Name = %q, want Nightfox (fallback)", got)
	}
}

func TestThemesCoverEveryState(t *testing.T) {
	states := []string{"idle", "loading", "ready", "loading more", "exhausted", "error"}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, s := range states {
			if th.StateColors[s] == "" {
				t.Fatalf("theme %s has no color for state %q", name, s)
			}
		}
	}
}

func TestTypeStyle(t *testing.T) {
	styles := GetTheme("Gruvbox").Styles()

	fire := styles.TypeStyle(" Fire ")
	if got := fire.GetBackground(); got != lipgloss.Color(typeColors["fire"]) {
		t.Fatalf("TypeStyle(fire) background = %v", got)
	}
	unknown := styles.TypeStyle("shadow")
	if got := unknown.GetBackground(); got != lipgloss.Color(GetTheme("Gruvbox").Muted) {
		t.Fatalf("TypeStyle(unknown) background = %v, want muted", got)
	}
}
