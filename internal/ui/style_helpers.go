package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders text with a background that survives the ANSI resets
// lipgloss inserts between styled segments.
// See: https://github.com/charmbracelet/lipgloss/discussions/78
type BgStyle struct {
	bg    lipgloss.Color
	space string
}

// NewBgStyle creates a background helper for the given color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render styles text word by word so the spaces keep the background too.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	wordStyle := style.Background(b.bg)
	if !strings.Contains(text, " ") {
		return wordStyle.Render(text)
	}
	words := strings.Split(text, " ")
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			out = append(out, "")
			continue
		}
		out = append(out, wordStyle.Render(w))
	}
	return strings.Join(out, b.space)
}

// Join joins already rendered parts with styled spaces.
func (b BgStyle) Join(parts []string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, b.space)
}

// FillLine cuts rendered content to width and pads it with the background
// color. Cutting first keeps Width from wrapping onto a second line.
func (b BgStyle) FillLine(content string, width int) string {
	if width <= 0 {
		return content
	}
	line := lipgloss.NewStyle().MaxWidth(width).Render(content)
	return lipgloss.NewStyle().Background(b.bg).Width(width).Render(line)
}

// typeChips renders one colored chip per creature type.
func typeChips(styles Styles, types []string) string {
	chips := make([]string, 0, len(types))
	for _, t := range types {
		if strings.TrimSpace(t) == "" {
			continue
		}
		chips = append(chips, styles.TypeStyle(t).Render(t))
	}
	return strings.Join(chips, " ")
}
