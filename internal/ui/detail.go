package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ravikiranprk/pokedexter/internal/card"
	"github.com/ravikiranprk/pokedexter/internal/catalog"
)

// renderCardPane renders the selected card. While a flip runs the card is
// squashed horizontally by its scale and shows the old face until edge-on.
func (m Model) renderCardPane(width, height int) string {
	styles := m.theme.Styles()
	items := m.list.Snapshot().Items
	if len(items) == 0 || m.selected >= len(items) {
		empty := styles.FaintText.Render("no card selected")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, empty)
	}

	c := m.peekCard(items[m.selected])
	now := m.now()
	full := max(width-2, 1)
	cardWidth := int(math.Round(float64(full) * c.Scale(now)))

	if cardWidth < 1 {
		edge := strings.TrimRight(strings.Repeat("│\n", max(height-2, 1)), "\n")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			styles.AccentText.Render(edge))
	}

	var lines []string
	if c.VisibleFace(now) == card.Back {
		lines = m.backLines(c, styles)
	} else {
		lines = m.frontLines(c, styles)
	}
	for i, line := range lines {
		lines[i] = truncateRendered(line, cardWidth)
	}

	body := styles.Card.
		Width(cardWidth).
		Height(max(height-2, 1)).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, body)
}

func (m Model) frontLines(c *card.Card, styles Styles) []string {
	lines := []string{
		styles.AccentText.Bold(true).Render(c.Label()),
		styles.Text.Bold(true).Render(displayName(c.Ref.Name)),
		"",
	}
	switch c.Status() {
	case card.DetailLoaded:
		if chips := typeChips(styles, c.Types()); chips != "" {
			lines = append(lines, chips)
		}
	case card.DetailLoading, card.DetailPending:
		lines = append(lines, styles.FaintText.Render("loading details..."))
	}
	if sprite := c.SpriteURL(); sprite != "" {
		lines = append(lines, "", styles.FaintText.Render("sprite"), styles.MutedText.Render(sprite))
	}
	lines = append(lines, "", styles.FaintText.Render("enter to flip"))
	return lines
}

func (m Model) backLines(c *card.Card, styles Styles) []string {
	lines := []string{
		styles.Text.Bold(true).Render(displayName(c.Ref.Name)),
		"",
	}
	switch c.Status() {
	case card.DetailLoading, card.DetailPending:
		lines = append(lines, styles.FaintText.Render("loading details..."))
	case card.DetailUnavailable:
		lines = append(lines, styles.WarningText.Render("details unavailable ("+catalog.Kind(c.Err())+")"))
	}

	if h := c.Height(); h != "" {
		lines = append(lines, styles.MutedText.Render("Height: ")+styles.Text.Render(h))
	}
	if w := c.Weight(); w != "" {
		lines = append(lines, styles.MutedText.Render("Weight: ")+styles.Text.Render(w))
	}
	if abilities := c.Abilities(); len(abilities) > 0 {
		lines = append(lines, "", styles.MutedText.Render("Abilities"))
		for _, a := range abilities {
			lines = append(lines, styles.Text.Render("• "+a))
		}
	}
	lines = append(lines, "", styles.FaintText.Render("enter to flip"))
	return lines
}
