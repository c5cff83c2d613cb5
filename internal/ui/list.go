package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ravikiranprk/pokedexter/internal/card"
	"github.com/ravikiranprk/pokedexter/internal/catalog"
	"github.com/ravikiranprk/pokedexter/internal/listing"
)

// renderList renders the visible rows of the list pane followed by the
// end-of-list marker row when it falls inside the viewport.
func (m Model) renderList(width int) string {
	styles := m.theme.Styles()
	snap := m.list.Snapshot()
	rows := m.listRows()
	inner := max(width-2, 1)

	lines := make([]string, 0, rows)
	end := min(m.top+rows, len(snap.Items))
	for i := m.top; i < end; i++ {
		lines = append(lines, m.renderRow(i, inner))
	}
	if len(lines) < rows {
		lines = append(lines, m.renderMarker(snap, inner))
	}
	for len(lines) < rows {
		lines = append(lines, strings.Repeat(" ", inner))
	}

	return styles.Pane.
		Width(inner).
		Height(rows).
		Render(strings.Join(lines, "\n"))
}

// renderRow renders "#0004  charmander  fire" for item i.
func (m Model) renderRow(i, width int) string {
	styles := m.theme.Styles()
	items := m.list.Snapshot().Items
	ref := items[i]
	c := m.peekCard(ref)

	label := c.Label()
	name := truncate(ref.Name, max(width-len(label)-4, 1))
	text := " " + label + "  " + name

	if i == m.selected {
		return styles.Selected.Width(width).Render(padRight(text, width))
	}

	row := styles.MutedText.Render(" "+label) + "  " + styles.Text.Render(name)
	if types := c.Types(); len(types) > 0 {
		used := lipgloss.Width(text) + 2
		chips := typeChips(styles, types)
		if used+lipgloss.Width(chips) <= width {
			row += "  " + chips
		}
	}
	return row
}

// renderMarker describes what lies past the last row.
func (m Model) renderMarker(snap listing.Snapshot, width int) string {
	styles := m.theme.Styles()
	var text string
	switch snap.State {
	case listing.LoadingInitial, listing.LoadingMore:
		return " " + m.spinner.View() + styles.MutedText.Render(" loading...")
	case listing.Ready:
		text = styles.FaintText.Render(" · · ·")
	case listing.Exhausted:
		if len(snap.Items) == 0 {
			text = styles.MutedText.Render(" no matches for " + quoteFilter(snap.Filter))
		} else {
			text = styles.FaintText.Render(" end of results")
		}
	case listing.Error:
		text = styles.DangerText.Render(" failed to load") + styles.WarningText.Render("  r to retry")
	}
	return truncateRendered(text, width)
}

// peekCard returns the card for ref without adding it to the deck, so
// rendering never changes state.
func (m Model) peekCard(ref catalog.EntityRef) *card.Card {
	if c, ok := m.deck.Lookup(ref.Name); ok {
		return c
	}
	return card.New(ref)
}

func quoteFilter(filter string) string {
	if filter == "" {
		return "the empty search"
	}
	return "\"" + filter + "\""
}

func truncateRendered(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
