package ui

import (
	"fmt"
)

const logoText = "POKEDEXTER"

// renderHeader renders the top line: logo, result counts and theme.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	snap := m.list.Snapshot()

	parts := []string{bg.Render(logoText, styles.Logo)}

	count := fmt.Sprintf("%d shown", len(snap.Items))
	if snap.Total > 0 {
		count = fmt.Sprintf("%d shown of %d", len(snap.Items), snap.Total)
	}
	parts = append(parts, bg.Render("·", styles.FaintText), bg.Render(count, styles.MutedText))

	if snap.Pages > 0 {
		pages := fmt.Sprintf("%d %s", snap.Pages, ternary(snap.Pages == 1, "page", "pages"))
		parts = append(parts, bg.Render("·", styles.FaintText), bg.Render(pages, styles.MutedText))
	}

	parts = append(parts, bg.Render("·", styles.FaintText), bg.Render(m.theme.Name, styles.FaintText))
	return bg.FillLine(" "+bg.Join(parts), m.width)
}
