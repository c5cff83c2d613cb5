package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// handleSearchKey routes keys to the focused search input.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		m.searching = false
		m.search.Blur()
		value := strings.TrimSpace(m.search.Value())
		m.search.SetValue(value)
		fetch := m.submitSearch(value)
		cmd := m.syncViewport()
		return m, tea.Batch(fetch, cmd)

	case "esc":
		// Cancelling restores the filter that is actually applied.
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.list.Snapshot().Filter)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// renderSearchLine renders the search input, or the applied filter when the
// input is not focused.
func (m Model) renderSearchLine() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	if m.searching {
		line := m.search.View()
		return NewBgStyle(m.theme.FocusBg).FillLine(" "+line, m.width)
	}

	filter := m.list.Snapshot().Filter
	var text string
	if filter == "" {
		text = bg.Join([]string{
			bg.Render("/", styles.WarningText),
			bg.Render("search by name", styles.FaintText),
		})
	} else {
		text = bg.Join([]string{
			bg.Render("/", styles.WarningText),
			bg.Render(filter, styles.Text),
			bg.Render("(press / to change)", styles.FaintText),
		})
	}
	return bg.FillLine(" "+text, m.width)
}
