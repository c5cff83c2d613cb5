package ui

import (
	"errors"
	"fmt"

	"github.com/ravikiranprk/pokedexter/internal/catalog"
	"github.com/ravikiranprk/pokedexter/internal/listing"
)

// renderStatusBar renders the bottom line: state badge, activity and hints.
func (m Model) renderStatusBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	snap := m.list.Snapshot()

	parts := []string{styles.StateStyle(snap.State.String()).Render(snap.State.String())}

	switch snap.State {
	case listing.LoadingInitial, listing.LoadingMore:
		parts = append(parts, bg.Render(m.spinner.View(), styles.AccentText),
			bg.Render(fmt.Sprintf("fetching %s", describeCursor(snap)), styles.MutedText))
	case listing.Error:
		parts = append(parts,
			bg.Render("press r to retry", styles.WarningText),
			bg.Render(errorSummary(snap.Err), styles.DangerText))
	case listing.Exhausted:
		parts = append(parts, bg.Render("end of results", styles.MutedText))
	}

	hints := bg.Render("/ search  enter flip  ? help  q quit", styles.FaintText)
	parts = append(parts, hints)
	return bg.FillLine(bg.Join(parts), m.width)
}

func describeCursor(snap listing.Snapshot) string {
	if snap.Cursor == nil {
		return "page"
	}
	return fmt.Sprintf("entries %d-%d", snap.Cursor.Offset+1, snap.Cursor.Offset+snap.Cursor.Limit)
}

// errorSummary names the failure by kind for the status bar.
func errorSummary(err error) string {
	var upErr *catalog.UpstreamError
	if errors.As(err, &upErr) {
		return fmt.Sprintf("upstream error (status %d)", upErr.StatusCode)
	}
	switch catalog.Kind(err) {
	case catalog.KindNetwork:
		return "network error"
	case catalog.KindParse:
		return "unreadable response"
	case "":
		return ""
	default:
		return "error: " + err.Error()
	}
}
