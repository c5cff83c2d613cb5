// Package ui provides the terminal user interface for Pokedexter.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model.Update is the single event loop: page
// and detail fetches run as tea.Cmd goroutines and come back as messages, so
// the list controller, the card deck and the end-of-list observer are only
// ever touched from Update.
//
// # Package Structure
//
//   - app.go: Model, Options, message types, commands and Run
//   - search.go: the "/" search input and its submit/cancel handling
//   - list.go: list pane rows and the end-of-list marker row
//   - detail.go: the selected card, front or back, with the flip animation
//   - header.go, status.go: top and bottom lines
//   - help.go, keys.go: key bindings and the help overlay
//   - theme.go, style_helpers.go: palettes, type chips and background helpers
//
// # Event Flow
//
//  1. New starts the first search session (the restored last search)
//  2. A page result is applied with listing.Controller.Apply; stale ones
//     are dropped
//  3. After every page and every selection change syncViewport mounts the
//     cards now on screen (one detail fetch each) and feeds the marker's
//     visibility to the sentinel.Observer
//  4. An observer edge calls NearBottom, which issues the next page only
//     from Ready
//  5. Submitting a different search starts a new session and a new deck;
//     results for the old one are discarded on arrival
//
// # Keys
//
//	/        search          enter/space  flip card
//	j/k      move            pgup/pgdown  page
//	g/G      top/bottom      r            retry after a failed page
//	T        cycle theme     ?            help
//	q        quit
package ui
