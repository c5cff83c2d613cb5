// Package sentinel signals "near bottom" for scrollable lists. A marker row
// sits after the last entry; the Observer reports when that marker enters the
// viewport, once per not-visible to visible transition.
package sentinel

// Observer tracks the visibility of any number of markers by key. One
// Observer is shared by every list in the program.
type Observer struct {
	visible map[string]bool
}

// NewObserver returns an empty Observer.
func NewObserver() *Observer {
	return &Observer{visible: make(map[string]bool)}
}

// Observe records the marker's current visibility and reports whether it just
// became visible. Repeated visible observations report false until the marker
// has been seen hidden again (or Reset).
func (o *Observer) Observe(key string, visible bool) bool {
	was, known := o.visible[key]
	o.visible[key] = visible
	if !visible {
		return false
	}
	return !known || !was
}

// Reset forgets the marker's last visibility so the next visible observation
// fires again. Lists call it after their content changes, so a marker that is
// still on screen after a page arrives keeps pulling pages until the viewport
// is full.
func (o *Observer) Reset(key string) {
	delete(o.visible, key)
}

// Forget is an alias of Reset for markers whose list is going away.
func (o *Observer) Forget(key string) {
	o.Reset(key)
}

// Visible is the intersection test for a row-based viewport: the window
// starts at row top and is height rows tall; the marker is at markerRow.
// lookahead extends the window downwards so the signal arrives slightly
// before the marker is actually on screen.
func Visible(top, height, markerRow, lookahead int) bool {
	if height <= 0 || markerRow < 0 {
		return false
	}
	if lookahead < 0 {
		lookahead = 0
	}
	if top < 0 {
		top = 0
	}
	return markerRow >= top && markerRow < top+height+lookahead
}
