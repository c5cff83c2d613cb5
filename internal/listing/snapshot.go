package listing

import "github.com/ravikiranprk/pokedexter/internal/catalog"

// Snapshot is a copy of the controller's session for rendering.
type Snapshot struct {
	State   State
	Session string
	Filter  string
	Items   []catalog.EntityRef
	Cursor  *catalog.Cursor
	Err     error
	Pages   int
	// Total is the upstream's match count from the last page, zero when unknown.
	Total int
}

// HasMore reports whether another page can be requested.
func (s Snapshot) HasMore() bool {
	return s.Cursor != nil
}

// Snapshot returns a copy of the current session. The returned slices are
// independent of the controller's.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		State:   c.state,
		Session: c.sess.id,
		Filter:  c.sess.filter,
		Items:   cloneItems(c.sess.items),
		Err:     c.sess.err,
		Pages:   c.sess.pages,
		Total:   c.sess.total,
	}
	if c.sess.cursor != nil {
		cursor := *c.sess.cursor
		snap.Cursor = &cursor
	}
	return snap
}

// Len returns the number of accumulated entries.
func (c *Controller) Len() int {
	return len(c.sess.items)
}

// Session returns the current session id, empty when Idle.
func (c *Controller) Session() string {
	return c.sess.id
}

func cloneItems(items []catalog.EntityRef) []catalog.EntityRef {
	if len(items) == 0 {
		return nil
	}
	dup := make([]catalog.EntityRef, len(items))
	copy(dup, items)
	return dup
}
