package listing

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ravikiranprk/pokedexter/internal/catalog"
)

// State is a controller state.
type State int

const (
	Idle State = iota
	LoadingInitial
	Ready
	LoadingMore
	Exhausted
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case LoadingInitial:
		return "loading"
	case Ready:
		return "ready"
	case LoadingMore:
		return "loading more"
	case Exhausted:
		return "exhausted"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Loading reports whether a fetch is in flight in this state.
func (s State) Loading() bool {
	return s == LoadingInitial || s == LoadingMore
}

// DefaultPageSize is used when the controller is built with a non-positive size.
const DefaultPageSize = 20

// Request describes the single page fetch the caller should run next.
type Request struct {
	Session string
	Filter  string
	Cursor  catalog.Cursor
}

// Result is the outcome of running a Request.
type Result struct {
	Request Request
	Page    catalog.Page
	Err     error
}

// session is the (filter, accumulated list, cursor) triple of one search.
type session struct {
	id       string
	filter   string
	items    []catalog.EntityRef
	seen     map[string]struct{}
	cursor   *catalog.Cursor
	inflight *Request
	// failed remembers which loading state to re-enter on Retry.
	failed State
	err    error
	pages  int
	total  int
}

// Controller owns the accumulated list, cursor and filter of the current
// search session and decides when the next page is requested. It performs no
// I/O and must be driven from a single goroutine.
type Controller struct {
	pageSize int
	state    State
	sess     session
	newID    func() string
}

// New creates an Idle controller that requests pageSize entries per page.
func New(pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{
		pageSize: pageSize,
		newID:    func() string { return uuid.NewString() },
	}
}

// PageSize returns the number of entries requested per page.
func (c *Controller) PageSize() int {
	return c.pageSize
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Start begins a new session for filter, discarding the accumulated list and
// resetting the cursor. Any fetch still in flight becomes stale.
func (c *Controller) Start(filter string) *Request {
	filter = strings.TrimSpace(filter)
	c.sess = session{
		id:     c.newID(),
		filter: filter,
		seen:   make(map[string]struct{}),
		cursor: &catalog.Cursor{Offset: 0, Limit: c.pageSize},
	}
	c.state = LoadingInitial
	return c.issue()
}

// SetFilter starts a new session when filter differs from the current one.
// It returns nil when the filter is unchanged and the session is live.
func (c *Controller) SetFilter(filter string) *Request {
	filter = strings.TrimSpace(filter)
	if c.state != Idle && filter == c.sess.filter {
		return nil
	}
	return c.Start(filter)
}

// NearBottom requests the next page when the list is Ready and more pages
// remain. Signals arriving while a fetch is in flight are ignored, not queued.
func (c *Controller) NearBottom() *Request {
	if c.state != Ready || c.sess.inflight != nil || c.sess.cursor == nil {
		return nil
	}
	c.state = LoadingMore
	return c.issue()
}

// Retry re-enters the loading state that failed, with the same cursor.
func (c *Controller) Retry() *Request {
	if c.state != Error || c.sess.cursor == nil {
		return nil
	}
	c.state = c.sess.failed
	c.sess.err = nil
	return c.issue()
}

// Apply feeds the outcome of a fetch back into the controller. It returns
// false when the result is stale (from an earlier session or cursor) and was
// discarded.
func (c *Controller) Apply(res Result) bool {
	inflight := c.sess.inflight
	if inflight == nil || !c.state.Loading() {
		return false
	}
	if res.Request.Session != inflight.Session || res.Request.Cursor != inflight.Cursor {
		return false
	}
	c.sess.inflight = nil

	if res.Err != nil {
		c.sess.failed = c.state
		c.sess.err = res.Err
		c.state = Error
		return true
	}

	for _, item := range res.Page.Items {
		if _, dup := c.sess.seen[item.Name]; dup {
			continue
		}
		c.sess.seen[item.Name] = struct{}{}
		c.sess.items = append(c.sess.items, item)
	}
	c.sess.pages++
	// Once a page reports an unknown total, the session's total stays unknown.
	if c.sess.pages == 1 || c.sess.total > 0 {
		c.sess.total = res.Page.Count
	}

	next := res.Page.Next
	if next != nil && next.Offset <= c.sess.cursor.Offset {
		// A cursor that does not move forward would refetch the same window forever.
		next = nil
	}
	if next == nil {
		c.sess.cursor = nil
		c.state = Exhausted
		return true
	}
	cursor := *next
	c.sess.cursor = &cursor
	c.state = Ready
	return true
}

// Reset tears the session down, returning the controller to Idle.
func (c *Controller) Reset() {
	c.sess = session{}
	c.state = Idle
}

func (c *Controller) issue() *Request {
	req := &Request{
		Session: c.sess.id,
		Filter:  c.sess.filter,
		Cursor:  *c.sess.cursor,
	}
	inflight := *req
	c.sess.inflight = &inflight
	return req
}
