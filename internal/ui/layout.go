package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the card pane is hidden
	// and the list takes the full width.
	LayoutCompactWidth = 72

	// LayoutCardWidth is the card pane width in the normal layout.
	LayoutCardWidth = 38
)

// Rows taken by everything except the list body: header, search line,
// status line and the list pane's top and bottom border.
const chromeRows = 5

// SentinelLookahead is how many rows below the viewport the end-of-list
// marker counts as visible, so the next page is requested a little early.
const SentinelLookahead = 2

// Timing constants.
const (
	// FlipFrameInterval paces the card flip animation.
	FlipFrameInterval = time.Second / 30

	// DefaultRequestTimeout bounds a single page or detail fetch.
	DefaultRequestTimeout = 10 * time.Second
)
