package sentinel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObserver_EdgeTriggered(t *testing.T) {
	o := NewObserver()

	assert.False(t, o.Observe("list", false))
	assert.True(t, o.Observe("list", true), "hidden -> visible fires")
	assert.False(t, o.Observe("list", true), "staying visible does not fire")
	assert.False(t, o.Observe("list", true))
	assert.False(t, o.Observe("list", false))
	assert.True(t, o.Observe("list", true), "second transition fires again")
}

func TestObserver_FirstVisibleObservationFires(t *testing.T) {
	o := NewObserver()
	assert.True(t, o.Observe("list", true))
}

func TestObserver_KeysAreIndependent(t *testing.T) {
	o := NewObserver()
	assert.True(t, o.Observe("a", true))
	assert.True(t, o.Observe("b", true))
	assert.False(t, o.Observe("a", true))
	assert.False(t, o.Observe("b", true))
}

func TestObserver_ResetRearms(t *testing.T) {
	o := NewObserver()
	assert.True(t, o.Observe("list", true))
	assert.False(t, o.Observe("list", true))

	o.Reset("list")
	assert.True(t, o.Observe("list", true))

	o.Forget("list")
	assert.True(t, o.Observe("list", true))
}

func TestVisible(t *testing.T) {
	cases := []struct {
		name                           string
		top, height, marker, lookahead int
		want                           bool
	}{
		{"inside", 0, 10, 5, 0, true},
		{"first row", 3, 10, 3, 0, true},
		{"just below", 0, 10, 10, 0, false},
		{"within lookahead", 0, 10, 12, 3, true},
		{"above window", 5, 10, 2, 0, false},
		{"zero height", 0, 0, 0, 0, false},
		{"negative marker", 0, 10, -1, 0, false},
		{"negative lookahead", 0, 10, 10, -4, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Visible(tc.top, tc.height, tc.marker, tc.lookahead))
		})
	}
}
