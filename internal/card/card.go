package card

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ravikiranprk/pokedexter/internal/catalog"
)

// FlipDuration is how long the rotation between faces takes.
const FlipDuration = 300 * time.Millisecond

// spriteBase is where the shiny "home" artwork lives, indexed by number.
const spriteBase = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/home/shiny/"

var numberPattern = regexp.MustCompile(`/(\d+)/?$`)

// Face is the side of a card currently showing.
type Face int

const (
	Front Face = iota
	Back
)

func (f Face) String() string {
	if f == Back {
		return "back"
	}
	return "front"
}

// DetailStatus tracks the card's single detail fetch.
type DetailStatus int

const (
	DetailPending DetailStatus = iota
	DetailLoading
	DetailLoaded
	DetailUnavailable
)

// Card is the per-entity detail card. Its face flag and its detail fetch are
// independent: flipping never triggers or waits on a fetch.
type Card struct {
	Ref catalog.EntityRef

	face      Face
	flipStart time.Time

	mounted bool
	status  DetailStatus
	detail  *catalog.Detail
	err     error
}

// New returns an unmounted card showing its front face.
func New(ref catalog.EntityRef) *Card {
	return &Card{Ref: ref}
}

// Mount marks the card as shown. It returns true only on the first call; the
// caller issues the detail fetch exactly then.
func (c *Card) Mount() bool {
	if c.mounted {
		return false
	}
	c.mounted = true
	c.status = DetailLoading
	return true
}

// Resolve records the outcome of the detail fetch. On failure the card keeps
// rendering with detail fields absent.
func (c *Card) Resolve(detail catalog.Detail, err error) {
	if err != nil {
		c.status = DetailUnavailable
		c.err = err
		c.detail = nil
		return
	}
	c.status = DetailLoaded
	c.err = nil
	c.detail = &detail
}

// Status returns the detail fetch status.
func (c *Card) Status() DetailStatus {
	return c.status
}

// Err returns the detail fetch error, if any.
func (c *Card) Err() error {
	return c.err
}

// Detail returns the fetched detail and whether it is present.
func (c *Card) Detail() (catalog.Detail, bool) {
	if c.detail == nil {
		return catalog.Detail{}, false
	}
	return *c.detail, true
}

// Toggle flips the card and starts the rotation transition at now.
func (c *Card) Toggle(now time.Time) {
	if c.face == Front {
		c.face = Back
	} else {
		c.face = Front
	}
	c.flipStart = now
}

// Face returns the face the card is turning (or turned) to.
func (c *Card) Face() Face {
	return c.face
}

// Flipping reports whether the rotation is still running at now.
func (c *Card) Flipping(now time.Time) bool {
	if c.flipStart.IsZero() {
		return false
	}
	return now.Sub(c.flipStart) < FlipDuration
}

// Progress returns how far the rotation has run, in [0, 1].
func (c *Card) Progress(now time.Time) float64 {
	if !c.Flipping(now) {
		return 1
	}
	elapsed := now.Sub(c.flipStart)
	if elapsed < 0 {
		return 0
	}
	return float64(elapsed) / float64(FlipDuration)
}

// Scale is the horizontal squash of the card at now: 1 when face-on, 0 when
// edge-on at the midpoint of the rotation.
func (c *Card) Scale(now time.Time) float64 {
	return math.Abs(math.Cos(math.Pi * c.Progress(now)))
}

// VisibleFace is the face to draw at now. The old face shows until the card
// is edge-on.
func (c *Card) VisibleFace(now time.Time) Face {
	if c.Progress(now) < 0.5 {
		if c.face == Front {
			return Back
		}
		return Front
	}
	return c.face
}

// Number is the catalog number parsed from the detail URL, empty when the URL
// does not end in a numeric segment.
func (c *Card) Number() string {
	m := numberPattern.FindStringSubmatch(strings.TrimSpace(c.Ref.URL))
	if m == nil {
		return ""
	}
	return m[1]
}

// Label renders the number as "#0025".
func (c *Card) Label() string {
	return FormatNumber(c.Number())
}

// SpriteURL is the artwork URL for the card's front, empty without a number.
func (c *Card) SpriteURL() string {
	n := c.Number()
	if n == "" {
		return ""
	}
	return spriteBase + n + ".png"
}

// Height renders the height in metres, empty without detail.
func (c *Card) Height() string {
	if c.detail == nil || c.detail.HeightDecimetres == 0 {
		return ""
	}
	return FormatMeasurement(c.detail.HeightDecimetres, "meters")
}

// Weight renders the weight in kilograms, empty without detail.
func (c *Card) Weight() string {
	if c.detail == nil || c.detail.WeightHectograms == 0 {
		return ""
	}
	return FormatMeasurement(c.detail.WeightHectograms, "kgs")
}

// Abilities returns the ability names, nil without detail.
func (c *Card) Abilities() []string {
	if c.detail == nil {
		return nil
	}
	return append([]string(nil), c.detail.Abilities...)
}

// Types returns the type names, nil without detail.
func (c *Card) Types() []string {
	if c.detail == nil {
		return nil
	}
	return append([]string(nil), c.detail.Types...)
}

// FormatNumber pads a catalog number to four digits with a leading '#'.
func FormatNumber(number string) string {
	number = strings.TrimSpace(number)
	if n, err := strconv.Atoi(number); err == nil {
		return fmt.Sprintf("#%04d", n)
	}
	if pad := 4 - len(number); pad > 0 {
		number = strings.Repeat("0", pad) + number
	}
	return "#" + number
}

// FormatMeasurement converts a deci-unit value to whole units.
func FormatMeasurement(deci int, unit string) string {
	return strconv.FormatFloat(float64(deci)/10, 'f', -1, 64) + " " + unit
}
