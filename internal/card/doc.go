// Package card models the per-entity detail card: a front face with the
// entity's identity and a back face with its measurements and abilities.
//
// A card fetches its detail lazily, once, when first mounted (Mount returns
// true exactly once). A failed fetch leaves the back face without detail
// fields instead of failing the card. Toggle flips the face and starts a
// FlipDuration rotation; Scale and VisibleFace describe the rotation at a
// given instant so renderers can animate it with ticks.
package card
